// Package loot turns a monster's treasure class into a concrete, rolled item:
// the treasure class walk, item assembly and display formatting.
package loot

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/lootgen/internal/game/dice"
	"github.com/cory-johannsen/lootgen/internal/game/tables"
)

// DefaultMaxDepth bounds treasure class resolution when no bound is configured.
const DefaultMaxDepth = 64

// ErrDepthExceeded reports a treasure class walk that visited more classes
// than the resolver allows, which on finite data means a cycle.
var ErrDepthExceeded = errors.New("treasure class cycle or excessive depth")

// Resolution is the outcome of one treasure class walk.
type Resolution struct {
	// BaseItem is the terminal armor id.
	BaseItem string
	// Path lists every treasure class visited, root first.
	Path []string
}

// Resolver walks the treasure class graph down to a base item.
type Resolver struct {
	tables   *tables.Tables
	src      dice.Source
	maxDepth int
}

// NewResolver creates a Resolver over tbl drawing from src. A maxDepth of
// zero or less selects DefaultMaxDepth.
//
// Precondition: tbl and src must be non-nil.
func NewResolver(tbl *tables.Tables, src dice.Source, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{tables: tbl, src: src, maxDepth: maxDepth}
}

// ResolveBaseItem resolves treasureClassID to a terminal base item id.
//
// Postcondition: on success the result names an armor in the tables.
func (r *Resolver) ResolveBaseItem(treasureClassID string) (string, error) {
	res, err := r.Resolve(treasureClassID)
	if err != nil {
		return "", err
	}
	return res.BaseItem, nil
}

// Resolve walks from id, drawing one of the three drop slots uniformly at each
// treasure class, until it reaches an id that is not a treasure class.
//
// Postcondition: len(result.Path) <= maxDepth and result.BaseItem names an
// armor; otherwise an error wrapping ErrDepthExceeded or tables.ErrMissingEntry.
func (r *Resolver) Resolve(id string) (Resolution, error) {
	var path []string
	for {
		tc, ok := r.tables.TreasureClass(id)
		if !ok {
			break
		}
		if len(path) == r.maxDepth {
			return Resolution{}, fmt.Errorf("resolving %q: %w after %d levels (last %q)", path[0], ErrDepthExceeded, r.maxDepth, id)
		}
		path = append(path, id)
		id = tc.Drops[r.src.Intn(len(tc.Drops))]
	}

	if !r.tables.HasArmor(id) {
		if len(path) == 0 {
			return Resolution{}, fmt.Errorf("treasure class %q: %w", id, tables.ErrMissingEntry)
		}
		return Resolution{}, fmt.Errorf("treasure class %q drops %q: %w", path[len(path)-1], id, tables.ErrMissingEntry)
	}
	return Resolution{BaseItem: id, Path: path}, nil
}
