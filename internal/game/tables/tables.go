package tables

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cory-johannsen/lootgen/internal/game/dice"
)

var (
	// ErrMissingEntry reports a reference to an id no table row defines.
	ErrMissingEntry = errors.New("missing entry")
	// ErrEmptyCollection reports a random selection over an empty collection.
	ErrEmptyCollection = errors.New("empty collection")
)

// Tables is the in-memory lookup structure built once at startup.
//
// Invariant: Tables has no mutators; every accessor returns copies, so a
// *Tables may be shared freely after construction.
type Tables struct {
	monsters []Monster
	classes  map[string]TreasureClass
	armor    map[string]Armor
	prefixes []Affix
	suffixes []Affix
}

// NewTables builds a Tables from already-loaded records. The inputs are
// copied; later changes to them do not affect the result.
//
// Postcondition: Returns a non-nil *Tables; nil inputs are treated as empty.
func NewTables(monsters []Monster, classes map[string]TreasureClass, armor map[string]Armor, prefixes, suffixes []Affix) *Tables {
	t := &Tables{
		monsters: slices.Clone(monsters),
		classes:  maps.Clone(classes),
		armor:    maps.Clone(armor),
		prefixes: slices.Clone(prefixes),
		suffixes: slices.Clone(suffixes),
	}
	if t.classes == nil {
		t.classes = map[string]TreasureClass{}
	}
	if t.armor == nil {
		t.armor = map[string]Armor{}
	}
	return t
}

// MonsterCount returns the number of loaded monsters.
func (t *Tables) MonsterCount() int { return len(t.monsters) }

// TreasureClassCount returns the number of loaded treasure classes.
func (t *Tables) TreasureClassCount() int { return len(t.classes) }

// ArmorCount returns the number of loaded armor base items.
func (t *Tables) ArmorCount() int { return len(t.armor) }

// AffixCount returns the size of the given affix collection.
func (t *Tables) AffixCount(kind AffixKind) int { return len(t.affixes(kind)) }

// Monsters returns a copy of the monster table in load order.
func (t *Tables) Monsters() []Monster { return slices.Clone(t.monsters) }

// RandomMonster picks a monster uniformly at random with one draw from src.
//
// Postcondition: Returns ErrEmptyCollection when no monsters are loaded.
func (t *Tables) RandomMonster(src dice.Source) (Monster, error) {
	return pick(src, t.monsters, "monsters")
}

// TreasureClass looks up a treasure class by id.
func (t *Tables) TreasureClass(id string) (TreasureClass, bool) {
	tc, ok := t.classes[id]
	return tc, ok
}

// HasArmor reports whether id names an armor base item.
func (t *Tables) HasArmor(id string) bool {
	_, ok := t.armor[id]
	return ok
}

// Armor looks up an armor base item by id.
//
// Postcondition: Returns an error wrapping ErrMissingEntry when id is unknown.
func (t *Tables) Armor(id string) (Armor, error) {
	a, ok := t.armor[id]
	if !ok {
		return Armor{}, fmt.Errorf("armor %q: %w", id, ErrMissingEntry)
	}
	return a, nil
}

// RandomAffix picks an affix of the given kind uniformly at random with one
// draw from src.
//
// Postcondition: Returns ErrEmptyCollection when that collection is empty.
func (t *Tables) RandomAffix(kind AffixKind, src dice.Source) (Affix, error) {
	return pick(src, t.affixes(kind), kind.String()+"es")
}

func (t *Tables) affixes(kind AffixKind) []Affix {
	if kind == Suffix {
		return t.suffixes
	}
	return t.prefixes
}

func pick[T any](src dice.Source, items []T, what string) (T, error) {
	if len(items) == 0 {
		var zero T
		return zero, fmt.Errorf("no %s loaded: %w", what, ErrEmptyCollection)
	}
	return items[src.Intn(len(items))], nil
}
