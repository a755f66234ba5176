package loot

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/cory-johannsen/lootgen/internal/game/dice"
	"github.com/cory-johannsen/lootgen/internal/game/tables"
)

// Assembler rolls base stats and affixes onto a resolved base item.
type Assembler struct {
	tables *tables.Tables
	src    dice.Source
}

// NewAssembler creates an Assembler over tbl drawing from src.
//
// Precondition: tbl and src must be non-nil.
func NewAssembler(tbl *tables.Tables, src dice.Source) *Assembler {
	return &Assembler{tables: tbl, src: src}
}

// Assemble builds an Item from baseItemID. Draws happen in a fixed order:
// defense, prefix coin, prefix pick and value, suffix coin, suffix pick and value.
//
// Postcondition: Defense is in [MinAC, MaxAC]; each affix value is in its
// [MinVal, MaxVal]; errors wrap tables.ErrMissingEntry or tables.ErrEmptyCollection.
func (a *Assembler) Assemble(baseItemID string) (Item, error) {
	armor, err := a.tables.Armor(baseItemID)
	if err != nil {
		return Item{}, fmt.Errorf("unknown base item: %w", err)
	}

	item := Item{
		InstanceID: uuid.New().String(),
		BaseName:   armor.Name,
		Name:       armor.Name,
		Defense:    dice.Between(a.src, armor.MinAC, armor.MaxAC),
	}

	if dice.Chance(a.src) {
		p, line, err := a.rollAffix(tables.Prefix)
		if err != nil {
			return Item{}, err
		}
		item.Name = p.Name + " " + item.Name
		item.AffixLines = append(item.AffixLines, line)
	}
	if dice.Chance(a.src) {
		s, line, err := a.rollAffix(tables.Suffix)
		if err != nil {
			return Item{}, err
		}
		item.Name = item.Name + " " + s.Name
		item.AffixLines = append(item.AffixLines, line)
	}
	return item, nil
}

func (a *Assembler) rollAffix(kind tables.AffixKind) (tables.Affix, string, error) {
	affix, err := a.tables.RandomAffix(kind, a.src)
	if err != nil {
		return tables.Affix{}, "", fmt.Errorf("rolling %s: %w", kind, err)
	}
	value := dice.Between(a.src, affix.MinVal, affix.MaxVal)
	return affix, strconv.Itoa(value) + " " + affix.ModCode, nil
}
