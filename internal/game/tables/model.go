// Package tables holds the read-only record tables the loot generator draws
// from: monsters, treasure classes, armor base items and magic affixes.
package tables

import "fmt"

// Monster is a killable creature and the treasure class it drops from.
type Monster struct {
	Name  string `yaml:"name" validate:"required"`
	Type  string `yaml:"type"`
	Level int    `yaml:"level" validate:"gte=0"`
	// TreasureClass names a treasure class or, directly, an armor base item.
	TreasureClass string `yaml:"treasure_class" validate:"required"`
}

// DropSlots is the fixed number of drop slots on every treasure class.
const DropSlots = 3

// TreasureClass is one node of the drop tree. Each slot names either another
// treasure class or a terminal armor base item.
type TreasureClass struct {
	ID    string            `yaml:"id" validate:"required"`
	Drops [DropSlots]string `yaml:"drops" validate:"dive,required"`
}

// Armor is a base item with an inclusive defense range.
//
// Invariant: MinAC <= MaxAC.
type Armor struct {
	Name  string `yaml:"name" validate:"required"`
	MinAC int    `yaml:"min_ac"`
	MaxAC int    `yaml:"max_ac" validate:"gtefield=MinAC"`
}

// Affix is a prefix or suffix template: a name word and a stat line with an
// inclusive value range.
//
// Invariant: MinVal <= MaxVal.
type Affix struct {
	Name    string `yaml:"name" validate:"required"`
	ModCode string `yaml:"mod_code" validate:"required"`
	MinVal  int    `yaml:"min"`
	MaxVal  int    `yaml:"max" validate:"gtefield=MinVal"`
}

// AffixKind selects one of the two affix collections.
type AffixKind int

const (
	Prefix AffixKind = iota
	Suffix
)

// String returns "prefix" or "suffix".
func (k AffixKind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	default:
		return fmt.Sprintf("AffixKind(%d)", int(k))
	}
}
