package tables_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/lootgen/internal/game/dice"
	"github.com/cory-johannsen/lootgen/internal/game/tables"
	"github.com/cory-johannsen/lootgen/internal/testutil"
)

func sampleTables() *tables.Tables {
	return tables.NewTables(
		[]tables.Monster{
			{Name: "Zombie", Type: "undead", Level: 1, TreasureClass: "Zombie"},
			{Name: "Fallen", Type: "demon", Level: 2, TreasureClass: "LightArmor"},
		},
		map[string]tables.TreasureClass{
			"Zombie": {ID: "Zombie", Drops: [3]string{"Zombie", "Zombie", "LightArmor"}},
		},
		map[string]tables.Armor{
			"LightArmor": {Name: "LightArmor", MinAC: 2, MaxAC: 6},
		},
		[]tables.Affix{{Name: "Fine", ModCode: "+10% Durability", MinVal: 10, MaxVal: 10}},
		[]tables.Affix{
			{Name: "of Thorns", ModCode: "thorns", MinVal: 1, MaxVal: 3},
			{Name: "of the Fox", ModCode: "dex", MinVal: 1, MaxVal: 2},
		},
	)
}

func TestTables_Counts(t *testing.T) {
	tbl := sampleTables()
	assert.Equal(t, 2, tbl.MonsterCount())
	assert.Equal(t, 1, tbl.TreasureClassCount())
	assert.Equal(t, 1, tbl.ArmorCount())
	assert.Equal(t, 1, tbl.AffixCount(tables.Prefix))
	assert.Equal(t, 2, tbl.AffixCount(tables.Suffix))
}

func TestTables_ArmorLookup(t *testing.T) {
	tbl := sampleTables()

	a, err := tbl.Armor("LightArmor")
	require.NoError(t, err)
	assert.Equal(t, 2, a.MinAC)
	assert.Equal(t, 6, a.MaxAC)
	assert.True(t, tbl.HasArmor("LightArmor"))
}

func TestTables_ArmorMissing(t *testing.T) {
	tbl := sampleTables()

	_, err := tbl.Armor("Plate Mail")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tables.ErrMissingEntry))
	assert.Contains(t, err.Error(), "Plate Mail")
	assert.False(t, tbl.HasArmor("Plate Mail"))
}

func TestTables_TreasureClassLookup(t *testing.T) {
	tbl := sampleTables()

	tc, ok := tbl.TreasureClass("Zombie")
	require.True(t, ok)
	assert.Equal(t, "LightArmor", tc.Drops[2])

	_, ok = tbl.TreasureClass("LightArmor")
	assert.False(t, ok)
}

func TestTables_RandomMonsterUsesOneDraw(t *testing.T) {
	tbl := sampleTables()
	src := testutil.NewScriptedSource(t, 1)

	m, err := tbl.RandomMonster(src)
	require.NoError(t, err)
	assert.Equal(t, "Fallen", m.Name)
	src.AssertExhausted()
}

func TestTables_RandomMonsterEmpty(t *testing.T) {
	tbl := tables.NewTables(nil, nil, nil, nil, nil)
	_, err := tbl.RandomMonster(dice.NewSeededSource(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tables.ErrEmptyCollection))
	assert.Contains(t, err.Error(), "no monsters loaded")
}

func TestTables_RandomAffixByKind(t *testing.T) {
	tbl := sampleTables()

	p, err := tbl.RandomAffix(tables.Prefix, testutil.NewScriptedSource(t, 0))
	require.NoError(t, err)
	assert.Equal(t, "Fine", p.Name)

	s, err := tbl.RandomAffix(tables.Suffix, testutil.NewScriptedSource(t, 1))
	require.NoError(t, err)
	assert.Equal(t, "of the Fox", s.Name)
}

func TestTables_RandomAffixEmpty(t *testing.T) {
	tbl := tables.NewTables(nil, nil, nil, nil, nil)
	_, err := tbl.RandomAffix(tables.Suffix, dice.NewSeededSource(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tables.ErrEmptyCollection))
	assert.Contains(t, err.Error(), "suffixes")
}

func TestTables_InputsAreCopied(t *testing.T) {
	monsters := []tables.Monster{{Name: "Zombie", TreasureClass: "LightArmor"}}
	armor := map[string]tables.Armor{"LightArmor": {Name: "LightArmor", MinAC: 2, MaxAC: 6}}
	tbl := tables.NewTables(monsters, nil, armor, nil, nil)

	monsters[0].Name = "Changed"
	delete(armor, "LightArmor")

	assert.Equal(t, "Zombie", tbl.Monsters()[0].Name)
	assert.True(t, tbl.HasArmor("LightArmor"))

	out := tbl.Monsters()
	out[0].Name = "Also changed"
	assert.Equal(t, "Zombie", tbl.Monsters()[0].Name)
}

func TestAffixKind_String(t *testing.T) {
	assert.Equal(t, "prefix", tables.Prefix.String())
	assert.Equal(t, "suffix", tables.Suffix.String())
	assert.Equal(t, "AffixKind(7)", tables.AffixKind(7).String())
}

func TestProperty_RandomMonster_AlwaysFromTable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{2,8}`), 1, 20, rapid.ID[string]).Draw(rt, "names")
		monsters := make([]tables.Monster, len(names))
		for i, n := range names {
			monsters[i] = tables.Monster{Name: n, TreasureClass: "x"}
		}
		tbl := tables.NewTables(monsters, nil, nil, nil, nil)
		m, err := tbl.RandomMonster(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))
		require.NoError(rt, err)
		assert.Contains(rt, names, m.Name)
	})
}
