package tables

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/lootgen/internal/config"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadError reports a record file that is missing or malformed.
// Line is 1-based; 0 means the error concerns the file as a whole.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadMonsters reads the monster table: name, type, level, treasure class.
//
// Postcondition: Returns the monsters in file order, or a *LoadError.
func LoadMonsters(path string) ([]Monster, error) {
	return loadRecords(path, 4, func(f []string) (Monster, error) {
		level, err := atoi("level", f[2])
		if err != nil {
			return Monster{}, err
		}
		return Monster{Name: f[0], Type: f[1], Level: level, TreasureClass: f[3]}, nil
	})
}

// LoadTreasureClasses reads the treasure class table: id and three drops.
//
// Postcondition: Returns classes keyed by id; a repeated id keeps the last row.
func LoadTreasureClasses(path string) (map[string]TreasureClass, error) {
	rows, err := loadRecords(path, 1+DropSlots, func(f []string) (TreasureClass, error) {
		return TreasureClass{ID: f[0], Drops: [DropSlots]string{f[1], f[2], f[3]}}, nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]TreasureClass, len(rows))
	for _, tc := range rows {
		out[tc.ID] = tc
	}
	return out, nil
}

// LoadArmor reads the armor table: name, min AC, max AC.
//
// Postcondition: Returns armor keyed by name; every entry has MinAC <= MaxAC.
func LoadArmor(path string) (map[string]Armor, error) {
	rows, err := loadRecords(path, 3, func(f []string) (Armor, error) {
		lo, err := atoi("min ac", f[1])
		if err != nil {
			return Armor{}, err
		}
		hi, err := atoi("max ac", f[2])
		if err != nil {
			return Armor{}, err
		}
		return Armor{Name: f[0], MinAC: lo, MaxAC: hi}, nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]Armor, len(rows))
	for _, a := range rows {
		out[a.Name] = a
	}
	return out, nil
}

// LoadAffixes reads one affix table: name, mod code, min, max.
//
// Postcondition: Returns the affixes in file order; every entry has MinVal <= MaxVal.
func LoadAffixes(path string, kind AffixKind) ([]Affix, error) {
	return loadRecords(path, 4, func(f []string) (Affix, error) {
		lo, err := atoi(kind.String()+" min", f[2])
		if err != nil {
			return Affix{}, err
		}
		hi, err := atoi(kind.String()+" max", f[3])
		if err != nil {
			return Affix{}, err
		}
		return Affix{Name: f[0], ModCode: f[1], MinVal: lo, MaxVal: hi}, nil
	})
}

// LoadDataSet loads all five tables named by cfg. Any failure aborts the load;
// no partial Tables is ever returned.
//
// Postcondition: Returns a populated *Tables or a non-nil error.
func LoadDataSet(cfg config.DataConfig) (*Tables, error) {
	monsters, err := LoadMonsters(cfg.Path(cfg.Monsters))
	if err != nil {
		return nil, fmt.Errorf("loading monsters: %w", err)
	}
	classes, err := LoadTreasureClasses(cfg.Path(cfg.TreasureClasses))
	if err != nil {
		return nil, fmt.Errorf("loading treasure classes: %w", err)
	}
	armor, err := LoadArmor(cfg.Path(cfg.Armor))
	if err != nil {
		return nil, fmt.Errorf("loading armor: %w", err)
	}
	prefixes, err := LoadAffixes(cfg.Path(cfg.Prefixes), Prefix)
	if err != nil {
		return nil, fmt.Errorf("loading prefixes: %w", err)
	}
	suffixes, err := LoadAffixes(cfg.Path(cfg.Suffixes), Suffix)
	if err != nil {
		return nil, fmt.Errorf("loading suffixes: %w", err)
	}
	return NewTables(monsters, classes, armor, prefixes, suffixes), nil
}

// loadRecords decodes path as YAML when its extension says so and as
// headerless tab-separated rows otherwise. Every record is validated.
func loadRecords[T any](path string, fields int, parse func([]string) (T, error)) ([]T, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML[T](path)
	default:
		return loadTSV(path, fields, parse)
	}
}

func loadTSV[T any](path string, fields int, parse func([]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var out []T
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		// Fields are split on tabs only; quote characters are data.
		row := strings.Split(text, "\t")
		if len(row) < fields {
			return nil, &LoadError{Path: path, Line: line,
				Err: fmt.Errorf("expected at least %d tab-separated fields, got %d", fields, len(row))}
		}
		rec, err := parse(row)
		if err != nil {
			return nil, &LoadError{Path: path, Line: line, Err: err}
		}
		if err := validate.Struct(rec); err != nil {
			return nil, &LoadError{Path: path, Line: line, Err: err}
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Line: line + 1, Err: err}
	}
	return out, nil
}

func loadYAML[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, &LoadError{Path: path, Line: seq.Line, Err: errors.New("expected a list of records")}
	}

	out := make([]T, 0, len(seq.Content))
	for _, node := range seq.Content {
		var rec T
		if err := node.Decode(&rec); err != nil {
			return nil, &LoadError{Path: path, Line: node.Line, Err: err}
		}
		if err := validate.Struct(rec); err != nil {
			return nil, &LoadError{Path: path, Line: node.Line, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", field, s)
	}
	return n, nil
}
