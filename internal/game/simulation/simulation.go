// Package simulation drives fight rounds: pick a monster, resolve and assemble
// its drop, print it and ask whether to fight again.
package simulation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgen/internal/game/dice"
	"github.com/cory-johannsen/lootgen/internal/game/loot"
	"github.com/cory-johannsen/lootgen/internal/game/tables"
)

// Greeting is printed once at startup, before the data set loads.
const Greeting = "This program kills monsters and generates loot!"

// Prompt asks whether to run another round.
const Prompt = "Fight again [y/n]? "

// continueToken is the only answer that keeps the loop going.
const continueToken = "y"

// State is the loop state.
type State int

const (
	Playing State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options tunes a Simulator.
type Options struct {
	// MaxDepth bounds treasure class resolution; zero selects loot.DefaultMaxDepth.
	MaxDepth int
}

// Drop is the outcome of one fight round.
type Drop struct {
	Monster    tables.Monster
	Resolution loot.Resolution
	Item       loot.Item
}

// Simulator runs fight rounds against a fixed set of tables. All draws come
// from the single Source given to New.
type Simulator struct {
	tables    *tables.Tables
	src       dice.Source
	resolver  *loot.Resolver
	assembler *loot.Assembler
	in        *bufio.Reader
	out       io.Writer
	logger    *zap.Logger
	state     State
	rounds    int
}

// New creates a Simulator reading answers from in and writing the transcript to out.
//
// Precondition: every argument must be non-nil.
// Postcondition: State() == Playing.
func New(tbl *tables.Tables, src dice.Source, in io.Reader, out io.Writer, logger *zap.Logger, opts Options) *Simulator {
	return &Simulator{
		tables:    tbl,
		src:       src,
		resolver:  loot.NewResolver(tbl, src, opts.MaxDepth),
		assembler: loot.NewAssembler(tbl, src),
		in:        bufio.NewReader(in),
		out:       out,
		logger:    logger,
		state:     Playing,
	}
}

// State returns the current loop state.
func (s *Simulator) State() State { return s.state }

// Rounds returns the number of completed fight rounds.
func (s *Simulator) Rounds() int { return s.rounds }

// Fight runs one round without printing: random monster, treasure class walk,
// item assembly.
//
// Postcondition: Returns a complete Drop or an error from the tables or loot packages.
func (s *Simulator) Fight() (Drop, error) {
	m, err := s.tables.RandomMonster(s.src)
	if err != nil {
		return Drop{}, fmt.Errorf("picking monster: %w", err)
	}
	res, err := s.resolver.Resolve(m.TreasureClass)
	if err != nil {
		return Drop{}, fmt.Errorf("monster %q: %w", m.Name, err)
	}
	item, err := s.assembler.Assemble(res.BaseItem)
	if err != nil {
		return Drop{}, fmt.Errorf("monster %q: %w", m.Name, err)
	}

	s.rounds++
	s.logger.Info("fight resolved",
		zap.Int("round", s.rounds),
		zap.String("monster", m.Name),
		zap.String("monster_type", m.Type),
		zap.Int("monster_level", m.Level),
		zap.String("treasure_class", m.TreasureClass),
		zap.Strings("path", res.Path),
		zap.String("base_item", res.BaseItem),
		zap.String("instance_id", item.InstanceID),
		zap.Int("defense", item.Defense),
		zap.Int("affixes", len(item.AffixLines)),
	)
	return Drop{Monster: m, Resolution: res, Item: item}, nil
}

// Greet writes the greeting line to w.
func Greet(w io.Writer) error {
	if _, err := fmt.Fprintln(w, Greeting); err != nil {
		return fmt.Errorf("writing greeting: %w", err)
	}
	return nil
}

// Run plays rounds until the player declines, input ends or ctx is cancelled.
// Cancellation is honoured between rounds and while waiting at the prompt.
// Run owns the input reader and must be called at most once.
//
// Postcondition: State() == Stopped. Returns nil on a normal quit, ctx.Err()
// on cancellation, or the first core or I/O error.
func (s *Simulator) Run(ctx context.Context) error {
	defer func() { s.state = Stopped }()

	done := make(chan struct{})
	defer close(done)
	answers := s.readAnswers(done)

	for s.state == Playing {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.round(); err != nil {
			return err
		}
		again, err := s.ask(ctx, answers)
		if err != nil {
			return err
		}
		if !again {
			s.state = Stopped
		}
	}
	s.logger.Debug("simulation stopped", zap.Int("rounds", s.rounds))
	return nil
}

func (s *Simulator) round() error {
	drop, err := s.Fight()
	if err != nil {
		return err
	}
	name := drop.Monster.Name
	_, err = fmt.Fprintf(s.out, "Fighting %s...\nYou have slain %s!\n%s dropped:\n\n%s\n",
		name, name, name, loot.Format(drop.Item))
	if err != nil {
		return fmt.Errorf("writing drop: %w", err)
	}
	return nil
}

type answer struct {
	line string
	err  error
}

// readAnswers reads input lines on a goroutine so a blocked read never holds
// up cancellation. The channel closes after the first read error.
func (s *Simulator) readAnswers(done <-chan struct{}) <-chan answer {
	ch := make(chan answer)
	go func() {
		defer close(ch)
		for {
			line, err := s.in.ReadString('\n')
			select {
			case ch <- answer{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// ask prompts and waits for one answer. End of input counts as declining.
func (s *Simulator) ask(ctx context.Context, answers <-chan answer) (bool, error) {
	if _, err := io.WriteString(s.out, Prompt); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a, ok := <-answers:
		if !ok {
			return false, nil
		}
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", a.err)
		}
		return strings.ToLower(strings.TrimSpace(a.line)) == continueToken, nil
	}
}
