// Package script replays recorded touch sequences against a view.
//
// A script is a YAML document:
//
//	name: orbit
//	steps:
//	  - action: down
//	    pointers: [[100, 100]]
//	  - action: move
//	    pointers: [[80, 70]]
//	  - wait: 16ms
//	  - rpm: 3000
//	  - action: up
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/philipparndt/cylinderworks/internal/gesture"
	"gopkg.in/yaml.v3"
)

// Target receives replayed input.
type Target interface {
	HandleTouch(ev gesture.Event)
	SetTestRPM(rpm float32)
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is exactly one of a touch event, a pause or a test rpm.
type Step struct {
	Action   string        `yaml:"action,omitempty"`
	Pointers [][2]float32  `yaml:"pointers,omitempty"`
	Index    int           `yaml:"index,omitempty"`
	Wait     time.Duration `yaml:"wait,omitempty"`
	RPM      *float32      `yaml:"rpm,omitempty"`
}

// Event converts a touch step.
func (s Step) Event() (gesture.Event, error) {
	action, err := gesture.ParseAction(s.Action)
	if err != nil {
		return gesture.Event{}, err
	}
	ev := gesture.Event{Action: action, ActionIndex: s.Index}
	for _, p := range s.Pointers {
		ev.Pointers = append(ev.Pointers, gesture.Point{X: p[0], Y: p[1]})
	}
	if s.Index < 0 || (len(ev.Pointers) > 0 && s.Index >= len(ev.Pointers)) {
		return ev, fmt.Errorf("pointer index %d out of range", s.Index)
	}
	return ev, nil
}

func (s Step) validate() error {
	kinds := 0
	if s.Action != "" {
		kinds++
		if _, err := s.Event(); err != nil {
			return err
		}
	}
	if s.Wait != 0 {
		kinds++
		if s.Wait < 0 {
			return fmt.Errorf("negative wait %s", s.Wait)
		}
	}
	if s.RPM != nil {
		kinds++
	}
	if kinds != 1 {
		return errors.New("step needs exactly one of action, wait or rpm")
	}
	return nil
}

// Decode reads and validates a script.
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads a script from fsys.
func Load(fsys fs.FS, name string) (*Script, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Play feeds every step to t, sleeping on waits. It stops early when ctx
// is done.
func (s *Script) Play(ctx context.Context, t Target) error {
	for _, st := range s.Steps {
		switch {
		case st.Wait > 0:
			timer := time.NewTimer(st.Wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		case st.RPM != nil:
			t.SetTestRPM(*st.RPM)
		default:
			ev, err := st.Event()
			if err != nil {
				return err
			}
			t.HandleTouch(ev)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Drag returns the steps of a one-finger drag from one point to another
// in n moves.
func Drag(from, to gesture.Point, n int) []Step {
	n = max(n, 1)
	steps := []Step{{Action: gesture.Down.String(), Pointers: [][2]float32{{from.X, from.Y}}}}
	for i := 1; i <= n; i++ {
		f := float32(i) / float32(n)
		p := [2]float32{from.X + (to.X-from.X)*f, from.Y + (to.Y-from.Y)*f}
		steps = append(steps, Step{Action: gesture.Move.String(), Pointers: [][2]float32{p}})
	}
	return append(steps, Step{Action: gesture.Up.String(), Pointers: [][2]float32{{to.X, to.Y}}})
}
