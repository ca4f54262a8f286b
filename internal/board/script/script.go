// Package script records, stores and replays command sequences.
//
// A script is a list of steps; each step is one action plus an optional expectation on
// its outcome. Scripts are YAML documents:
//
//	name: demo
//	steps:
//	  - name: create_board
//	    payload: {x: 8, y: 8}
//	  - name: get_token
//	    payload: {x: 3, y: 3}
//	    expect: {absent: true}
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"GameBoard/internal/board/app"

	"go.yaml.in/yaml/v3"
)

// Expect describes the outcome a step must produce. Zero fields are not checked.
type Expect struct {
	Symbol *string `yaml:"symbol,omitempty"`
	Absent bool    `yaml:"absent,omitempty"`
	NoOp   bool    `yaml:"noop,omitempty"`
	// Error is the error code the step must fail with, e.g. CODE_PRECONDITION.
	Error string `yaml:"error,omitempty"`
}

type Step struct {
	Name    string         `yaml:"name"`
	Payload map[string]any `yaml:"payload,omitempty"`
	Expect  *Expect        `yaml:"expect,omitempty"`
}

func (s Step) Action() app.Action {
	return app.NewAction(app.Name(s.Name), s.Payload)
}

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

var ErrInvalidScript = errors.New("invalid script")

// Validate checks the script is playable: every step is named and no expectation
// contradicts itself.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		if st.Name == "" {
			return fmt.Errorf("%w: step %d has no name", ErrInvalidScript, i)
		}
		e := st.Expect
		if e == nil {
			continue
		}
		set := 0
		for _, on := range []bool{e.Symbol != nil, e.Absent, e.NoOp, e.Error != ""} {
			if on {
				set++
			}
		}
		if set > 1 {
			return fmt.Errorf("%w: step %d (%s) has conflicting expectations", ErrInvalidScript, i, st.Name)
		}
	}
	return nil
}

// Decode reads one YAML script. Unknown fields are rejected.
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Encode(w io.Writer, s *Script) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Save(path string, s *Script) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Demo is the reference scenario: create an 8x8 board, place X at (3,3), read it back,
// remove it, and read the absence. One options map is reused by every token step.
func Demo() *Script {
	options := map[string]any{"x": 3, "y": 3, "symbol": "X"}
	x := "X"
	return &Script{
		Name: "demo",
		Steps: []Step{
			{Name: string(app.CmdCreateBoard), Payload: map[string]any{"x": 8, "y": 8}},
			{Name: string(app.CmdPlaceToken), Payload: options},
			{Name: string(app.CmdGetToken), Payload: options, Expect: &Expect{Symbol: &x}},
			{Name: string(app.CmdRemoveToken), Payload: options},
			{Name: string(app.CmdGetToken), Payload: options, Expect: &Expect{Absent: true}},
		},
	}
}
