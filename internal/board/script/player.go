package script

import (
	"context"
	"fmt"

	"GameBoard/internal/board/app"
)

// Outcome is what one replayed step produced.
type Outcome struct {
	Index  int
	Step   Step
	Result app.Result
	Err    error
}

// ExpectationError reports the first step whose outcome did not match.
type ExpectationError struct {
	Index   int
	Command string
	Want    string
	Got     string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d (%s): want %s, got %s", e.Index, e.Command, e.Want, e.Got)
}

// StepError wraps an executor error no expectation accounted for.
type StepError struct {
	Index   int
	Command string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Command, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Player replays scripts against an executor. OnStep, when set, sees every outcome
// before it is checked.
type Player struct {
	exec   app.Executor
	OnStep func(Outcome)
}

func NewPlayer(exec app.Executor) *Player {
	return &Player{exec: exec}
}

// Play runs the steps in order and stops at the first mismatch or unexpected error.
// It returns how many steps ran.
func (p *Player) Play(ctx context.Context, s *Script) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		res, err := p.exec.Execute(ctx, st.Action())
		if p.OnStep != nil {
			p.OnStep(Outcome{Index: i, Step: st, Result: res, Err: err})
		}
		if cerr := check(i, st, res, err); cerr != nil {
			return i + 1, cerr
		}
	}
	return len(s.Steps), nil
}

func check(i int, st Step, res app.Result, err error) error {
	e := st.Expect
	if err != nil {
		if e == nil || e.Error == "" {
			return &StepError{Index: i, Command: st.Name, Err: err}
		}
		if got := codeOf(err); got != e.Error {
			return &ExpectationError{Index: i, Command: st.Name, Want: "error " + e.Error, Got: "error " + got}
		}
		return nil
	}
	if e == nil {
		return nil
	}
	mismatch := func(want string) error {
		return &ExpectationError{Index: i, Command: st.Name, Want: want, Got: describe(res)}
	}
	switch {
	case e.Error != "":
		return mismatch("error " + e.Error)
	case e.NoOp && !res.NoOp:
		return mismatch("no-op")
	case e.Absent && !res.Absent():
		return mismatch("absent")
	case e.Symbol != nil && (!res.Present || res.Symbol != *e.Symbol):
		return mismatch(fmt.Sprintf("symbol %q", *e.Symbol))
	}
	return nil
}

func describe(res app.Result) string {
	switch {
	case res.NoOp:
		return "no-op"
	case res.Present:
		return fmt.Sprintf("symbol %q", res.Symbol)
	case res.Absent():
		return "absent"
	case res.Board != nil:
		return fmt.Sprintf("board %dx%d", res.Board.Width(), res.Board.Height())
	default:
		return "no value"
	}
}
