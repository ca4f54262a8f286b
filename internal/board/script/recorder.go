package script

import (
	"context"
	"errors"
	"maps"
	"sync"

	"GameBoard/internal/board/app"
	"GameBoard/modules/kit/errx"
)

// Recorder wraps an executor and keeps every action it forwards, with the observed outcome
// as the step's expectation, so the session can be replayed later.
type Recorder struct {
	next app.Executor

	mu     sync.Mutex
	script Script
}

func NewRecorder(name string, next app.Executor) *Recorder {
	return &Recorder{next: next, script: Script{Name: name}}
}

func (r *Recorder) Execute(ctx context.Context, action app.Action) (app.Result, error) {
	res, err := r.next.Execute(ctx, action)

	st := Step{
		Name:    string(action.Name),
		Payload: maps.Clone(action.Payload),
		Expect:  expectFrom(res, err),
	}
	r.mu.Lock()
	r.script.Steps = append(r.script.Steps, st)
	r.mu.Unlock()
	return res, err
}

// Script returns a copy of what has been recorded so far.
func (r *Recorder) Script() *Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := &Script{Name: r.script.Name, Steps: make([]Step, len(r.script.Steps))}
	copy(out.Steps, r.script.Steps)
	return out
}

func expectFrom(res app.Result, err error) *Expect {
	if err != nil {
		return &Expect{Error: codeOf(err)}
	}
	switch {
	case res.NoOp:
		return &Expect{NoOp: true}
	case res.Command == app.CmdGetToken && res.Present:
		symbol := res.Symbol
		return &Expect{Symbol: &symbol}
	case res.Absent():
		return &Expect{Absent: true}
	}
	return nil
}

func codeOf(err error) string {
	var e *errx.Error
	if errors.As(err, &e) {
		return e.CodeText()
	}
	return string(errx.CodeInternal)
}
