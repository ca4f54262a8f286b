package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"GameBoard/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestDispatcher(t *testing.T, opts Options) (*Dispatcher, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewDispatcher(opts, logx.NewZapLogger(zap.New(core))), logs
}

func mustExecute(t *testing.T, d *Dispatcher, name Name, payload map[string]any) Result {
	t.Helper()
	res, err := d.Execute(context.Background(), NewAction(name, payload))
	if err != nil {
		t.Fatalf("execute %s: %v", name, err)
	}
	return res
}

func TestDispatcher_EndToEndScenario(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	options := map[string]any{"x": 3, "y": 3, "symbol": "X"}

	res := mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 8, "y": 8})
	if res.Board == nil || res.Board.Width() != 8 || res.Board.Height() != 8 || res.Board.Len() != 0 {
		t.Fatalf("unexpected create_board result: %+v", res)
	}

	res = mustExecute(t, d, CmdPlaceToken, options)
	if res.Value() != nil {
		t.Fatalf("expected place_token to carry no value, got=%v", res.Value())
	}

	res = mustExecute(t, d, CmdGetToken, options)
	if !res.Present || res.Symbol != "X" || res.Value() != "X" {
		t.Fatalf("expected X, got=%+v", res)
	}

	mustExecute(t, d, CmdRemoveToken, options)
	if d.Board().Len() != 0 {
		t.Fatalf("expected no entries after remove, got=%d", d.Board().Len())
	}

	res = mustExecute(t, d, CmdGetToken, options)
	if !res.Absent() || res.Value() != nil {
		t.Fatalf("expected absence marker, got=%+v", res)
	}
}

func TestDispatcher_UnknownCommandIsNoOp(t *testing.T) {
	d, logs := newTestDispatcher(t, Options{})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 2})
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 0, "y": 0, "symbol": "X"})
	before := d.Render()

	res, err := d.Execute(context.Background(), NewAction("flip_board", map[string]any{"x": 0}))
	if err != nil {
		t.Fatalf("expected no error for unknown command, got=%v", err)
	}
	if !res.NoOp || res.Value() != nil || res.Absent() {
		t.Fatalf("expected no-op result, got=%+v", res)
	}
	if d.Render() != before {
		t.Fatalf("expected board untouched")
	}
	if got := logs.FilterField(zap.String("reason", "UNKNOWN_COMMAND")).Len(); got != 1 {
		t.Fatalf("expected one unknown command log entry, got=%d", got)
	}
}

func TestDispatcher_UnknownCommandWithoutBoard(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	res, err := d.Execute(context.Background(), NewAction("", nil))
	if err != nil || !res.NoOp {
		t.Fatalf("expected no-op, got=%+v err=%v", res, err)
	}
	if d.HasBoard() {
		t.Fatalf("expected no board")
	}
}

func TestDispatcher_PreconditionBeforeCreateBoard(t *testing.T) {
	d, logs := newTestDispatcher(t, Options{})
	cases := []struct {
		name    Name
		payload map[string]any
	}{
		{CmdPlaceToken, map[string]any{"x": 1, "y": 1, "symbol": "X"}},
		{CmdGetToken, map[string]any{"x": 1, "y": 1}},
		{CmdRemoveToken, map[string]any{"x": 1, "y": 1}},
	}
	for _, c := range cases {
		_, err := d.Execute(context.Background(), NewAction(c.name, c.payload))
		if !errors.Is(err, ErrPrecondition) {
			t.Fatalf("%s: expected ErrPrecondition, got=%v", c.name, err)
		}
		if ReasonOf(err) != ReasonNoBoard.Code {
			t.Fatalf("%s: unexpected reason %q", c.name, ReasonOf(err))
		}
	}
	if got := logs.FilterField(zap.String("err_type", "biz")).Len(); got != len(cases) {
		t.Fatalf("expected each rejection logged once, got=%d", got)
	}
}

func TestDispatcher_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		command Name
		payload map[string]any
		key     string
		reason  Reason
	}{
		{"missing y", CmdCreateBoard, map[string]any{"x": 8}, "y", ReasonMissingKey},
		{"nil payload", CmdCreateBoard, nil, "x", ReasonMissingKey},
		{"nil value", CmdGetToken, map[string]any{"x": nil, "y": 1}, "x", ReasonMissingKey},
		{"missing symbol", CmdPlaceToken, map[string]any{"x": 1, "y": 1}, "symbol", ReasonMissingKey},
		{"string coordinate", CmdGetToken, map[string]any{"x": "3", "y": 1}, "x", ReasonInvalidType},
		{"fractional coordinate", CmdRemoveToken, map[string]any{"x": 1, "y": 2.5}, "y", ReasonInvalidType},
		{"bool width", CmdCreateBoard, map[string]any{"x": true, "y": 2}, "x", ReasonInvalidType},
		{"numeric symbol", CmdPlaceToken, map[string]any{"x": 1, "y": 1, "symbol": 7}, "symbol", ReasonInvalidType},
		{"zero width", CmdCreateBoard, map[string]any{"x": 0, "y": 2}, "x", ReasonInvalidValue},
		{"negative height", CmdCreateBoard, map[string]any{"x": 2, "y": -1}, "y", ReasonInvalidValue},
		{"negative coordinate", CmdGetToken, map[string]any{"x": -1, "y": 0}, "x", ReasonInvalidValue},
		{"huge float width", CmdCreateBoard, map[string]any{"x": 1e300, "y": 2}, "x", ReasonInvalidType},
		{"inexact float width", CmdCreateBoard, map[string]any{"x": float64(1 << 62), "y": 2}, "x", ReasonInvalidType},
		{"negative huge float", CmdGetToken, map[string]any{"x": -1e19, "y": 0}, "x", ReasonInvalidType},
		{"max uint64 width", CmdCreateBoard, map[string]any{"x": uint64(math.MaxUint64), "y": 2}, "x", ReasonInvalidType},
		{"uint above int64", CmdGetToken, map[string]any{"x": 0, "y": uint64(1) << 63}, "y", ReasonInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDispatcher(t, Options{})
			mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 4, "y": 4})

			_, err := d.Execute(context.Background(), NewAction(tt.command, tt.payload))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got=%v", err)
			}
			if KeyOf(err) != tt.key {
				t.Fatalf("expected key %q, got=%q (err=%v)", tt.key, KeyOf(err), err)
			}
			if ReasonOf(err) != tt.reason.Code {
				t.Fatalf("expected reason %q, got=%q", tt.reason.Code, ReasonOf(err))
			}
			if d.Board().Width() != 4 || d.Board().Len() != 0 {
				t.Fatalf("expected board untouched after rejection")
			}
		})
	}
}

func TestDispatcher_WholeFloatsAccepted(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 4.0, "y": 4})
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 1.0, "y": int64(2), "symbol": "X"})
	if got, ok := d.Board().Get(1, 2); !ok || got != "X" {
		t.Fatalf("expected X at (1,2), got=%q ok=%v", got, ok)
	}
}

func TestDispatcher_IntegerEdges(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": uint8(4), "y": float64(1 << 53)})
	if d.Board().Height() != 1<<53 {
		t.Fatalf("expected height 2^53, got=%d", d.Board().Height())
	}
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": uint64(math.MaxInt64), "y": 0, "symbol": "X"})
	if got, ok := d.Board().Get(math.MaxInt64, 0); !ok || got != "X" {
		t.Fatalf("expected X at max int, got=%q ok=%v", got, ok)
	}
}

func TestDispatcher_EmptySymbolIsAToken(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 2})
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 1, "y": 0, "symbol": ""})

	res := mustExecute(t, d, CmdGetToken, map[string]any{"x": 1, "y": 0})
	if res.Absent() || !res.Present || res.Symbol != "" {
		t.Fatalf("expected empty symbol present, got=%+v", res)
	}
	if got := d.Board().Len(); got != 1 {
		t.Fatalf("expected one token, got=%d", got)
	}
}

func TestDispatcher_CreateBoardReplaces(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	first := mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 8, "y": 8}).Board
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 3, "y": 3, "symbol": "X"})

	second := mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 3}).Board
	if second == first || d.Board() != second {
		t.Fatalf("expected a fresh board to replace the old one")
	}
	if res := mustExecute(t, d, CmdGetToken, map[string]any{"x": 3, "y": 3}); !res.Absent() {
		t.Fatalf("expected old tokens discarded, got=%+v", res)
	}
	if d.Render() != ". . \n\n. . \n\n. . \n\n" {
		t.Fatalf("unexpected render: %q", d.Render())
	}
}

func TestDispatcher_OutOfRangeTolerated(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 2})

	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 9, "y": 1, "symbol": "X"})
	if res := mustExecute(t, d, CmdGetToken, map[string]any{"x": 9, "y": 1}); res.Symbol != "X" {
		t.Fatalf("expected out-of-range token retrievable, got=%+v", res)
	}
	if res := mustExecute(t, d, CmdGetToken, map[string]any{"x": 2, "y": 7}); !res.Absent() {
		t.Fatalf("expected absence, got=%+v", res)
	}
	mustExecute(t, d, CmdRemoveToken, map[string]any{"x": 9, "y": 1})
	mustExecute(t, d, CmdRemoveToken, map[string]any{"x": 9, "y": 1})
}

func TestDispatcher_StrictBounds(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{StrictBounds: true})
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 2})

	_, err := d.Execute(context.Background(), NewAction(CmdPlaceToken, map[string]any{"x": 1, "y": 2, "symbol": "X"}))
	if !errors.Is(err, ErrValidation) || ReasonOf(err) != ReasonCoordOutOfRange.Code || KeyOf(err) != "y" {
		t.Fatalf("expected out-of-range rejection on y, got=%v key=%q", err, KeyOf(err))
	}
	_, err = d.Execute(context.Background(), NewAction(CmdGetToken, map[string]any{"x": 5, "y": 0}))
	if KeyOf(err) != "x" {
		t.Fatalf("expected out-of-range rejection on x, got=%v", err)
	}
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 1, "y": 1, "symbol": "X"})
}

func TestDispatcher_RenderOptionsAndNoBoard(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{Render: domainRender("_", "|")})
	if d.Render() != "" {
		t.Fatalf("expected empty render without board, got=%q", d.Render())
	}
	mustExecute(t, d, CmdCreateBoard, map[string]any{"x": 2, "y": 1})
	mustExecute(t, d, CmdPlaceToken, map[string]any{"x": 0, "y": 0, "symbol": "X"})
	if d.Render() != "X|_|\n\n" {
		t.Fatalf("unexpected render: %q", d.Render())
	}
}

func TestDispatcher_TypedSurface(t *testing.T) {
	d, _ := newTestDispatcher(t, Options{})
	if _, err := d.CreateBoard(CreateBoardParams{Width: 0, Height: 3}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero width, got=%v", err)
	}
	if d.HasBoard() {
		t.Fatalf("expected rejected create_board to leave no board")
	}
	if _, err := d.CreateBoard(CreateBoardParams{Width: 3, Height: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.PlaceToken(PlaceTokenParams{CoordParams: CoordParams{X: 1, Y: 2}, Symbol: "O"}); err != nil {
		t.Fatalf("place: %v", err)
	}
	symbol, ok, err := d.GetToken(CoordParams{X: 1, Y: 2})
	if err != nil || !ok || symbol != "O" {
		t.Fatalf("unexpected get: %q %v %v", symbol, ok, err)
	}
	if err := d.RemoveToken(CoordParams{X: 1, Y: 2}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(d.Commands()) != 4 {
		t.Fatalf("unexpected routing table: %v", d.Commands())
	}
}
