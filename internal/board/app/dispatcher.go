package app

import (
	"context"
	"errors"

	"GameBoard/internal/board/domain"
	"GameBoard/modules/kit/logx"

	"go.uber.org/zap"
)

// Options tunes a Dispatcher.
type Options struct {
	// StrictBounds rejects board-scoped coordinates outside the declared extent.
	// The default accepts them.
	StrictBounds bool
	Render       domain.RenderOptions
}

// Dispatcher owns at most one board and routes named commands to it.
// It is not safe for concurrent use; see the actors package for a confined variant.
type Dispatcher struct {
	opts   Options
	log    Logger
	board  *domain.Grid
	routes map[Name]route
}

type route struct {
	handle func(d *Dispatcher, payload map[string]any) (Result, error)
}

func NewDispatcher(opts Options, log Logger) *Dispatcher {
	if log == nil {
		log = logx.Nop()
	}
	d := &Dispatcher{
		opts:   opts,
		log:    log,
		routes: make(map[Name]route),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, CmdCreateBoard, createBoardKeys, func(d *Dispatcher, p CreateBoardParams) (Result, error) {
		g, err := d.CreateBoard(p)
		return Result{Board: g}, err
	})
	register(d, CmdPlaceToken, placeTokenKeys, func(d *Dispatcher, p PlaceTokenParams) (Result, error) {
		return Result{}, d.PlaceToken(p)
	})
	register(d, CmdGetToken, coordKeys, func(d *Dispatcher, p CoordParams) (Result, error) {
		symbol, ok, err := d.GetToken(p)
		return Result{Symbol: symbol, Present: ok}, err
	})
	register(d, CmdRemoveToken, coordKeys, func(d *Dispatcher, p CoordParams) (Result, error) {
		return Result{}, d.RemoveToken(p)
	})
}

// register binds name to a typed handler; the payload is decoded into P before the call.
func register[P any](d *Dispatcher, name Name, keys []string, fn func(d *Dispatcher, p P) (Result, error)) {
	if _, exists := d.routes[name]; exists {
		panic("dispatcher route already registered: " + string(name))
	}
	d.routes[name] = route{
		handle: func(d *Dispatcher, payload map[string]any) (Result, error) {
			p, err := bind[P](payload, keys)
			if err != nil {
				return Result{}, err
			}
			return fn(d, p)
		},
	}
}

// Commands lists the routing table.
func (d *Dispatcher) Commands() []Name {
	return []Name{CmdCreateBoard, CmdPlaceToken, CmdGetToken, CmdRemoveToken}
}

// Execute runs one action. Unknown names return a NoOp result and no error.
// Validation and precondition errors are returned unchanged and logged once.
func (d *Dispatcher) Execute(ctx context.Context, action Action) (Result, error) {
	r, ok := d.routes[action.Name]
	if !ok {
		logx.ReportCommandWithLoggerContext(ctx, d.log, string(action.Name), true,
			zap.String("reason", "UNKNOWN_COMMAND"))
		return Result{Command: action.Name, NoOp: true}, nil
	}

	res, err := r.handle(d, action.Payload)
	res.Command = action.Name
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			err = e.WithData("command", string(action.Name))
		}
		logx.ReportErrorWithLoggerContext(ctx, d.log, string(action.Name), err)
		return Result{Command: action.Name}, err
	}
	logx.ReportCommandWithLoggerContext(ctx, d.log, string(action.Name), false)
	return res, nil
}

// CreateBoard replaces the current board with an empty one.
func (d *Dispatcher) CreateBoard(p CreateBoardParams) (*domain.Grid, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	d.board = domain.NewGrid(p.Width, p.Height)
	return d.board, nil
}

func (d *Dispatcher) PlaceToken(p PlaceTokenParams) error {
	g, err := d.activeBoard(CmdPlaceToken, p.CoordParams)
	if err != nil {
		return err
	}
	if err := validateParams(p); err != nil {
		return err
	}
	g.Place(p.X, p.Y, p.Symbol)
	return nil
}

// GetToken returns the symbol at p; ok is false when the cell is empty.
func (d *Dispatcher) GetToken(p CoordParams) (symbol string, ok bool, err error) {
	g, err := d.activeBoard(CmdGetToken, p)
	if err != nil {
		return "", false, err
	}
	symbol, ok = g.Get(p.X, p.Y)
	return symbol, ok, nil
}

func (d *Dispatcher) RemoveToken(p CoordParams) error {
	g, err := d.activeBoard(CmdRemoveToken, p)
	if err != nil {
		return err
	}
	g.Remove(p.X, p.Y)
	return nil
}

// HasBoard reports whether create_board has run.
func (d *Dispatcher) HasBoard() bool {
	return d.board != nil
}

// Board returns the current board, or nil before create_board.
func (d *Dispatcher) Board() *domain.Grid {
	return d.board
}

// Render dumps the current board; with no board it renders nothing.
func (d *Dispatcher) Render() string {
	return d.board.Render(d.opts.Render)
}

func (d *Dispatcher) activeBoard(command Name, c CoordParams) (*domain.Grid, error) {
	if err := validateParams(c); err != nil {
		return nil, err
	}
	if d.board == nil {
		return nil, newPreconditionError(command)
	}
	if d.opts.StrictBounds && !d.board.InBounds(c.X, c.Y) {
		key := "x"
		if c.X >= 0 && c.X < d.board.Width() {
			key = "y"
		}
		return nil, newValidationError(key, ReasonCoordOutOfRange, nil).
			WithDataMap(map[string]any{
				"x":      c.X,
				"y":      c.Y,
				"width":  d.board.Width(),
				"height": d.board.Height(),
			})
	}
	return d.board, nil
}
