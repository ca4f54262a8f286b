package app

import (
	"context"

	"GameBoard/modules/kit/logx"
)

// Executor is the single command entry point shared by the in-process Dispatcher and the
// actor-backed session runtime.
type Executor interface {
	Execute(ctx context.Context, action Action) (Result, error)
}

type Logger = logx.Logger
