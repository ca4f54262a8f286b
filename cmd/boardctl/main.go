package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	boardactor "GameBoard/internal/board/actor"
	"GameBoard/internal/board/app"
	"GameBoard/internal/board/domain"
	"GameBoard/internal/board/script"
	"GameBoard/internal/shared/config"
	"GameBoard/internal/shared/logs"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

type renderFunc func(ctx context.Context) (string, error)

func run(ctx context.Context, args []string, out io.Writer) int {
	fs := pflag.NewFlagSet("boardctl", pflag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (default: search configs/conf.yml upward)")
	scriptPath := fs.String("script", "", "script to replay (default: built-in demo)")
	recordPath := fs.String("record", "", "write the replayed steps and their outcomes to this file")
	useSession := fs.Bool("session", false, "run the script inside an actor-backed session")
	quiet := fs.Bool("quiet", false, "do not print the board after each step")
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(out, "load config: %v\n", err)
		return 1
	}
	if err := logs.Init("boardctl", cfg.Log); err != nil {
		fmt.Fprintf(out, "init logs: %v\n", err)
		return 1
	}
	defer logs.Sync()

	s := script.Demo()
	if *scriptPath != "" {
		if s, err = script.Load(*scriptPath); err != nil {
			logs.Error("load script failed", zap.String("path", *scriptPath), zap.Error(err))
			return 1
		}
	}

	opts := app.Options{
		StrictBounds: cfg.Board.StrictBounds,
		Render: domain.RenderOptions{
			Placeholder: cfg.Board.Placeholder,
			Separator:   cfg.Board.Separator,
		},
	}

	var exec app.Executor
	var render renderFunc
	if *useSession {
		rt, err := boardactor.NewRuntime(boardactor.Options{
			AskTimeout: cfg.Session.AskTimeout,
			NodeID:     cfg.Session.NodeID,
			Board:      opts,
			Logger:     logs.Kit(),
		})
		if err != nil {
			logs.Error("start session runtime failed", zap.Error(err))
			return 1
		}
		defer rt.Shutdown()
		session, err := rt.OpenSession(ctx)
		if err != nil {
			logs.Error("open session failed", zap.Error(err))
			return 1
		}
		defer func() { _ = session.Close(context.Background()) }()
		exec, render = session, session.Render
	} else {
		d := app.NewDispatcher(opts, logs.Kit())
		exec = d
		render = func(context.Context) (string, error) { return d.Render(), nil }
	}

	var rec *script.Recorder
	if *recordPath != "" {
		rec = script.NewRecorder(s.Name, exec)
		exec = rec
	}

	player := script.NewPlayer(exec)
	player.OnStep = func(o script.Outcome) {
		printOutcome(ctx, out, o, render, *quiet)
	}

	n, playErr := player.Play(ctx, s)
	if rec != nil {
		if err := script.Save(*recordPath, rec.Script()); err != nil {
			logs.Error("save recording failed", zap.String("path", *recordPath), zap.Error(err))
			return 1
		}
	}
	if playErr != nil {
		logs.Error("script failed", zap.String("script", s.Name), zap.Int("steps_run", n), zap.Error(playErr))
		fmt.Fprintf(out, "FAIL %s: %v\n", s.Name, playErr)
		return 1
	}
	logs.Info("script passed", zap.String("script", s.Name), zap.Int("steps", n))
	fmt.Fprintf(out, "PASS %s (%d steps)\n", s.Name, n)
	return 0
}

func printOutcome(ctx context.Context, out io.Writer, o script.Outcome, render renderFunc, quiet bool) {
	status := "ok"
	switch {
	case o.Err != nil:
		status = "error: " + o.Err.Error()
	case o.Result.NoOp:
		status = "no-op"
	case o.Result.Present:
		status = fmt.Sprintf("%q", o.Result.Symbol)
	case o.Result.Absent():
		status = "absent"
	}
	fmt.Fprintf(out, "#%d %s %v -> %s\n", o.Index, o.Step.Name, o.Step.Payload, status)
	if quiet {
		return
	}
	text, err := render(ctx)
	if err != nil {
		logs.Warn("render failed", zap.Error(err))
		return
	}
	fmt.Fprint(out, text)
}
