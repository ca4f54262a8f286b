package logx

import (
	"context"
	"errors"
	"testing"

	"GameBoard/modules/kit/errx"
	"GameBoard/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestBuildErrorLog_ExtractsMetaAndStack(t *testing.T) {
	cause := errors.New("actor stopped")
	e := errx.NewSys("SYS_INTERNAL", "internal error").
		WithData("command", "place_token").
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("expected error, code and msg, got=%+v", meta)
	}
	if meta.Data["command"] != "place_token" {
		t.Fatalf("expected data command=place_token, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("expected non-empty cause chain")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("expected origin and stack, origin=%q stack=%q", meta.Origin, meta.Stack)
	}
	if !meta.Sys {
		t.Fatalf("expected sys error")
	}
}

func TestBuildErrorLog_PlainErrorIsSys(t *testing.T) {
	meta := BuildErrorLog(errors.New("plain"))
	if !meta.Sys || meta.Code != "" {
		t.Fatalf("expected plain error treated as sys without code, got=%+v", meta)
	}
}

func TestReportErrorWithLoggerContext_BizAtInfo(t *testing.T) {
	l, logs := newObserved()
	err := errx.NewBiz("CODE_VALIDATION", "invalid payload").WithData("key", "x").WithData("reason", "MISSING_KEY")

	ctx := tracex.WithSessionID(context.Background(), "42")
	ReportErrorWithLoggerContext(ctx, l, "place_token", err)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got=%d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.InfoLevel {
		t.Fatalf("expected info level, got=%v", e.Level)
	}
	fields := e.ContextMap()
	if fields["err_type"] != "biz" || fields["reason"] != "MISSING_KEY" || fields["session_id"] != "42" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestReportErrorWithLoggerContext_SysAtError(t *testing.T) {
	l, logs := newObserved()
	err := errx.ErrUnavailable.WithCause(errors.New("dead letter"))

	ReportErrorWithLoggerContext(context.Background(), l, "execute", err)

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error entry, got=%v", entries)
	}
	if entries[0].ContextMap()["err_type"] != "sys" {
		t.Fatalf("unexpected fields: %v", entries[0].ContextMap())
	}
}

func TestReportCommandWithLoggerContext_Levels(t *testing.T) {
	l, logs := newObserved()
	ReportCommandWithLoggerContext(context.Background(), l, "get_token", false)
	ReportCommandWithLoggerContext(context.Background(), l, "jump", true)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got=%d", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[1].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected levels: %v %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["command"] != "jump" {
		t.Fatalf("unexpected fields: %v", entries[1].ContextMap())
	}
}
