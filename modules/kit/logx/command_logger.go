package logx

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BizLog describes a rejected command.
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog describes a technical failure.
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// ReportCommandWithLoggerContext records a command that completed:
// executed commands at DEBUG, unknown commands (no-op) at INFO.
func ReportCommandWithLoggerContext(ctx context.Context, l Logger, command string, noop bool, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := []zap.Field{
		zap.String("log_type", "command"),
		zap.String("command", command),
		zap.Bool("noop", noop),
	}
	base = append(base, fields...)
	withCtx := l.WithContext(ctx)
	if noop {
		withCtx.Info("command ignored", base...)
		return
	}
	withCtx.Debug("command executed", base...)
}

// ReportErrorWithLoggerContext routes err to the biz or sys reporter by its kind.
func ReportErrorWithLoggerContext(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if err == nil || l == nil {
		return
	}
	meta := BuildErrorLog(err)
	if meta.Sys {
		ReportSysErrorWithLoggerContext(ctx, l, NewSysLog(action, err), fields...)
		return
	}
	fields = append(fields, zap.String("error_code", meta.Code))
	if len(meta.Data) != 0 {
		fields = append(fields, zap.Any("error_data", meta.Data))
	}
	ReportBizWithLoggerContext(ctx, l, NewBizLog(action, meta.Reason, meta.Msg), fields...)
}

// ReportBizWithLoggerContext records a rejection: INFO, err_type=biz, no stack.
func ReportBizWithLoggerContext(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := biz.Action
	if action == "" {
		action = "biz_reject"
	}

	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
	}
	if biz.Reason != "" {
		base = append(base, zap.String("reason", biz.Reason))
	}
	if biz.Message != "" {
		base = append(base, zap.String("biz_message", biz.Message))
	}
	base = append(base, fields...)

	msg := action
	switch {
	case biz.Reason != "" && biz.Message != "":
		msg = fmt.Sprintf("%s, reason:%s, msg:%s", action, biz.Reason, biz.Message)
	case biz.Reason != "":
		msg = fmt.Sprintf("%s, reason:%s", action, biz.Reason)
	case biz.Message != "":
		msg = fmt.Sprintf("%s, msg:%s", action, biz.Message)
	}
	l.WithContext(ctx).Info(msg, base...)
}

// ReportSysErrorWithLoggerContext records a technical failure: ERROR, err_type=sys, with
// cause chain and origin stack when available.
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}

	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	if meta.Stack != "" {
		base = append(base, zap.String("stack_origin", meta.Stack))
	}
	base = append(base, fields...)

	msg := fmt.Sprintf("%s, error:%s", action, meta.Error)
	if meta.Reason != "" {
		msg = fmt.Sprintf("%s, reason:%s, error:%s", action, meta.Reason, meta.Error)
	}
	l.WithContext(ctx).Error(msg, base...)
}
