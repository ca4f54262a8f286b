package app

import (
	"errors"
	"fmt"

	"GameBoard/modules/kit/errx"
)

type Code = errx.Code

const (
	// CodeValidation marks a malformed payload: missing key, wrong type, bad value.
	CodeValidation Code = "CODE_VALIDATION"
	// CodePrecondition marks a board-scoped command issued while no board exists.
	CodePrecondition Code = "CODE_PRECONDITION"
)

type Error = errx.Error

// Sentinels for errors.Is. Derived errors carry data "command", "key" and "reason".
var (
	ErrValidation   = errx.NewBiz(CodeValidation, "invalid payload")
	ErrPrecondition = errx.NewBiz(CodePrecondition, "no board exists")
)

func newValidationError(key string, reason Reason, cause error) *Error {
	msg := "invalid payload"
	if key != "" {
		msg = fmt.Sprintf("invalid payload key %q", key)
	}
	err := errx.NewBiz(CodeValidation, msg).WithReason(reason)
	if key != "" {
		err = err.WithData("key", key)
	}
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

func newPreconditionError(command Name) *Error {
	return ErrPrecondition.WithReason(ReasonNoBoard).WithData("command", string(command))
}

// KeyOf returns the payload key a validation error points at, if any.
func KeyOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	key, _ := e.Data()["key"].(string)
	return key
}

// ReasonOf returns the reason code attached to err, if any.
func ReasonOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Reason()
}
