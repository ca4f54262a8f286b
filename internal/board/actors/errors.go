package actors

import "GameBoard/modules/kit/errx"

const CodeSessionNotFound errx.Code = "SESSION_NOT_FOUND"

var ErrSessionNotFound = errx.NewBiz(CodeSessionNotFound, "session not found")
