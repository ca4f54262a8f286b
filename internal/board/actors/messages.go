package actors

import "GameBoard/internal/board/app"

type SessionID int64

// OpenSession asks the manager for a fresh session; the reply is *SessionOpened.
type OpenSession struct{}

type SessionOpened struct {
	SessionID SessionID
}

// ExecuteRequest runs one action inside a session; the reply is *ExecuteReply.
type ExecuteRequest struct {
	SessionID SessionID
	TraceID   string
	Action    app.Action
}

// ExecuteReply carries the dispatcher outcome. Result.Board is a copy of the session's board.
type ExecuteReply struct {
	Result app.Result
	Err    error
}

// CloseSession stops a session actor; the reply is *SessionClosed.
type CloseSession struct {
	SessionID SessionID
}

type SessionClosed struct {
	Err error
}

// ListSessions asks the manager for its live session ids; the reply is *SessionList.
type ListSessions struct{}

type SessionList struct {
	IDs []SessionID
}

// RenderRequest asks a session for its debug dump; the reply is *RenderReply.
type RenderRequest struct {
	SessionID SessionID
}

type RenderReply struct {
	Text     string
	HasBoard bool
	Err      error
}
