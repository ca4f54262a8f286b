package actors

import (
	"context"
	"strconv"

	"GameBoard/internal/board/app"
	"GameBoard/modules/kit/tracex"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Online
	Stopping
	Offline
)

// SessionActor confines one Dispatcher: every command of the session runs on this actor,
// one message at a time, so the board needs no lock.
type SessionActor struct {
	state      State
	id         SessionID
	dispatcher *app.Dispatcher
}

func NewSessionActor(id SessionID, dispatcher *app.Dispatcher) *SessionActor {
	return &SessionActor{
		state:      None,
		id:         id,
		dispatcher: dispatcher,
	}
}

func (s *SessionActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		s.state = Online
	case *actor.Stopping:
		s.state = Stopping
	case *actor.Stopped:
		s.state = Offline
	case *actor.Restarting:
		s.state = None
	case *ExecuteRequest:
		if msg == nil {
			ctx.Respond(&ExecuteReply{Err: ErrSessionNotFound})
			return
		}
		if s.state != Online {
			ctx.Respond(&ExecuteReply{Err: ErrSessionNotFound.WithData("session_id", int64(s.id))})
			return
		}
		ctx.Respond(s.execute(msg))
	case *RenderRequest:
		if s.state != Online {
			ctx.Respond(&RenderReply{Err: ErrSessionNotFound.WithData("session_id", int64(s.id))})
			return
		}
		ctx.Respond(&RenderReply{Text: s.dispatcher.Render(), HasBoard: s.dispatcher.HasBoard()})
	}
}

func (s *SessionActor) execute(req *ExecuteRequest) *ExecuteReply {
	ctx := tracex.WithSessionID(context.Background(), strconv.FormatInt(int64(s.id), 10))
	if req.TraceID != "" {
		ctx = tracex.WithTraceID(ctx, req.TraceID)
	}
	res, err := s.dispatcher.Execute(ctx, req.Action)
	// 棋盘只留在 actor 内部，调用方拿到的是快照
	res.Board = res.Board.Clone()
	return &ExecuteReply{Result: res, Err: err}
}

func (s *SessionActor) ID() SessionID {
	return s.id
}
