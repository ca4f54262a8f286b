package actors

import (
	"sort"

	"GameBoard/internal/board/app"
	"GameBoard/internal/shared/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// DispatcherFactory builds the dispatcher a new session owns.
type DispatcherFactory func() *app.Dispatcher

// ManagerActor spawns one SessionActor per session and routes requests to it.
type ManagerActor struct {
	ids      *utils.Snowflake
	factory  DispatcherFactory
	sessions map[SessionID]*actor.PID
}

func NewManagerActor(ids *utils.Snowflake, factory DispatcherFactory) *ManagerActor {
	return &ManagerActor{
		ids:      ids,
		factory:  factory,
		sessions: make(map[SessionID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OpenSession:
		id := m.spawn(ctx)
		ctx.Respond(&SessionOpened{SessionID: id})
	case *ExecuteRequest:
		if msg == nil {
			ctx.Respond(&ExecuteReply{Err: ErrSessionNotFound})
			return
		}
		pid, ok := m.sessions[msg.SessionID]
		if !ok {
			ctx.Respond(&ExecuteReply{Err: ErrSessionNotFound.WithData("session_id", int64(msg.SessionID))})
			return
		}
		ctx.Forward(pid)
	case *RenderRequest:
		if msg == nil {
			ctx.Respond(&RenderReply{Err: ErrSessionNotFound})
			return
		}
		pid, ok := m.sessions[msg.SessionID]
		if !ok {
			ctx.Respond(&RenderReply{Err: ErrSessionNotFound.WithData("session_id", int64(msg.SessionID))})
			return
		}
		ctx.Forward(pid)
	case *CloseSession:
		if msg == nil {
			ctx.Respond(&SessionClosed{Err: ErrSessionNotFound})
			return
		}
		pid, ok := m.sessions[msg.SessionID]
		if !ok {
			ctx.Respond(&SessionClosed{Err: ErrSessionNotFound.WithData("session_id", int64(msg.SessionID))})
			return
		}
		// 先从路由表摘除，新请求直接 SESSION_NOT_FOUND；
		// Poison 排在已转发的请求之后，在途请求照常处理完再停止。
		delete(m.sessions, msg.SessionID)
		ctx.Poison(pid)
		ctx.Respond(&SessionClosed{})
	case *ListSessions:
		ids := make([]SessionID, 0, len(m.sessions))
		for id := range m.sessions {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ctx.Respond(&SessionList{IDs: ids})
	}
}

func (m *ManagerActor) spawn(ctx actor.Context) SessionID {
	id := SessionID(m.ids.NextID())
	dispatcher := m.factory()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSessionActor(id, dispatcher)
	})
	m.sessions[id] = ctx.Spawn(props)
	return id
}
