package actor

import (
	"context"
	"errors"
	"strconv"
	"time"

	"GameBoard/internal/board/actors"
	"GameBoard/internal/board/app"
	"GameBoard/internal/shared/utils"
	"GameBoard/modules/kit/errx"
	"GameBoard/modules/kit/logx"
	"GameBoard/modules/kit/tracex"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type SessionID = actors.SessionID

type Options struct {
	AskTimeout time.Duration
	NodeID     int64
	Board      app.Options
	Logger     logx.Logger
}

// Runtime hosts board sessions on a protoactor system. Each session is one actor owning
// one Dispatcher, so any number of goroutines may call into the runtime.
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(opts Options) (*Runtime, error) {
	if opts.AskTimeout <= 0 {
		opts.AskTimeout = defaultAskTimeout
	}
	ids, err := utils.NewSnowflake(opts.NodeID)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logx.Nop()
	}
	boardOpts := opts.Board
	factory := func() *app.Dispatcher {
		return app.NewDispatcher(boardOpts, log)
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(ids, factory)
	})

	return &Runtime{
		system:  system,
		root:    root,
		manager: root.Spawn(managerProps),
		timeout: opts.AskTimeout,
	}, nil
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		r.root.Stop(r.manager)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// OpenSession starts a session with no board.
func (r *Runtime) OpenSession(ctx context.Context) (*Session, error) {
	res, err := r.request(ctx, &actors.OpenSession{})
	if err != nil {
		return nil, err
	}
	opened, ok := res.(*actors.SessionOpened)
	if !ok {
		return nil, unexpectedReply(res)
	}
	return &Session{rt: r, id: opened.SessionID}, nil
}

// Execute runs action in session id. Dispatcher errors come back unchanged; transport
// failures are SERVICE_UNAVAILABLE or TIMEOUT.
func (r *Runtime) Execute(ctx context.Context, id SessionID, action app.Action) (app.Result, error) {
	ctx = tracex.EnsureTraceID(ctx)
	traceID, _ := tracex.TraceIDFrom(ctx)
	res, err := r.request(ctx, &actors.ExecuteRequest{SessionID: id, TraceID: traceID, Action: action})
	if err != nil {
		return app.Result{Command: action.Name}, err
	}
	reply, ok := res.(*actors.ExecuteReply)
	if !ok {
		return app.Result{Command: action.Name}, unexpectedReply(res)
	}
	return reply.Result, reply.Err
}

// Render returns the session's debug dump; empty when it has no board.
func (r *Runtime) Render(ctx context.Context, id SessionID) (string, error) {
	res, err := r.request(ctx, &actors.RenderRequest{SessionID: id})
	if err != nil {
		return "", err
	}
	reply, ok := res.(*actors.RenderReply)
	if !ok {
		return "", unexpectedReply(res)
	}
	return reply.Text, reply.Err
}

func (r *Runtime) CloseSession(ctx context.Context, id SessionID) error {
	res, err := r.request(ctx, &actors.CloseSession{SessionID: id})
	if err != nil {
		return err
	}
	closed, ok := res.(*actors.SessionClosed)
	if !ok {
		return unexpectedReply(res)
	}
	return closed.Err
}

// Sessions lists live session ids in ascending order.
func (r *Runtime) Sessions(ctx context.Context) ([]SessionID, error) {
	res, err := r.request(ctx, &actors.ListSessions{})
	if err != nil {
		return nil, err
	}
	list, ok := res.(*actors.SessionList)
	if !ok {
		return nil, unexpectedReply(res)
	}
	return list.IDs, nil
}

func (r *Runtime) request(ctx context.Context, msg any) (any, error) {
	if r == nil || r.root == nil || r.manager == nil {
		return nil, errx.ErrUnavailable.WithData("reason", "ACTOR_RUNTIME_NOT_READY")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, errx.ErrTimeout.WithCause(err)
			}
			return nil, errx.ErrUnavailable.WithCause(err)
		}
	}

	// 超时取 ctx deadline 和配置里 ask_timeout 的较小值
	future := r.root.RequestFuture(r.manager, msg, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func unexpectedReply(res any) error {
	return errx.ErrInternal.WithData("reason", "UNEXPECTED_REPLY").WithData("reply", res)
}

// Session is a handle on one runtime session; it satisfies app.Executor.
type Session struct {
	rt *Runtime
	id SessionID
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) Execute(ctx context.Context, action app.Action) (app.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = tracex.WithSessionID(ctx, strconv.FormatInt(int64(s.id), 10))
	return s.rt.Execute(ctx, s.id, action)
}

func (s *Session) Render(ctx context.Context) (string, error) {
	return s.rt.Render(ctx, s.id)
}

func (s *Session) Close(ctx context.Context) error {
	return s.rt.CloseSession(ctx, s.id)
}
