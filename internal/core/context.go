package core

import "context"

type contextKey string

const ctxKeyActor contextKey = "actor"

// Actor identifies who triggered a mutation, for the change log.
type Actor struct {
	IP        string
	UserAgent string
}

// ContextWithActor attaches the actor of the current request to ctx.
func ContextWithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

// ActorFromContext returns the actor stored in ctx, or the zero Actor.
func ActorFromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(ctxKeyActor).(Actor); ok {
		return a
	}
	return Actor{}
}

// logArgs returns slog key/value pairs for the actor, omitting empty fields.
func (a Actor) logArgs() []any {
	var args []any
	if a.IP != "" {
		args = append(args, "ip", a.IP)
	}
	if a.UserAgent != "" {
		args = append(args, "user_agent", a.UserAgent)
	}
	return args
}
