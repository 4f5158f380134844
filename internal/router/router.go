// Package router maps (resource, verb) command pairs to handlers and turns
// handler failures into classified results the CLI can translate to exit
// codes. It is deliberately transport-free: handlers receive a
// [models.CommandRequest] and return a payload, nothing about flags or
// output formats leaks in.
package router

import (
	"context"
	"fmt"

	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// HandlerFunc executes one command. The returned payload is rendered by
// the caller; errors are classified by the router.
type HandlerFunc func(ctx context.Context, req models.CommandRequest) (any, error)

type route struct {
	resource string
	verb     string
}

// dispatchState tracks a request through its lifecycle. A request always
// moves Idle → Validating and then either stops at Failed (unknown
// command) or proceeds through Dispatching to Succeeded or Failed.
type dispatchState int

const (
	stateIdle dispatchState = iota
	stateValidating
	stateDispatching
	stateSucceeded
	stateFailed
)

func (s dispatchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateValidating:
		return "validating"
	case stateDispatching:
		return "dispatching"
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Router is the command table. Register during startup, Dispatch per
// invocation; Register is not safe for concurrent use with Dispatch.
type Router struct {
	routes map[route]HandlerFunc

	logger *logger.Logger
}

// New constructs an empty Router.
func New(log *logger.Logger) *Router {
	return &Router{
		routes: make(map[route]HandlerFunc),
		logger: log.GetChildLogger("router"),
	}
}

// Register binds a handler to a (resource, verb) pair, replacing any
// previous binding.
func (r *Router) Register(resource, verb string, h HandlerFunc) {
	r.routes[route{resource: resource, verb: verb}] = h
}

// Routes returns the registered (resource, verb) pairs, for help output.
func (r *Router) Routes() []models.CommandRequest {
	out := make([]models.CommandRequest, 0, len(r.routes))
	for rt := range r.routes {
		out = append(out, models.CommandRequest{Resource: rt.resource, Verb: rt.verb})
	}
	return out
}

// Dispatch validates and executes one command. An unknown (resource,
// verb) pair fails with [models.ClassUnsupportedCommand] before the
// handler layer is touched, so no network traffic or credential access
// happens for commands that cannot run.
func (r *Router) Dispatch(ctx context.Context, req models.CommandRequest) models.CommandResult {
	state := stateIdle
	log := r.logger.With().Str("resource", req.Resource).Str("verb", req.Verb).Logger()

	state = stateValidating
	handler, ok := r.routes[route{resource: req.Resource, verb: req.Verb}]
	if !ok || req.Resource == "" || req.Verb == "" {
		state = stateFailed
		log.Debug().Stringer("state", state).Msg("unknown command")
		return models.CommandResult{Err: &models.CommandError{
			Class:   models.ClassUnsupportedCommand,
			Message: fmt.Sprintf("unsupported command: %s %s", req.Resource, req.Verb),
		}}
	}

	state = stateDispatching
	log.Debug().Stringer("state", state).Msg("dispatching")

	payload, err := handler(ctx, req)
	if err != nil {
		state = stateFailed
		cmdErr := classify(err)
		log.Debug().Stringer("state", state).Str("class", string(cmdErr.Class)).Err(err).Msg("command failed")
		return models.CommandResult{Err: cmdErr}
	}

	state = stateSucceeded
	log.Debug().Stringer("state", state).Msg("command succeeded")
	return models.CommandResult{Payload: payload}
}
