// Package dispatch delivers forward requests to receivers registered for
// their action. Delivery is fire-and-forget: no receiver acknowledgment is
// awaited.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/link"
	"github.com/computerscienceiscool/springboard/pkg/logging"
)

// Dispatcher hands a forward request to whichever receiver can handle it
type Dispatcher interface {
	Dispatch(ctx context.Context, req link.ForwardRequest) error
}

// Router dispatches through a Registry
type Router struct {
	registry *Registry
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRouter creates a router. timeout bounds each delivery attempt;
// zero means no bound beyond ctx.
func NewRouter(registry *Registry, timeout time.Duration, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		registry: registry,
		timeout:  timeout,
		logger:   logger,
	}
}

// Dispatch delivers req to the first resolved receiver that accepts it.
// It returns ErrReceiverNotFound when nothing handles req.Action, and a
// *DeliveryError when every candidate failed.
func (r *Router) Dispatch(ctx context.Context, req link.ForwardRequest) error {
	candidates := r.registry.Resolve(req.Action)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no receiver handles %s", ErrReceiverNotFound, req.Action)
	}

	var errs []error
	for _, m := range candidates {
		transport, _ := r.registry.Transport(m.Transport)

		err := r.deliver(ctx, transport, m, req)
		if err == nil {
			r.logger.Debug("forward request delivered",
				zap.String(logging.FieldReceiver, m.Name),
				zap.String(logging.FieldAction, req.Action),
				zap.String(logging.FieldQuery, req.Query),
			)
			return nil
		}

		r.logger.Debug("receiver rejected forward request",
			zap.String(logging.FieldReceiver, m.Name),
			zap.Error(err),
		)
		errs = append(errs, &ReceiverError{Receiver: m.Name, Err: err})
	}

	return &DeliveryError{Action: req.Action, Errs: errs}
}

func (r *Router) deliver(ctx context.Context, t Transport, m Manifest, req link.ForwardRequest) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return t.Deliver(ctx, m, req)
}
