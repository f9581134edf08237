// Package redirector handles a single deep-link invocation: it forwards
// the link to the host application as a search and then ends the process.
package redirector

import (
	"context"
	"net/url"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/dispatch"
	"github.com/computerscienceiscool/springboard/pkg/link"
	"github.com/computerscienceiscool/springboard/pkg/logging"
)

// Invocation is one delivery of a deep link by the operating system
type Invocation struct {
	ID      string
	Address *url.URL
	Raw     string
}

// NewInvocation builds an invocation from the raw command-line argument.
// Address is nil when raw is empty or not a URL.
func NewInvocation(raw string) Invocation {
	return Invocation{
		ID:      uuid.NewString(),
		Address: link.ParseRaw(raw),
		Raw:     raw,
	}
}

func (inv Invocation) String() string {
	if inv.Address == nil {
		return "Invocation{id=" + inv.ID + " raw=" + inv.Raw + " address=<nil>}"
	}
	return "Invocation{id=" + inv.ID + " address=" + inv.Address.String() + "}"
}

// Redirector forwards invocations to the host application
type Redirector struct {
	dispatcher dispatch.Dispatcher
	action     string
	packageID  string
	logger     *zap.Logger
	exit       func(int)
}

// Option configures a Redirector
type Option func(*Redirector)

// WithExit replaces os.Exit, mainly for tests
func WithExit(exit func(int)) Option {
	return func(r *Redirector) {
		r.exit = exit
	}
}

// WithAction overrides the forwarded action
func WithAction(action string) Option {
	return func(r *Redirector) {
		r.action = action
	}
}

// New creates a Redirector. packageID is sent as the filter of every
// forward request.
func New(d dispatch.Dispatcher, packageID string, logger *zap.Logger, opts ...Option) *Redirector {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redirector{
		dispatcher: d,
		action:     link.SearchAction,
		packageID:  packageID,
		logger:     logger.Named("redirector"),
		exit:       os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle forwards inv when it carries a category and identifier, logs
// otherwise, and then exits with code 0. Dispatch failures are logged and
// never change the exit code. With the default exit function Handle does
// not return.
func (r *Redirector) Handle(ctx context.Context, inv Invocation) {
	r.forward(ctx, inv)
	_ = r.logger.Sync()
	r.exit(0)
}

func (r *Redirector) forward(ctx context.Context, inv Invocation) {
	log := r.logger.With(zap.String(logging.FieldInvocationID, inv.ID))

	req, ok := link.ParseAction(inv.Address, r.action, r.packageID)
	if !ok {
		log.Error("could not parse uri from invocation",
			zap.Stringer(logging.FieldInvocation, inv),
		)
		return
	}

	if err := r.dispatcher.Dispatch(ctx, req); err != nil {
		log.Error(err.Error(),
			zap.String(logging.FieldAction, req.Action),
			zap.String(logging.FieldQuery, req.Query),
		)
		return
	}

	log.Debug("forwarded",
		zap.String(logging.FieldQuery, req.Query),
		zap.String(logging.FieldFilter, req.Filter),
	)
}
