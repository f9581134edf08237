package dispatch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/link"
	"github.com/computerscienceiscool/springboard/pkg/logging"
)

// Transport delivers a forward request to a receiver
type Transport interface {
	// Available reports whether the receiver can currently be reached.
	Available(m Manifest) bool
	// Deliver sends req without waiting for the receiver to act on it.
	Deliver(ctx context.Context, m Manifest, req link.ForwardRequest) error
}

// DefaultTransports returns the built-in transports keyed by name
func DefaultTransports() map[string]Transport {
	return map[string]Transport{
		TransportExec:   NewExecTransport(),
		TransportSocket: NewSocketTransport(),
	}
}

// Registry holds the known receivers and resolves them by action
type Registry struct {
	manifests  []Manifest
	transports map[string]Transport
	logger     *zap.Logger
}

// NewRegistry creates an empty registry using the given transports
func NewRegistry(logger *zap.Logger, transports map[string]Transport) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		transports: transports,
		logger:     logger,
	}
}

// Add validates and registers a receiver
func (r *Registry) Add(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, ok := r.transports[m.Transport]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransport, m.Transport)
	}
	r.manifests = append(r.manifests, m)
	return nil
}

// LoadDir registers every *.yaml and *.yml manifest in dir.
// A missing directory is not an error. Invalid manifests are logged and skipped.
func (r *Registry) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("receivers directory not found", zap.String(logging.FieldPath, dir))
			return nil
		}
		return fmt.Errorf("cannot read receivers directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		m, err := ReadManifest(path)
		if err == nil {
			err = r.Add(m)
		}
		if err != nil {
			r.logger.Warn("skipping receiver manifest",
				zap.String(logging.FieldPath, path),
				zap.Error(err),
			)
			continue
		}
		r.logger.Debug("receiver registered",
			zap.String(logging.FieldReceiver, m.Name),
			zap.String(logging.FieldPath, path),
		)
	}
	return nil
}

// Manifests returns all registered receivers in registration order
func (r *Registry) Manifests() []Manifest {
	return slices.Clone(r.manifests)
}

// Resolve returns the available receivers that handle action,
// highest priority first and then by name.
func (r *Registry) Resolve(action string) []Manifest {
	var matches []Manifest
	for _, m := range r.manifests {
		if !m.Handles(action) {
			continue
		}
		if !r.transports[m.Transport].Available(m) {
			r.logger.Debug("receiver unavailable",
				zap.String(logging.FieldReceiver, m.Name),
				zap.String(logging.FieldTransport, m.Transport),
			)
			continue
		}
		matches = append(matches, m)
	}

	slices.SortStableFunc(matches, func(a, b Manifest) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return matches
}

// Transport returns the transport registered under name
func (r *Registry) Transport(name string) (Transport, bool) {
	t, ok := r.transports[name]
	return t, ok
}
