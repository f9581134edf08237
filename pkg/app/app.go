package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/config"
	"github.com/computerscienceiscool/springboard/pkg/dispatch"
	"github.com/computerscienceiscool/springboard/pkg/redirector"
)

// App represents the main application
type App struct {
	config     *config.Config
	logger     *zap.Logger
	registry   *dispatch.Registry
	router     *dispatch.Router
	redirector *redirector.Redirector
}

// Handle processes one deep-link argument and terminates the process
func (a *App) Handle(ctx context.Context, raw string) {
	a.redirector.Handle(ctx, redirector.NewInvocation(raw))
}

// PrintReceivers writes the receivers resolved for action, in dispatch order
func (a *App) PrintReceivers(w io.Writer, action string) {
	if action == "" {
		action = a.config.Action
	}

	resolved := a.registry.Resolve(action)
	fmt.Fprintf(w, "Action: %s\n", action)
	fmt.Fprintf(w, "Filter: %s\n", a.config.PackageID)
	fmt.Fprintf(w, "Receivers directory: %s\n", a.config.ReceiversDir)

	if len(resolved) == 0 {
		fmt.Fprintln(w, "No available receivers")
	}
	for i, m := range resolved {
		target := m.Address
		if m.Transport == dispatch.TransportExec {
			target = strings.Join(m.Command, " ")
		}
		fmt.Fprintf(w, "%d. %s (priority %d, %s: %s) from %s\n",
			i+1, m.Name, m.Priority, m.Transport, target, m.Source)
	}

	registered := a.registry.Manifests()
	if unavailable := countHandling(registered, action) - len(resolved); unavailable > 0 {
		fmt.Fprintf(w, "Unavailable: %d\n", unavailable)
	}
}

func countHandling(manifests []dispatch.Manifest, action string) int {
	n := 0
	for _, m := range manifests {
		if m.Handles(action) {
			n++
		}
	}
	return n
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRegistry returns the app's receiver registry
func (a *App) GetRegistry() *dispatch.Registry {
	return a.registry
}

// GetRouter returns the app's dispatcher
func (a *App) GetRouter() *dispatch.Router {
	return a.router
}
