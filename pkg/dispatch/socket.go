package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/computerscienceiscool/springboard/pkg/link"
)

// SocketTransport writes the request as one JSON line to a listening receiver
type SocketTransport struct {
	dialer net.Dialer
}

// NewSocketTransport creates a socket transport
func NewSocketTransport() *SocketTransport {
	return &SocketTransport{}
}

func network(m Manifest) string {
	if m.Network == "" {
		return "unix"
	}
	return m.Network
}

// Available reports whether a unix socket file exists. TCP receivers are
// always considered available; a refused dial surfaces as a delivery error.
func (t *SocketTransport) Available(m Manifest) bool {
	if m.Address == "" {
		return false
	}
	switch network(m) {
	case "unix", "unixgram":
		info, err := os.Stat(m.Address)
		return err == nil && info.Mode()&os.ModeSocket != 0
	default:
		return true
	}
}

// Deliver dials the receiver, writes the request and closes the connection
// without reading a reply.
func (t *SocketTransport) Deliver(ctx context.Context, m Manifest, req link.ForwardRequest) error {
	conn, err := t.dialer.DialContext(ctx, network(m), m.Address)
	if err != nil {
		return fmt.Errorf("cannot reach %s: %w", m.Address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("cannot write to %s: %w", m.Address, err)
	}
	return nil
}
