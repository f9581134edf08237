package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/computerscienceiscool/springboard/pkg/link"
)

func TestExpandArgs(t *testing.T) {
	args := []string{"--search", "{query}", "--from={filter}", "{action}", "plain"}

	got := ExpandArgs(args, searchRequest)

	assert.Equal(t, []string{
		"--search", "t:abc123",
		"--from=eu.kanade.tachiyomi.animeextension.all.rouvideo",
		link.SearchAction,
		"plain",
	}, got)
	assert.Equal(t, "{query}", args[1], "input must not be modified")
}

func TestExecTransport_Available(t *testing.T) {
	tr := &ExecTransport{
		lookPath: func(name string) (string, error) {
			if name == "aniyomi" {
				return "/usr/bin/aniyomi", nil
			}
			return "", exec.ErrNotFound
		},
		environ: os.Environ,
	}

	assert.True(t, tr.Available(execManifest("aniyomi", 0, link.SearchAction)))
	assert.False(t, tr.Available(execManifest("missing", 0, link.SearchAction)))
	assert.False(t, tr.Available(Manifest{Name: "empty"}))
}

func TestExecTransport_Deliver(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "received")

	m := Manifest{
		Name:      "shell",
		Actions:   []string{link.SearchAction},
		Transport: TransportExec,
		Command: []string{"sh", "-c",
			`printf '%s|%s|%s' "$1" "$SPRINGBOARD_FILTER" "$SPRINGBOARD_ACTION" > "$2.tmp" && mv "$2.tmp" "$2"`,
			"sh", "{query}", out},
	}

	require.NoError(t, NewExecTransport().Deliver(context.Background(), m, searchRequest))

	var data []byte
	require.Eventually(t, func() bool {
		var err error
		data, err = os.ReadFile(out)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, "t:abc123|eu.kanade.tachiyomi.animeextension.all.rouvideo|"+link.SearchAction, string(data))
}

func TestExecTransport_DeliverMissingCommand(t *testing.T) {
	err := NewExecTransport().Deliver(context.Background(),
		execManifest("springboard-no-such-receiver", 0, link.SearchAction), searchRequest)

	assert.Error(t, err)
}

func TestExecTransport_DeliverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecTransport().Deliver(ctx, execManifest("sh", 0, link.SearchAction), searchRequest)

	assert.ErrorIs(t, err, context.Canceled)
}

func socketManifest(address string) Manifest {
	return Manifest{
		Name:      "listener",
		Actions:   []string{link.SearchAction},
		Transport: TransportSocket,
		Address:   address,
	}
}

func TestSocketTransport_Deliver(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "r.sock")
	ln, err := net.Listen("unix", sock)
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan link.ForwardRequest, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadBytes('\n')
		if err != nil {
			return
		}
		var req link.ForwardRequest
		if json.Unmarshal(line, &req) == nil {
			received <- req
		}
	}()

	tr := NewSocketTransport()
	m := socketManifest(sock)
	require.True(t, tr.Available(m))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, tr.Deliver(ctx, m, searchRequest))

	select {
	case got := <-received:
		assert.Equal(t, searchRequest, got)
	case <-time.After(5 * time.Second):
		t.Fatal("receiver did not get the request")
	}
	<-done
}

func TestSocketTransport_Available(t *testing.T) {
	tr := NewSocketTransport()
	dir := t.TempDir()

	assert.False(t, tr.Available(socketManifest(filepath.Join(dir, "absent.sock"))))
	assert.False(t, tr.Available(socketManifest(writeFile(t, dir, "plain", "x"))))
	assert.False(t, tr.Available(socketManifest("")))

	tcp := socketManifest("127.0.0.1:1")
	tcp.Network = "tcp"
	assert.True(t, tr.Available(tcp))
}

func TestSocketTransport_DeliverRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	m := socketManifest(addr)
	m.Network = "tcp"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = NewSocketTransport().Deliver(ctx, m, searchRequest)

	require.Error(t, err)
	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr))
}

func TestRouter_DispatchOverSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "host.sock")
	ln, err := net.Listen("unix", sock)
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			done <- ""
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		done <- line
	}()

	reg := NewRegistry(nil, DefaultTransports())
	require.NoError(t, reg.Add(socketManifest(sock)))
	require.NoError(t, reg.Add(execManifest("springboard-no-such-receiver", 100, link.SearchAction)))

	require.NoError(t, NewRouter(reg, 2*time.Second, nil).Dispatch(context.Background(), searchRequest))
	assert.JSONEq(t, `{"action":"eu.kanade.tachiyomi.ANIMESEARCH","query":"t:abc123","filter":"eu.kanade.tachiyomi.animeextension.all.rouvideo"}`, <-done)
}
