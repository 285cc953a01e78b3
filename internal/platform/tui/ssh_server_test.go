package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyPath(path)
	if err != nil {
		t.Fatalf("hostKeyPath failed: %v", err)
	}
	if got != path {
		t.Errorf("hostKeyPath = %q, expected %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestSSHServerShutsDownOnCancel(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.TickRate = 0

	srv, err := NewSSHServer(cfg, openStore(t), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}
	if srv.cfg.TickRate != 60 || srv.Sessions() != 0 {
		t.Errorf("tick rate %d sessions %d", srv.cfg.TickRate, srv.Sessions())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
