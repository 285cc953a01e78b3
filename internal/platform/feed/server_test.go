package feed

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(Config{TickRate: 120}, emptyCorridor(), nil, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMsg) {
	t.Helper()
	data, err := msgpack.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

// readUntil reads messages until match returns true for a message of type typ.
func readUntil(t *testing.T, conn *websocket.Conn, typ string, out any, match func() bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for range 2000 {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed waiting for %s: %v", typ, err)
		}
		if kind != websocket.BinaryMessage {
			t.Fatalf("expected binary message, got %d", kind)
		}
		var head struct {
			Type string `msgpack:"type"`
		}
		if err := msgpack.Unmarshal(data, &head); err != nil {
			t.Fatalf("bad message: %v", err)
		}
		if head.Type != typ {
			continue
		}
		if err := msgpack.Unmarshal(data, out); err != nil {
			t.Fatalf("cannot decode %s: %v", typ, err)
		}
		if match == nil || match() {
			return
		}
	}
	t.Fatalf("no matching %s message", typ)
}

func TestServerStreamsRun(t *testing.T) {
	srv, ts := startServer(t)
	conn := dial(t, ts)

	var welcome WelcomeMsg
	readUntil(t, conn, MsgWelcome, &welcome, nil)
	if welcome.TickRate != 120 {
		t.Errorf("welcome tick rate = %d", welcome.TickRate)
	}
	if srv.Clients() != 1 {
		t.Errorf("Clients() = %d, expected 1", srv.Clients())
	}

	send(t, conn, ClientMsg{Type: MsgConfigure, Mode: "endless"})
	send(t, conn, ClientMsg{Type: MsgStart, Seed: 4})

	var frame FrameMsg
	readUntil(t, conn, MsgFrame, &frame, func() bool { return frame.Status == "playing" && frame.Tick > 0 })
	if frame.Mode != "endless" || frame.Player.Z >= 0 {
		t.Errorf("playing frame = mode %q player %+v", frame.Mode, frame.Player)
	}

	send(t, conn, ClientMsg{Type: MsgInput, Input: InputMsg{MoveX: 1, Shape: "pyramid"}})
	readUntil(t, conn, MsgFrame, &frame, func() bool { return frame.Player.X > 0 })
	if frame.Shape != "pyramid" {
		t.Errorf("shape = %q, expected pyramid", frame.Shape)
	}
}

func TestServerReportsBadMessages(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)

	var welcome WelcomeMsg
	readUntil(t, conn, MsgWelcome, &welcome, nil)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0xc1}); err != nil {
		t.Fatal(err)
	}
	var errMsg ErrorMsg
	readUntil(t, conn, MsgError, &errMsg, nil)
	if !strings.Contains(errMsg.Message, "cannot decode") {
		t.Errorf("error message = %q", errMsg.Message)
	}

	send(t, conn, ClientMsg{Type: MsgStart})
	readUntil(t, conn, MsgError, &errMsg, nil)
	if !strings.Contains(errMsg.Message, "no run configured") {
		t.Errorf("error message = %q", errMsg.Message)
	}
}

func TestServerHealth(t *testing.T) {
	_, ts := startServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "ok") {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}
