package socket

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/log/logtest"
)

// testConfig creates a valid socket config that does not ping or check for idle connections during tests.
func testConfig() Config {
	return Config{
		Log:        logtest.DiscardLogger,
		TimeFunc:   func() int64 { return 0 },
		ReadWait:   2 * time.Hour,
		WriteWait:  2 * time.Hour,
		PingPeriod: 1 * time.Hour,
		IdlePeriod: 3 * time.Hour,
	}
}

// newRunConn creates a connection that reads the actions, then blocks until it is closed.
// Written results and close reasons are sent on the returned channels.
func newRunConn(actions ...controller.Action) (*mockConn, <-chan controller.Result, <-chan string) {
	closed := make(chan struct{})
	var closeOnce sync.Once
	writtenC := make(chan controller.Result, 10)
	reasonC := make(chan string, 1)
	i := 0
	conn := mockConn{
		ReadActionFunc: func(a *controller.Action) error {
			if i < len(actions) {
				*a = actions[i]
				i++
				return nil
			}
			<-closed
			return errors.New("use of closed connection")
		},
		WriteResultFunc: func(r controller.Result) error {
			writtenC <- r
			return nil
		},
		SetReadDeadlineFunc:  func(t time.Time) error { return nil },
		SetWriteDeadlineFunc: func(t time.Time) error { return nil },
		SetPongHandlerFunc:   func(h func(appData string) error) {},
		CloseFunc: func() error {
			closeOnce.Do(func() {
				close(closed)
			})
			return nil
		},
		WritePingFunc: func() error { return nil },
		WriteCloseFunc: func(reason string) error {
			reasonC <- reason
			return nil
		},
		IsNormalCloseFunc: func(err error) bool { return false },
		RemoteAddrFunc:    func() net.Addr { return mockAddr("selene.pc") },
	}
	return &conn, writtenC, reasonC
}

// runSocket runs the socket on a separate goroutine, closing the returned channel when it is done.
func runSocket(ctx context.Context, s *Socket, in <-chan controller.Result, out chan<- controller.Action) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		s.Run(ctx, in, out)
		close(done)
	}()
	return done
}

func TestNewSocket(t *testing.T) {
	conn := &mockConn{}
	ok := testConfig()
	newSocketTests := []struct {
		Conn
		change func(cfg *Config)
		wantOk bool
	}{
		{}, // no conn
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.Log = nil },
		},
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.TimeFunc = nil },
		},
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.ReadWait = 0 },
		},
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.WriteWait = 0 },
		},
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.PingPeriod = 0 },
		},
		{
			Conn:   conn,
			change: func(cfg *Config) { cfg.IdlePeriod = 0 },
		},
		{ // ping period not less than read wait
			Conn:   conn,
			change: func(cfg *Config) { cfg.PingPeriod = cfg.ReadWait },
		},
		{
			Conn:   conn,
			wantOk: true,
		},
	}
	for i, test := range newSocketTests {
		cfg := ok
		if test.change != nil {
			test.change(&cfg)
		}
		c := auth.Claims{Preview: true}
		s, err := cfg.NewSocket(test.Conn, c)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case !s.Preview():
			t.Errorf("Test %v: wanted preview from claims", i)
		}
	}
}

func TestRunReadsPlayerActions(t *testing.T) {
	var id player.ID = 2
	conn, _, reasonC := newRunConn(
		controller.Action{Type: controller.Move, PlayerID: 7, Direction: game.East},
		controller.Action{Type: controller.Spawn},
	)
	s, err := testConfig().NewSocket(conn, auth.Claims{Player: &id, Preview: true})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	in := make(chan controller.Result)
	out := make(chan controller.Action)
	done := runSocket(context.Background(), s, in, out)
	want := []controller.Action{
		{Type: controller.Move, PlayerID: 2, Direction: game.East, Preview: true},
		{Type: controller.Spawn, PlayerID: 2, Preview: true},
	}
	for i, w := range want {
		if got := <-out; w != got {
			t.Errorf("action %v: wanted %+v, got %+v", i, w, got)
		}
	}
	close(in)
	<-done
	if want, got := "server shutting down", <-reasonC; want != got {
		t.Errorf("wanted close reason %q, got %q", want, got)
	}
}

func TestRunWatchOnly(t *testing.T) {
	conn, _, _ := newRunConn(
		controller.Action{Type: controller.Move, PlayerID: 1, Direction: game.East},
		controller.Action{Type: controller.RefreshFrame},
	)
	testLog := logtest.NewLogger()
	cfg := testConfig()
	cfg.Log = testLog
	s, err := cfg.NewSocket(conn, auth.Claims{})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	ctx, cancelFunc := context.WithCancel(context.Background())
	in := make(chan controller.Result)
	out := make(chan controller.Action)
	done := runSocket(ctx, s, in, out)
	want := controller.Action{Type: controller.RefreshFrame}
	if got := <-out; want != got {
		t.Errorf("wanted only frame request, got %+v", got)
	}
	cancelFunc()
	<-done
	if !testLog.Contains("ignoring move action") {
		t.Errorf("wanted ignored action to be logged, got %q", testLog.String())
	}
}

func TestRunWritesResults(t *testing.T) {
	conn, writtenC, reasonC := newRunConn()
	s, err := testConfig().NewSocket(conn, auth.Claims{})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	ctx, cancelFunc := context.WithCancel(context.Background())
	in := make(chan controller.Result)
	out := make(chan controller.Action)
	done := runSocket(ctx, s, in, out)
	want := controller.Result{Info: "player 1 spawned"}
	in <- want
	if got := <-writtenC; want.Info != got.Info {
		t.Errorf("wanted result %+v to be written, got %+v", want, got)
	}
	cancelFunc()
	<-done
	if want, got := "socket closed", <-reasonC; want != got {
		t.Errorf("wanted close reason %q, got %q", want, got)
	}
}

func TestRunWriteError(t *testing.T) {
	conn, _, reasonC := newRunConn()
	conn.WriteResultFunc = func(r controller.Result) error {
		return errors.New("broken pipe")
	}
	s, err := testConfig().NewSocket(conn, auth.Claims{})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	in := make(chan controller.Result, 1)
	out := make(chan controller.Action)
	done := runSocket(context.Background(), s, in, out)
	in <- controller.Result{}
	<-done
	if got := <-reasonC; !strings.Contains(got, "broken pipe") {
		t.Errorf("wanted write error in close reason, got %q", got)
	}
}

func TestRunIdle(t *testing.T) {
	conn, _, reasonC := newRunConn()
	cfg := testConfig()
	cfg.IdlePeriod = time.Millisecond
	s, err := cfg.NewSocket(conn, auth.Claims{})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	in := make(chan controller.Result)
	out := make(chan controller.Action)
	done := runSocket(context.Background(), s, in, out)
	<-done
	if want, got := "closing socket due to inactivity", <-reasonC; want != got {
		t.Errorf("wanted close reason %q, got %q", want, got)
	}
}

func TestReadActionNormalClose(t *testing.T) {
	conn := &mockConn{
		ReadActionFunc: func(a *controller.Action) error {
			return errors.New("close 1000")
		},
		IsNormalCloseFunc: func(err error) bool {
			return true
		},
	}
	s, err := testConfig().NewSocket(conn, auth.Claims{})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if _, err := s.readAction(); err != errSocketClosed {
		t.Errorf("wanted socket closed error, got %v", err)
	}
}
