// Package socket handles communication with an arena viewer using a websocket connection.
package socket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/log"
)

type (
	// Socket reads actions from a viewer and writes results of the game to it.
	Socket struct {
		Conn
		claims auth.Claims
		active atomic.Bool
		Config
	}

	// Config contains commonly shared Socket properties.
	Config struct {
		// Debug is a flag that causes the socket to log the types of actions and results that are read and written.
		Debug bool
		// Log is used to log errors and other information.
		Log log.Logger
		// TimeFunc is a function which should supply the current time since the unix epoch, in seconds.
		// It is used to set read and write deadlines.
		TimeFunc func() int64
		// ReadWait is the amount of time that can pass between receiving client messages before timing out.
		ReadWait time.Duration
		// WriteWait is the amount of time that the socket can take to write a message.
		WriteWait time.Duration
		// PingPeriod is how often ping messages should be sent.  Should be less than ReadWait.
		PingPeriod time.Duration
		// IdlePeriod is the amount of time that can pass without reading anything from the viewer before the connection is closed.
		IdlePeriod time.Duration
	}

	// Upgrader creates connections from http requests.
	Upgrader interface {
		Upgrade(w http.ResponseWriter, r *http.Request) (Conn, error)
	}

	// Conn is the connection that backs the socket.
	Conn interface {
		// ReadAction reads the next action from the connection.
		ReadAction(a *controller.Action) error
		// WriteResult writes the result to the connection.
		WriteResult(r controller.Result) error
		// SetReadDeadline sets when reading times out.
		SetReadDeadline(t time.Time) error
		// SetWriteDeadline sets when writing times out.
		SetWriteDeadline(t time.Time) error
		// SetPongHandler sets the handler to call when the viewer responds to a ping.
		SetPongHandler(h func(appData string) error)
		// Close closes the connection.
		Close() error
		// WritePing writes a ping message on the connection.
		WritePing() error
		// WriteClose writes a close message on the connection.
		WriteClose(reason string) error
		// IsNormalClose determines if the error message is not an unexpected close error.
		IsNormalClose(err error) bool
		// RemoteAddr gets the remote network address of the connection.
		RemoteAddr() net.Addr
	}
)

var (
	errSocketClosed = errors.New("socket closed")
	errWatchOnly    = errors.New("viewer can only watch")
)

// NewSocket creates a socket for a viewer with the claims.
func (cfg Config) NewSocket(conn Conn, c auth.Claims) (*Socket, error) {
	if err := cfg.validate(conn); err != nil {
		return nil, fmt.Errorf("creating socket: validation: %w", err)
	}
	s := Socket{
		Conn:   conn,
		claims: c,
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(conn Conn) error {
	switch {
	case conn == nil:
		return fmt.Errorf("websocket connection required")
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ReadWait <= 0:
		return fmt.Errorf("positive read wait period required")
	case cfg.WriteWait <= 0:
		return fmt.Errorf("positive write wait period required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.IdlePeriod <= 0:
		return fmt.Errorf("positive idle period required")
	case cfg.PingPeriod >= cfg.ReadWait:
		return fmt.Errorf("ping period should be less than read wait")
	}
	return nil
}

// Preview determines if the viewer should only see previews of the arena.
func (s *Socket) Preview() bool {
	return s.claims.Preview
}

// Run reads actions from the connection onto the out channel and writes results from the in channel to the connection.
// The Socket runs until the connection fails, the in channel is closed, or the context is cancelled.
// The connection is closed when Run returns.
func (s *Socket) Run(ctx context.Context, in <-chan controller.Result, out chan<- controller.Action) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	pingTicker := time.NewTicker(s.PingPeriod)
	idleTicker := time.NewTicker(s.IdlePeriod)
	defer pingTicker.Stop()
	defer idleTicker.Stop()
	s.Conn.SetReadDeadline(s.readDeadline())
	s.Conn.SetPongHandler(func(appData string) error {
		s.active.Store(true)
		return s.Conn.SetReadDeadline(s.readDeadline())
	})
	var wg sync.WaitGroup
	wg.Add(2)
	go s.readActions(ctx, cancelFunc, out, &wg)
	go s.writeResults(ctx, in, &wg, pingTicker.C, idleTicker.C)
	wg.Wait() // BLOCKING
}

// readActions receives actions from the connection and sends them on the out channel.
// The context is cancelled when reading stops.
func (s *Socket) readActions(ctx context.Context, cancelFunc context.CancelFunc, out chan<- controller.Action, wg *sync.WaitGroup) {
	defer wg.Done()
	defer cancelFunc()
	for { // BLOCKING
		a, err := s.readAction()
		switch {
		case err == errWatchOnly:
			s.Log.Printf("ignoring %v action from viewer at %v: %v", a.Type, s.Conn.RemoteAddr(), err)
			continue
		case err != nil:
			if err != errSocketClosed && ctx.Err() == nil {
				s.Log.Printf("reading socket actions stopped for viewer at %v: %v", s.Conn.RemoteAddr(), err)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		case out <- *a:
		}
	}
}

// writeResults sends results from the in channel to the connection.
// The tickers are used to periodically write pings or check for read activity.
// The connection is closed when writing stops.
func (s *Socket) writeResults(ctx context.Context, in <-chan controller.Result, wg *sync.WaitGroup, ping, idle <-chan time.Time) {
	closeReason := "socket closed"
	defer func() {
		s.Conn.WriteClose(closeReason)
		s.Conn.Close()
		if s.Debug {
			s.Log.Printf("closing socket for viewer at %v: %v", s.Conn.RemoteAddr(), closeReason)
		}
		wg.Done()
	}()
	for { // BLOCKING
		var err error
		select {
		case <-ctx.Done():
			return
		case r, ok := <-in:
			if !ok {
				closeReason = "server shutting down"
				return
			}
			err = s.writeResult(r)
		case <-ping:
			s.Conn.SetWriteDeadline(s.writeDeadline())
			err = s.Conn.WritePing()
		case <-idle:
			if !s.active.Swap(false) {
				closeReason = "closing socket due to inactivity"
				return
			}
		}
		if err != nil {
			closeReason = fmt.Sprintf("writing socket results stopped: %v", err)
			s.Log.Printf("%v for viewer at %v", closeReason, s.Conn.RemoteAddr())
			return
		}
	}
}

// readAction reads the next action from the connection, setting the player and preview from the claims.
// Viewers without a player can only request frames.
func (s *Socket) readAction() (*controller.Action, error) {
	var a controller.Action
	if err := s.Conn.ReadAction(&a); err != nil { // BLOCKING
		if s.Conn.IsNormalClose(err) {
			return nil, errSocketClosed
		}
		return nil, fmt.Errorf("unexpected socket closure: %w", err)
	}
	s.active.Store(true)
	if s.Debug {
		s.Log.Printf("socket reading action with type %v", a.Type)
	}
	a.Preview = s.claims.Preview
	switch {
	case s.claims.Player != nil:
		a.PlayerID = *s.claims.Player
	case a.Type != controller.RefreshFrame:
		return &a, errWatchOnly
	}
	return &a, nil
}

// writeResult writes a result to the connection.
func (s *Socket) writeResult(r controller.Result) error {
	if s.Debug {
		s.Log.Printf("socket writing result of %v action", r.Action.Type)
	}
	s.Conn.SetWriteDeadline(s.writeDeadline())
	if err := s.Conn.WriteResult(r); err != nil {
		return fmt.Errorf("writing socket result: %w", err)
	}
	return nil
}

// readDeadline is when the next read times out.
func (s *Socket) readDeadline() time.Time {
	return time.Unix(s.TimeFunc(), 0).Add(s.ReadWait)
}

// writeDeadline is when the next write times out.
func (s *Socket) writeDeadline() time.Time {
	return time.Unix(s.TimeFunc(), 0).Add(s.WriteWait)
}
