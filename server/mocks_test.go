package server

import (
	"context"
	"net"
	"net/http"

	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/server/auth"
	"github.com/jacobpatterson1549/selene-arena/server/socket"
)

type mockTokenizer struct {
	CreateFunc func(c auth.Claims) (string, error)
	ReadFunc   func(tokenString string) (*auth.Claims, error)
}

func (m mockTokenizer) Create(c auth.Claims) (string, error) {
	return m.CreateFunc(c)
}

func (m mockTokenizer) Read(tokenString string) (*auth.Claims, error) {
	return m.ReadFunc(tokenString)
}

type mockUpgrader func(w http.ResponseWriter, r *http.Request) (socket.Conn, error)

func (m mockUpgrader) Upgrade(w http.ResponseWriter, r *http.Request) (socket.Conn, error) {
	return m(w, r)
}

type mockGame func(ctx context.Context, in <-chan controller.Action, out chan<- controller.Result)

func (m mockGame) Run(ctx context.Context, in <-chan controller.Action, out chan<- controller.Result) {
	m(ctx, in, out)
}

// echoGame is a game that sends a result with each action.
func echoGame(ctx context.Context, in <-chan controller.Action, out chan<- controller.Result) {
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-in:
			select {
			case <-ctx.Done():
				return
			case out <- controller.Result{Action: a, Info: a.Type.String()}:
			}
		}
	}
}

// mockConn is a socket connection that only has an address.
type mockConn struct {
	socket.Conn
	addr string
}

func (m mockConn) RemoteAddr() net.Addr {
	return mockAddr(m.addr)
}

// mockAddr implements the net.Addr interface
type mockAddr string

func (m mockAddr) Network() string {
	return string(m) + "_NETWORK"
}

func (m mockAddr) String() string {
	return string(m)
}
