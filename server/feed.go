package server

import (
	"context"
	"sync"
	"time"

	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/server/log"
	"github.com/jacobpatterson1549/selene-arena/server/socket"
)

type (
	// feed sends the results of the game to the sockets of viewers.
	feed struct {
		log         log.Logger
		debug       bool
		framePeriod time.Duration
		addC        chan *socket.Socket
	}
)

// viewerBuffer is the number of results that can wait to be written to a viewer before results are dropped.
const viewerBuffer = 16

// run adds sockets and sends them results until the context is done or the results channel is closed.
// Results are only sent to sockets that want the same kind of frame as the action that caused the result.
// Sockets send their actions to the actions channel.
func (f *feed) run(ctx context.Context, wg *sync.WaitGroup, actions chan<- controller.Action, results <-chan controller.Result) {
	viewers := make(map[*socket.Socket]chan controller.Result)
	removeC := make(chan *socket.Socket)
	defer func() {
		for _, ch := range viewers {
			close(ch)
		}
	}()
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case s := <-f.addC:
			ch := make(chan controller.Result, viewerBuffer)
			viewers[s] = ch
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Run(ctx, ch, actions)
				select {
				case <-ctx.Done():
				case removeC <- s:
				}
			}()
		case s := <-removeC:
			if ch, ok := viewers[s]; ok {
				close(ch)
				delete(viewers, s)
			}
		case r, ok := <-results:
			if !ok {
				return
			}
			f.send(r, viewers)
		}
	}
}

// send sends the result to viewers without blocking.
func (f *feed) send(r controller.Result, viewers map[*socket.Socket]chan controller.Result) {
	for s, ch := range viewers {
		if s.Preview() != r.Action.Preview {
			continue
		}
		select {
		case ch <- r:
		default:
			if f.debug {
				f.log.Printf("dropping result of %v action for slow viewer at %v", r.Action.Type, s.RemoteAddr())
			}
		}
	}
}

// requestFrames periodically asks for full and preview frames of the arena.
func (f *feed) requestFrames(ctx context.Context, actions chan<- controller.Action) {
	ticker := time.NewTicker(f.framePeriod)
	defer ticker.Stop()
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, preview := range []bool{false, true} {
				a := controller.Action{
					Type:    controller.RefreshFrame,
					Preview: preview,
				}
				select {
				case <-ctx.Done():
					return
				case actions <- a:
				}
			}
		}
	}
}
