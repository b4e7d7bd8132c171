// Package main shows an arena from a server in the terminal and sends the key presses of the viewer as actions.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
)

// main connects to the server and runs the viewer until the user quits.
func main() {
	ctx := context.Background()
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile | log.Lmsgprefix
	log := log.New(os.Stderr, "", logFlags)
	m := newMainFlags(os.Args, os.LookupEnv)
	c := client{
		httpClient: http.DefaultClient,
		dialer:     websocket.DefaultDialer,
		mainFlags:  m,
	}
	conn, err := c.connect(ctx)
	if err != nil {
		log.Fatalf("connecting to arena: %v", err)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	err = runViewer(screen, conn, m)
	screen.Fini()
	conn.close()
	if err != nil {
		log.Fatalf("running viewer: %v", err)
	}
}

// runViewer draws results from the connection and sends actions from key presses until the user quits or the connection fails.
func runViewer(screen tcell.Screen, conn *conn, m mainFlags) error {
	readErrC := make(chan error, 1)
	go func() {
		readErrC <- conn.readResults(func(r controller.Result) {
			screen.PostEvent(tcell.NewEventInterrupt(r))
		})
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	if err := conn.writeAction(controller.Action{Type: controller.RefreshFrame}); err != nil {
		return fmt.Errorf("requesting first frame: %w", err)
	}
	v := view{player: m.player}
	return handleEvents(screen, &v, conn.writeAction, readErrC)
}

// handleEvents updates the view from screen events until the user quits or the results stop.
func handleEvents(screen tcell.Screen, v *view, send func(a controller.Action) error, readErrC <-chan error) error {
	for { // BLOCKING
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			v.draw(screen)
		case *tcell.EventInterrupt:
			r, ok := ev.Data().(controller.Result)
			if !ok {
				return <-readErrC
			}
			v.update(r)
			if v.beeps(r) {
				screen.Beep()
			}
			v.draw(screen)
		case *tcell.EventKey:
			cmd, a := keyCommand(ev)
			switch cmd {
			case quit:
				return nil
			case sendAction:
				if err := send(a); err != nil {
					return fmt.Errorf("sending %v action: %w", a.Type, err)
				}
			}
		}
	}
}
