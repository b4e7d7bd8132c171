package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/arena"
	"github.com/jacobpatterson1549/selene-arena/game/controller"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/game/tile"
)

type (
	// view is what the viewer shows of the arena.
	view struct {
		frame   *arena.Frame
		players []player.Player
		status  string
		warning bool
		// player is the id of the player the viewer acts as, or negative when only watching.
		player int
	}

	// command is what a key press asks the viewer to do.
	command int
)

const (
	ignoreKey command = iota
	sendAction
	quit
)

const (
	// cellWidth is the number of terminal columns used to draw each tile.
	cellWidth = 2
	// imageGlyph is drawn on tiles rendered with images.
	imageGlyph = '*'
	helpText   = "arrows: move  shift+arrows: act toward  space: act ahead  s: spawn  l: leave  r: refresh  q: quit"
)

// update changes the view to show the result.
// Results without frames only change the status.
func (v *view) update(r controller.Result) {
	if r.Frame != nil {
		v.frame = r.Frame
		v.players = r.Players
	}
	if r.Action.Type != controller.RefreshFrame || len(r.Info) != 0 {
		v.status = r.Info
		v.warning = r.Warning || r.Error
	}
}

// beeps determines if the result is a problem with an action of the viewer's player.
// Viewers also see the results of other players, which should not beep.
func (v view) beeps(r controller.Result) bool {
	return (r.Warning || r.Error) && v.player >= 0 && int(r.Action.PlayerID) == v.player
}

// draw shows the arena on the screen with the players and status below it.
func (v view) draw(s tcell.Screen) {
	s.Clear()
	height := 0
	if f := v.frame; f != nil {
		height = f.Height
		for _, c := range f.Cells {
			style := cellStyle(c.Rendering)
			glyph := ' '
			if c.Rendering.Kind == tile.ImageRendering {
				glyph = imageGlyph
			}
			for i := 0; i < cellWidth; i++ {
				s.SetContent(c.X*cellWidth+i, c.Y, glyph, nil, style)
			}
		}
		for _, p := range v.players {
			if !showsPlayer(*f, p) {
				continue
			}
			style := tcell.StyleDefault.
				Background(tcell.GetColor(p.Color)).
				Foreground(tcell.ColorWhite).
				Bold(true)
			number := []rune(strconv.Itoa(p.Number()))
			s.SetContent(p.Position.X*cellWidth, p.Position.Y, number[0], nil, style)
			s.SetContent(p.Position.X*cellWidth+1, p.Position.Y, ' ', nil, style)
		}
	}
	statusStyle := tcell.StyleDefault
	if v.warning {
		statusStyle = statusStyle.Foreground(tcell.ColorRed)
	}
	drawText(s, 0, height+1, v.status, statusStyle)
	drawText(s, 0, height+2, helpText, tcell.StyleDefault.Dim(true))
	s.Show()
}

// showsPlayer determines if the cell at the player's position is the player's marker.
// Preview frames hide marker labels, so players are not numbered in them.
func showsPlayer(f arena.Frame, p player.Player) bool {
	want := fmt.Sprintf("Player %d's tile", p.Number())
	for _, c := range f.Cells {
		if c.Position == p.Position {
			return c.Label == want
		}
	}
	return false
}

// cellStyle is the style of a tile with the rendering.
func cellStyle(r tile.Rendering) tcell.Style {
	style := tcell.StyleDefault
	if r.Kind == tile.ColorRendering {
		return style.Background(tcell.GetColor(r.Color))
	}
	return style.Foreground(tcell.ColorYellow)
}

// drawText writes the text on the row, starting at the column.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// keyCommand determines what the key press should do.
// Key presses that send actions also return the action.
func keyCommand(ev *tcell.EventKey) (command, controller.Action) {
	var a controller.Action
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return quit, a
	case tcell.KeyUp, tcell.KeyRight, tcell.KeyDown, tcell.KeyLeft:
		a.Type = controller.Move
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.Type = controller.Face
		}
		a.Direction = keyDirections[ev.Key()]
		return sendAction, a
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return quit, a
		case 's':
			a.Type = controller.Spawn
		case 'l':
			a.Type = controller.Leave
		case ' ':
			a.Type = controller.Face
			a.Direction = game.NoDirection
		case 'r':
			a.Type = controller.RefreshFrame
		default:
			return ignoreKey, a
		}
		return sendAction, a
	}
	return ignoreKey, a
}

var keyDirections = map[tcell.Key]game.Direction{
	tcell.KeyUp:    game.North,
	tcell.KeyRight: game.East,
	tcell.KeyDown:  game.South,
	tcell.KeyLeft:  game.West,
}
