package blockblast

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast/engine"
)

// Layout constants, in screen cells.
const (
	cellW      = 2 // board cells are two columns wide to look square
	hudHeight  = 3
	slotW      = 10
	slotH      = 6
	slotCols   = 3
	panelGap   = 3
	barWidth   = 20
	footerRows = 2
)

type layout struct {
	board core.Rect // outer box of the board
	hand  core.Point
	info  core.Point
}

func (g *Game) layout() layout {
	boardW := g.opts.Width*cellW + 2
	boardH := g.opts.Height + 2
	panelW := slotCols * slotW
	totalW := boardW + panelGap + panelW

	x := max((g.screenW-totalW)/2, 0)
	board := core.NewRect(x, hudHeight, boardW, boardH)
	hand := core.Pt(board.Right()+panelGap, hudHeight+1)
	rows := (max(g.opts.HandSize, 1) + slotCols - 1) / slotCols
	info := core.Pt(hand.X, hand.Y+rows*slotH+1)
	return layout{board: board, hand: hand, info: info}
}

func (g *Game) minSize() (int, int) {
	boardW := g.opts.Width*cellW + 2
	boardH := g.opts.Height + 2
	rows := (max(g.opts.HandSize, 1) + slotCols - 1) / slotCols
	panelH := 1 + rows*slotH + 4
	return boardW + panelGap + slotCols*slotW, hudHeight + max(boardH, panelH) + footerRows
}

// boardCellAt maps a screen position onto a board cell.
func (g *Game) boardCellAt(p core.Point) (core.Point, bool) {
	l := g.layout()
	dx := p.X - l.board.X - 1
	dy := p.Y - l.board.Y - 1
	if dx < 0 || dy < 0 {
		return core.Point{}, false
	}
	cell := core.Pt(dx/cellW, dy)
	if cell.X >= g.opts.Width || cell.Y >= g.opts.Height {
		return core.Point{}, false
	}
	return cell, true
}

func (g *Game) pointerOnBoard(p core.Point) bool {
	_, ok := g.boardCellAt(p)
	return ok
}

// slotAt maps a screen position onto a hand slot.
func (g *Game) slotAt(p core.Point) (int, bool) {
	l := g.layout()
	dx := p.X - l.hand.X
	dy := p.Y - l.hand.Y
	if dx < 0 || dy < 0 || dx >= slotCols*slotW {
		return 0, false
	}
	i := (dy/slotH)*slotCols + dx/slotW
	if i >= g.opts.HandSize {
		return 0, false
	}
	return i, true
}

// pictureRect is the screen area of the reveal canvas. Each screen cell shows
// two canvas blocks stacked vertically. Canvases larger than the side panel
// are clipped.
func (g *Game) pictureRect(l layout) core.Rect {
	c := g.session.Canvas()
	w := min(c.Width(), slotCols*slotW)
	h := min((c.Height()+1)/2, max(g.screenH-footerRows-l.hand.Y-1, 0))
	return core.NewRect(l.hand.X, l.hand.Y, w, h)
}

// canvasBlockAt maps a screen position onto a canvas block. A cell covers two
// blocks; the upper one is picked while it is still covered.
func (g *Game) canvasBlockAt(p core.Point) (core.Point, bool) {
	r := g.pictureRect(g.layout())
	if !r.Contains(p.X, p.Y) {
		return core.Point{}, false
	}
	top := core.Pt(p.X-r.X, (p.Y-r.Y)*2)
	canvas := g.session.Canvas()
	if !canvas.Covered(top.X, top.Y) && canvas.Covered(top.X, top.Y+1) {
		return core.Pt(top.X, top.Y+1), true
	}
	return top, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	snap := g.session.State()

	g.renderHUD(dst, l, snap)
	g.renderBoard(dst, l, snap)
	if g.picture {
		g.renderPicture(dst, l, snap)
	} else {
		g.renderHand(dst, l, snap)
		g.renderInfo(dst, l, snap)
	}
	g.renderFooter(dst)
	g.renderOverlay(dst, l, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, l layout, st engine.State) {
	dst.DrawTextColored(l.board.X, 0, strings.ToUpper(g.Title()), core.ColorBrightYellow)
	hud := fmt.Sprintf("Score: %d   Lines: %d   Level: %d", st.Score, st.Lines, g.session.Level())
	dst.DrawText(l.board.X, 1, hud)
	if d := g.Difficulty(); g.mode == ModeClassic && d != "" {
		dst.DrawTextColored(l.hand.X, 0, "Difficulty: "+string(d), core.ColorGray)
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout, st engine.State) {
	dst.DrawBox(l.board)
	ox, oy := l.board.X+1, l.board.Y+1

	flash := st.Animation.Intensity()
	flashColor := core.ColorGray
	if flash > 0.5 {
		flashColor = core.ColorBrightWhite
	}

	for y := range st.Board.H {
		for x := range st.Board.W {
			px := ox + x*cellW
			switch f, ok := st.Board.At(x, y); {
			case ok:
				dst.SetColored(px, oy+y, f.Glyph, f.Color)
				dst.SetColored(px+1, oy+y, f.Glyph, f.Color)
			case st.Animation.Covers(x, y):
				dst.SetColored(px, oy+y, '░', flashColor)
				dst.SetColored(px+1, oy+y, '░', flashColor)
			default:
				dst.SetColored(px, oy+y, '·', core.ColorDarkGray)
			}
		}
	}

	g.renderGhost(dst, l, st)
}

// renderGhost shows where the held piece would land, or marks the cursor red
// when it cannot be placed there.
func (g *Game) renderGhost(dst *core.Screen, l layout, st engine.State) {
	ox, oy := l.board.X+1, l.board.Y+1
	cx, cy := ox+g.cursor.X*cellW, oy+g.cursor.Y

	p, ok := st.SelectedPiece()
	if !ok {
		dst.SetColored(cx, cy, '[', core.ColorBrightWhite)
		dst.SetColored(cx+1, cy, ']', core.ColorBrightWhite)
		return
	}

	origin, ok := g.session.PreviewAt(p.ID, g.cursor.X, g.cursor.Y)
	if !ok {
		dst.SetColored(cx, cy, '[', core.ColorBrightRed)
		dst.SetColored(cx+1, cy, ']', core.ColorBrightRed)
		return
	}
	for _, c := range p.Shape.Cells() {
		bx, by := origin.X+c.X, origin.Y+c.Y
		dst.SetColored(ox+bx*cellW, oy+by, '▒', p.Color)
		dst.SetColored(ox+bx*cellW+1, oy+by, '▒', p.Color)
	}
}

func (g *Game) renderHand(dst *core.Screen, l layout, st engine.State) {
	dst.DrawText(l.hand.X, l.hand.Y-1, "Hand")
	for i, p := range st.Hand {
		r := core.NewRect(l.hand.X+(i%slotCols)*slotW, l.hand.Y+(i/slotCols)*slotH, slotW, slotH)
		dst.DrawBox(r)

		label := fmt.Sprintf("%d", i+1)
		if i == st.Selected {
			dst.DrawTextColored(r.X+1, r.Y, "▶"+label, core.ColorBrightYellow)
		} else {
			dst.DrawText(r.X+1, r.Y, label)
		}

		innerW, innerH := slotW-2, slotH-2
		px := r.X + 1 + (innerW-p.Width()*cellW)/2
		py := r.Y + 1 + (innerH-p.Height())/2
		for _, c := range p.Shape.Cells() {
			dst.SetColored(px+c.X*cellW, py+c.Y, p.Glyph, p.Color)
			dst.SetColored(px+c.X*cellW+1, py+c.Y, p.Glyph, p.Color)
		}
	}

	if p, ok := st.SelectedPiece(); ok {
		// Emoji are double width and would shift the grid; the name is enough.
		dst.DrawTextColored(l.hand.X+5, l.hand.Y-1, p.Name, p.Color)
	}
}

func (g *Game) renderInfo(dst *core.Screen, l layout, st engine.State) {
	canvas := g.session.Canvas()
	progress := canvas.Progress()
	filled := int(progress / 100 * barWidth)

	dst.DrawText(l.info.X, l.info.Y, fmt.Sprintf("Picture %5.1f%%", progress))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	dst.DrawTextColored(l.info.X, l.info.Y+1, bar, core.ColorCyan)
	dst.DrawText(l.info.X, l.info.Y+2, fmt.Sprintf("Points: %d  (%d per block)", st.Points, g.opts.BlockCost))

	if g.message != "" {
		dst.DrawTextColored(l.info.X, l.info.Y+3, g.message, core.ColorBrightGreen)
	}
}

func (g *Game) renderPicture(dst *core.Screen, l layout, st engine.State) {
	canvas := g.session.Canvas()
	dst.DrawText(l.hand.X, l.hand.Y-1, fmt.Sprintf("Picture %5.1f%%  Points: %d", canvas.Progress(), st.Points))

	r := g.pictureRect(l)
	for sy := range r.H {
		for sx := range r.W {
			top, bottom := core.Pt(sx, sy*2), core.Pt(sx, sy*2+1)
			hideTop := canvas.Covered(top.X, top.Y)
			hideBottom := canvas.Covered(bottom.X, bottom.Y) || bottom.Y >= canvas.Height() && hideTop
			switch {
			case hideTop && hideBottom:
				dst.SetColored(r.X+sx, r.Y+sy, '░', core.ColorDarkGray)
			case hideBottom:
				dst.SetColored(r.X+sx, r.Y+sy, '▀', pictureColor(top, canvas.Width(), canvas.Height()))
			case hideTop:
				dst.SetColored(r.X+sx, r.Y+sy, '▄', pictureColor(bottom, canvas.Width(), canvas.Height()))
			default:
				dst.SetColored(r.X+sx, r.Y+sy, '█', pictureColor(top, canvas.Width(), canvas.Height()))
			}
		}
	}

	offers := make([]string, 0, len(g.opts.RevealPresets))
	for i, p := range g.opts.RevealPresets[:min(len(g.opts.RevealPresets), 6)] {
		offers = append(offers, fmt.Sprintf("%d:%d/%d", i+1, p.Count, p.Cost))
	}
	dst.DrawTextColored(r.X, r.Bottom(), strings.Join(offers, " "), core.ColorCyan)

	if g.message != "" {
		dst.DrawTextColored(r.X, r.Bottom()+1, g.message, core.ColorBrightGreen)
	}
}

// pictureColor is the hidden picture: a ringed planet over a starfield.
func pictureColor(b core.Point, w, h int) core.Color {
	cx, cy := float64(w)/2, float64(h)*0.45
	radius := float64(min(w, h)) * 0.3
	dx, dy := float64(b.X)+0.5-cx, float64(b.Y)+0.5-cy

	// The ring passes behind the planet's upper half.
	ring := math.Pow(dx/(radius*1.7), 2) + math.Pow(dy/(radius*0.45), 2)
	inPlanet := math.Hypot(dx, dy) < radius
	if ring >= 0.7 && ring <= 1.1 && !(inPlanet && dy < 0) {
		return core.ColorBrightYellow
	}
	if inPlanet {
		switch int(math.Floor((dy+radius)/(radius/3))) % 3 {
		case 0:
			return core.ColorOrange
		case 1:
			return core.ColorRed
		default:
			return core.ColorYellow
		}
	}
	if (b.X*73856093^b.Y*19349663)%23 == 0 {
		return core.ColorBrightWhite
	}
	return core.ColorNavy
}

func (g *Game) renderFooter(dst *core.Screen) {
	help := "1-6 pick  z/x rotate  enter place  f new hand  v picture  p pause  q quit"
	if g.picture {
		help = "1-6 buy reveal  click a block to reveal it  v back to hand"
	}
	dst.DrawTextCentered(g.screenH-1, help)
}

func (g *Game) renderOverlay(dst *core.Screen, l layout, st engine.State) {
	var lines []string
	switch st.Status {
	case engine.StatusPaused:
		lines = []string{"PAUSED", "p/esc to resume"}
	case engine.StatusGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score: %d", st.Score), "r restart  q quit"}
	default:
		return
	}

	w := 0
	for _, s := range lines {
		w = max(w, len([]rune(s)))
	}
	w += 4
	h := len(lines) + 2
	r := core.NewRect(l.board.X+(l.board.W-w)/2, l.board.Y+(l.board.H-h)/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, s := range lines {
		x := r.X + (w-len([]rune(s)))/2
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		dst.DrawTextColored(x, r.Y+1+i, s, c)
	}
}
