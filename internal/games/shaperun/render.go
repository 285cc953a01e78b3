package shaperun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun/sim"
)

// Visual characters for rendering
const (
	BreakableChar   = '▓'
	UnbreakableChar = '█'
	CollectibleChar = '+'
	ProjectileChar  = '|'
	LaneChar        = '·'
	HeartFull       = '♥'
	HeartEmpty      = '♡'
)

// viewAhead is how much corridor the terminal view shows ahead of the player.
const viewAhead = 60.0

var shapeGlyphs = [...]rune{
	sim.ShapeCube:    '■',
	sim.ShapePyramid: '▲',
	sim.ShapeSphere:  '●',
}

var shapeColors = [...]core.Color{
	sim.ShapeCube:    core.ColorBlue,
	sim.ShapePyramid: core.ColorMagenta,
	sim.ShapeSphere:  core.ColorCyan,
}

func glyph(s sim.Shape) rune {
	if !s.Valid() {
		return '?'
	}
	return shapeGlyphs[s]
}

func shapeColor(s sim.Shape) core.Color {
	if !s.Valid() {
		return core.ColorDefault
	}
	return shapeColors[s]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	if g.sim.State().Status() == sim.StatusConfiguring {
		g.renderConfig(dst)
		return
	}

	snap := g.sim.Snapshot()
	view := newCorridorView(dst, g.cfg.Generator.CorridorX+0.5)
	g.drawCorridor(dst, view, snap)
	g.drawHUD(dst, snap.HUD)
	dst.DrawTextColored(1, dst.Height()-1, "←→↑↓ steer  space fire  1/2/3 shape  p pause", core.ColorGray)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	switch snap.HUD.Status {
	case sim.StatusVictory:
		drawCenteredMessage(dst, "MISSION COMPLETE", fmt.Sprintf("Score: %d  |  Press R to restart", snap.HUD.Score))
	case sim.StatusDefeat:
		drawCenteredMessage(dst, "DESTROYED", fmt.Sprintf("Score: %d  Distance: %.0f  |  Press R to restart", snap.HUD.Score, snap.HUD.Distance))
	}
}

// corridorView maps corridor coordinates onto the screen.
// Columns follow X; rows follow distance ahead of the player.
type corridorView struct {
	box       core.Rect
	span      float64 // Half width of the corridor in world units
	playerRow int
	perRow    float64 // World units per screen row
}

func newCorridorView(dst *core.Screen, span float64) corridorView {
	boxW := min(dst.Width()-4, 62)
	box := core.NewRect((dst.Width()-boxW)/2, 1, boxW, dst.Height()-2)
	playerRow := box.Bottom() - 3
	rows := max(playerRow-(box.Y+1), 1)
	return corridorView{
		box:       box,
		span:      span,
		playerRow: playerRow,
		perRow:    viewAhead / float64(rows),
	}
}

func (v corridorView) col(x float64) int {
	inner := v.box.W - 2
	t := (x + v.span) / (2 * v.span)
	return v.box.X + 1 + int(math.Round(t*float64(inner-1)))
}

// row returns the screen row for a point ahead of the player, and false
// when it falls outside the corridor box.
func (v corridorView) row(ahead float64) (int, bool) {
	r := v.playerRow - int(math.Round(ahead/v.perRow))
	return r, r > v.box.Y && r < v.box.Bottom()-1
}

func (g *Game) drawCorridor(dst *core.Screen, v corridorView, snap sim.Snapshot) {
	dst.DrawBox(v.box)
	distance := snap.HUD.Distance
	player := snap.Player

	// Safe lanes as a faint guide.
	lanes := g.sim.Lanes()
	for r := v.box.Y + 1; r < v.box.Bottom()-1; r++ {
		z := distance + float64(v.playerRow-r)*v.perRow
		for _, p := range lanes.At(z) {
			dst.SetColored(v.col(p.X), r, LaneChar, core.ColorGray)
		}
	}

	reach := g.cfg.Hitbox.Player + g.cfg.Hitbox.Obstacle
	for _, e := range snap.Visible(g.cfg.Culling.RenderDistance) {
		r, ok := v.row(-e.Pos.Z - distance)
		if !ok {
			continue
		}
		switch {
		case e.Kind.IsPortal():
			shape, _ := e.RequiredShape()
			for x := v.box.X + 1; x < v.box.Right()-1; x++ {
				dst.SetColored(x, r, glyph(shape), shapeColor(shape))
			}
		case e.Kind == sim.KindCollectible:
			dst.SetColored(v.col(e.Pos.X), r, CollectibleChar, core.ColorGreen)
		default:
			ch, c := BreakableChar, core.ColorYellow
			if e.Kind == sim.KindUnbreakable {
				ch, c = UnbreakableChar, core.ColorWhite
			}
			// Obstacles outside the player's altitude band are dimmed.
			if math.Abs(e.Pos.Y-player.Y) >= reach {
				c = core.ColorGray
			}
			dst.SetColored(v.col(e.Pos.X), r, ch, c)
		}
	}

	for _, p := range snap.Projectiles {
		if r, ok := v.row(-p.Pos.Z - distance); ok {
			dst.SetColored(v.col(p.Pos.X), r, ProjectileChar, core.ColorBrightYellow)
		}
	}

	pc := shapeColor(snap.HUD.Shape)
	if snap.HUD.JustDamaged {
		pc = core.ColorRed
	}
	dst.SetColored(v.col(player.X), v.playerRow, glyph(snap.HUD.Shape), pc)

	g.drawAltitude(dst, v, player.Y)
}

// drawAltitude draws the player's vertical position next to the corridor.
func (g *Game) drawAltitude(dst *core.Screen, v corridorView, y float64) {
	x := v.box.Right()
	top, bottom := v.box.Y+1, v.box.Bottom()-2
	dst.DrawVLine(x, top, bottom-top+1, '┊', core.ColorGray)

	p := g.cfg.Player
	t := (p.MaxY - y) / (p.MaxY - p.MinY)
	dst.SetColored(x, top+int(math.Round(t*float64(bottom-top))), '◄', core.ColorBrightWhite)
}

func (g *Game) drawHUD(dst *core.Screen, hud sim.HUD) {
	var hearts strings.Builder
	for i := 0; i < hud.MaxHP; i++ {
		if i < hud.HP {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}
	hpColor := core.ColorRed
	if hud.JustDamaged {
		hpColor = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 0, hearts.String(), hpColor)

	progress := fmt.Sprintf("%.0f/%.0f", hud.Distance, hud.Target)
	if hud.Mode == sim.ModeEndless {
		progress = fmt.Sprintf("%.0f", hud.Distance)
	}
	info := fmt.Sprintf(" Score: %d  Dist: %s ", hud.Score, progress)
	dst.DrawText(hud.MaxHP+2, 0, info)

	shape := fmt.Sprintf("%c %s", glyph(hud.Shape), hud.Shape)
	dst.DrawTextColored(dst.Width()-len([]rune(shape))-1, 0, shape, shapeColor(hud.Shape))
}

func (g *Game) renderConfig(dst *core.Screen) {
	fields := g.fields()
	m := g.sim.State().Mission()

	boxW, boxH := 40, len(fields)+6
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawBox(box)

	title := strings.ToUpper(g.Title())
	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightCyan)

	for i, f := range fields {
		y := box.Y + 3 + i
		c := core.ColorDefault
		prefix := "  "
		if i == g.cursor {
			c = core.ColorBrightYellow
			prefix = "▶ "
		}
		dst.DrawTextColored(box.X+2, y, prefix+f.label, c)
		dst.DrawTextColored(box.X+22, y, "◀ "+f.value(m)+" ▶", c)
	}

	dst.DrawTextColored(box.X+2, box.Bottom()-2, "↑↓ select  ←→ adjust  enter start", core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
