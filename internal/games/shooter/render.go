package shooter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/level"
	"github.com/vovakirdan/tui-shooter/internal/progression"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

const (
	hudRows   = 1
	healthBar = 10
)

// viewport projects world coordinates onto screen cells below the HUD.
type viewport struct {
	world  core.Box
	width  int
	height int
}

func newViewport(m *tilemap.Map, dst *core.Screen) viewport {
	return viewport{world: m.Bounds(), width: dst.Width(), height: dst.Height() - hudRows}
}

func (v viewport) cell(p core.Vec) (x, y int, ok bool) {
	if v.width <= 0 || v.height <= 0 || v.world.W <= 0 || v.world.H <= 0 {
		return 0, 0, false
	}
	x = int(p.X / v.world.W * float64(v.width))
	y = int(p.Y / v.world.H * float64(v.height))
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return 0, 0, false
	}
	return x, y + hudRows, true
}

// world returns the world point at the center of screen cell (x, y).
func (v viewport) worldAt(x, y int) core.Vec {
	return core.V(
		(float64(x)+0.5)/float64(v.width)*v.world.W,
		(float64(y-hudRows)+0.5)/float64(v.height)*v.world.H,
	)
}

// Render draws the level, the HUD and the phase overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.orch == nil {
		return
	}
	phase := g.orch.Phase()
	if phase == level.PhaseMenu {
		g.drawMenu(dst)
		return
	}
	if m := g.orch.Map(); m != nil {
		vp := newViewport(m, dst)
		g.drawTiles(dst, vp, m)
		g.drawEntities(dst, vp)
	}
	g.drawHUD(dst)

	snap := g.orch.State().Snapshot()
	switch phase {
	case level.PhasePaused:
		drawMessage(dst, "PAUSED", "P to resume  |  Esc for menu")
	case level.PhaseLevelComplete:
		drawMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE", snap.Level), fmt.Sprintf("Score: %d", snap.Score))
	case level.PhaseGameOver:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Best: %d  |  R to restart", snap.Score, snap.HighScore))
	case level.PhaseVictory:
		drawMessage(dst, "VICTORY", fmt.Sprintf("Final score: %d  |  Enter for menu", snap.Score))
	}
}

func (g *Game) drawTiles(dst *core.Screen, vp viewport, m *tilemap.Map) {
	wall := g.sheet.Glyph("wall")
	decor := g.sheet.Glyph("decor")
	ts := float64(m.TileSize)
	for y := hudRows; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			p := vp.worldAt(x, y)
			switch {
			case m.IsWallAt(p.X, p.Y):
				dst.SetColored(x, y, wall.Rune, wall.Color)
			case m.IsDecorTile(int(p.X/ts), int(p.Y/ts)):
				dst.SetColored(x, y, decor.Rune, decor.Color)
			}
		}
	}
}

func (g *Game) drawEntities(dst *core.Screen, vp viewport) {
	table := g.orch.Table()
	put := func(p core.Vec, gl Glyph) {
		if x, y, ok := vp.cell(p); ok {
			dst.SetColored(x, y, gl.Rune, gl.Color)
		}
	}

	for _, it := range table.Items() {
		put(it.Position(), g.sheet.Glyph("item-"+it.Type.String()))
	}
	for _, b := range g.fx.bursts {
		put(b.pos, g.sheet.Glyph(b.key))
	}
	for _, e := range table.Enemies() {
		key := "enemy-" + e.Type.String()
		if g.fx.enemyFlashing(e.ID()) {
			key = "enemy-hit"
		}
		put(e.Position(), g.sheet.Glyph(key))
	}
	for _, b := range table.Bullets() {
		put(b.Position(), g.sheet.Glyph("bullet"))
	}
	if p := table.Player(); p != nil {
		key := "player-right"
		switch {
		case p.Dead():
			key = "player-dead"
		case g.fx.playerFlashing():
			key = "player-hit"
		case p.FacingLeft:
			key = "player-left"
		}
		put(p.Position(), g.sheet.Glyph(key))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	snap := g.orch.State().Snapshot()
	left := fmt.Sprintf(" Score %d  Best %d  Lv %d  Wpn %d  Foes %d/%d ",
		snap.Score, snap.HighScore, snap.Level, snap.WeaponTier,
		snap.Enemies.Defeated, snap.Enemies.Total)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	hp := fmt.Sprintf(" HP %s %3d ", healthGauge(snap.Health), snap.Health)
	color := core.ColorBrightGreen
	switch {
	case snap.Health <= 25:
		color = core.ColorBrightRed
	case snap.Health <= 50:
		color = core.ColorYellow
	}
	dst.DrawTextColored(dst.Width()-len([]rune(hp)), 0, hp, color)
}

func healthGauge(health int) string {
	filled := core.Clamp(health*healthBar/progression.MaxHealth, 0, healthBar)
	return strings.Repeat("█", filled) + strings.Repeat("░", healthBar-filled)
}

func (g *Game) drawMenu(dst *core.Screen) {
	snap := g.orch.State().Snapshot()
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, strings.ToUpper(g.title), core.ColorBrightCyan)
	dst.DrawTextCentered(mid-1, fmt.Sprintf("Last score: %d   Best: %d", snap.Score, snap.HighScore), core.ColorWhite)
	dst.DrawTextCentered(mid+1, "Enter or Space to start", core.ColorBrightYellow)
	dst.DrawTextCentered(mid+2, "WASD/arrows move  Space fire  P pause  Esc menu", core.ColorGray)
}

// drawMessage draws a boxed two-line message in the middle of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
