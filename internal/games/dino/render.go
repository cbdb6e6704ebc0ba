package dino

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
)

// Minimum terminal size that fits the HUD, the player and a jump arc.
const (
	MinCols = 40
	MinRows = 12
)

// Visual characters for rendering
const (
	GroundChar    = '─'
	ShortTileChar = '.'
	LongTileChar  = '-'
	CloudChar     = '░'
	StarChar      = '·'
	TrunkChar     = '█'
	ArmChar       = '▄'
)

// Sprites are drawn bottom-up from the entity's cell box; spaces are
// transparent.
var (
	standingBody = []string{
		"   ▄▄",
		"  ██▀",
		"▐███ ",
	}
	standingLegs = [2]string{" ▌ ▀ ", " ▀ ▌ "}
	airborneLegs = " ▌ ▌ "

	duckingBody = []string{
		"    ▄▄",
		"▀████▀",
	}
	duckingLegs = [2]string{" ▌  ▀ ", " ▀  ▌ "}

	birdFrames = [2][]string{
		{"  ▄  ", "◀██▀▀"},
		{"◀██▀▀", "  ▀  "},
	}
)

type palette struct {
	player core.Color
	cactus core.Color
	bird   core.Color
	ground core.Color
	tile   core.Color
	cloud  core.Color
	star   core.Color
	score  core.Color
	hi     core.Color
	text   core.Color
}

var (
	dayPalette = palette{
		player: core.ColorWhite,
		cactus: core.ColorGreen,
		bird:   core.ColorYellow,
		ground: core.ColorGray,
		tile:   core.ColorDarkGray,
		cloud:  core.ColorDarkGray,
		score:  core.ColorWhite,
		hi:     core.ColorGray,
		text:   core.ColorWhite,
	}
	nightPalette = palette{
		player: core.ColorBrightWhite,
		cactus: core.ColorBrightGreen,
		bird:   core.ColorBrightYellow,
		ground: core.ColorWhite,
		tile:   core.ColorGray,
		cloud:  core.ColorGray,
		star:   core.ColorCyan,
		score:  core.ColorBrightWhite,
		hi:     core.ColorWhite,
		text:   core.ColorBrightWhite,
	}
)

// Draw renders a snapshot into dst. The screen is cleared first.
func Draw(dst *core.Screen, snap sim.Snapshot) {
	dst.Clear()

	if dst.Width() < MinCols || dst.Height() < MinRows {
		drawTooSmall(dst)
		return
	}

	pal := dayPalette
	if !snap.IsDaytime {
		pal = nightPalette
		drawStars(dst, cellY(snap.GroundY)/2)
	}

	for _, c := range snap.Clouds {
		drawCloud(dst, c, pal.cloud)
	}

	groundRow := cellY(snap.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, pal.ground)
	for _, t := range snap.Tiles {
		drawTile(dst, t, groundRow+1, pal.tile)
	}

	for _, o := range snap.Ground {
		drawCactus(dst, cellBox(o.X, o.Y, o.Width, o.Height), pal.cactus)
	}
	for _, o := range snap.Flying {
		drawBird(dst, o, pal.bird)
	}

	drawPlayer(dst, snap.Player, pal.player)
	drawHUD(dst, snap, pal)

	switch snap.Phase {
	case sim.PhaseNotStarted:
		drawStartPrompt(dst, groundRow, pal.text)
	case sim.PhaseGameOver:
		drawGameOver(dst, snap, pal.text)
	}
}

func cellX(x float64) int {
	return int(math.Floor(x / UnitsPerCol))
}

func cellY(y float64) int {
	return int(math.Floor(y / UnitsPerRow))
}

// cellBox returns the cells covered by a logical box, at least one cell
// in each direction.
func cellBox(x, y, w, h float64) core.Rect {
	x0, y0 := cellX(x), cellY(y)
	x1 := int(math.Ceil((x + w) / UnitsPerCol))
	y1 := int(math.Ceil((y + h) / UnitsPerRow))
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// drawSprite draws lines so that the last one sits on row bottom.
func drawSprite(dst *core.Screen, x, bottom int, lines []string, c core.Color) {
	top := bottom - len(lines) + 1
	for i, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				dst.SetColored(x+col, top+i, r, c)
			}
			col++
		}
	}
}

func drawPlayer(dst *core.Screen, p sim.PlayerView, c core.Color) {
	box := cellBox(p.X, p.Y, p.Width, p.Height)
	frame := p.RunFrame % 2

	var lines []string
	switch {
	case p.Ducking:
		lines = append(append(lines, duckingBody...), duckingLegs[frame])
	case p.Airborne:
		lines = append(append(lines, standingBody...), airborneLegs)
	default:
		lines = append(append(lines, standingBody...), standingLegs[frame])
	}
	drawSprite(dst, box.X, box.Bottom()-1, lines, c)
}

func drawCactus(dst *core.Screen, r core.Rect, c core.Color) {
	trunks := []int{r.W / 2}
	if r.W >= 5 {
		trunks = []int{r.W / 4, r.W * 3 / 4}
	}

	for _, tx := range trunks {
		x := r.X + tx
		for y := r.Y; y < r.Bottom(); y++ {
			dst.SetColored(x, y, TrunkChar, c)
		}
		if r.H >= 3 {
			dst.SetColored(x-1, r.Y+1, ArmChar, c)
			dst.SetColored(x+1, r.Y+2, ArmChar, c)
		}
	}
}

func drawBird(dst *core.Screen, o sim.FlyingObstacle, c core.Color) {
	box := cellBox(o.X, o.Y, o.Width, o.Height)
	lines := birdFrames[o.WingFrame%2]
	drawSprite(dst, box.X, box.Y+len(lines)-1, lines, c)
}

func drawCloud(dst *core.Screen, cl sim.Cloud, c core.Color) {
	w := max(1, int(math.Round(cl.Width/UnitsPerCol)))
	dst.DrawHLine(cellX(cl.X), cellY(cl.Y), w, CloudChar, c)
}

func drawTile(dst *core.Screen, t sim.GroundTile, row int, c core.Color) {
	x := cellX(t.X)
	if t.Width >= UnitsPerCol {
		dst.DrawHLine(x, row, int(math.Ceil(t.Width/UnitsPerCol)), LongTileChar, c)
		return
	}
	dst.SetColored(x, row, ShortTileChar, c)
}

// drawStars scatters a fixed pattern of stars above maxRow.
func drawStars(dst *core.Screen, maxRow int) {
	for y := 1; y < maxRow; y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*31+y*17)%53 == 0 {
				dst.SetColored(x, y, StarChar, nightPalette.star)
			}
		}
	}
}

// drawHUD draws the speed on the left and "HI 00123  00045" on the right.
func drawHUD(dst *core.Screen, snap sim.Snapshot, pal palette) {
	dst.DrawText(1, 0, fmt.Sprintf("SPD %.1f", snap.Speed), pal.hi)

	hi := "HI " + FormatScore(snap.HighScore)
	cur := FormatScore(snap.Score)
	x := dst.Width() - len(hi) - 2 - len(cur) - 1
	dst.DrawText(x, 0, hi, pal.hi)
	dst.DrawText(x+len(hi)+2, 0, cur, pal.score)
}

func drawStartPrompt(dst *core.Screen, groundRow int, c core.Color) {
	y := groundRow / 3
	dst.DrawTextCentered(y, "D I N O   R U N N E R", c)
	dst.DrawTextCentered(y+2, "Press SPACE or click to start", c)
	dst.DrawTextCentered(y+3, "SPACE/↑ jump   ↓ duck   Q quit", core.ColorGray)
}

func drawGameOver(dst *core.Screen, snap sim.Snapshot, c core.Color) {
	lines := []string{
		"G A M E   O V E R",
		"",
		"Score: " + FormatScore(snap.Score),
	}
	if snap.NewRecord {
		lines = append(lines, "NEW HIGH SCORE!")
	}
	lines = append(lines, "", "SPACE or R to restart  |  B for menu")
	drawCenteredBox(dst, lines, c)
}

// drawCenteredBox draws lines inside a framed box in the middle of the screen.
func drawCenteredBox(dst *core.Screen, lines []string, c core.Color) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	boxW := inner + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l, c)
	}
}

func drawTooSmall(dst *core.Screen) {
	msg := fmt.Sprintf("Terminal too small (need %dx%d)", MinCols, MinRows)
	dst.DrawTextCentered(dst.Height()/2, msg, core.ColorYellow)
}
