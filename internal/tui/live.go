package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/kinesim/internal/sim"
)

const (
	width       = 70
	height      = 14
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the actuator's progress along its track as the
// drive loop runs. It implements sim.Observer.
type LiveRenderer struct {
	goal      float64
	vMax      float64
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

// NewLiveRenderer sizes the track for the given goal displacement and
// speed limit.
func NewLiveRenderer(goal, vMax float64, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		goal:      goal,
		vMax:      vMax,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

// Start hides the cursor before the first frame.
func (r *LiveRenderer) Start() {
	fmt.Print(hideCursor)
}

// Stop restores the cursor.
func (r *LiveRenderer) Stop() {
	fmt.Print(showCursor)
	fmt.Println()
}

func (r *LiveRenderer) OnStep(s sim.Sample) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawTrack(s)
	r.drawVelocityBar(s)
	r.render(s)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// column maps a displacement onto the track, keeping start and goal
// inside the frame regardless of direction and overshoot.
func (r *LiveRenderer) column(d float64) int {
	goal := r.goal
	if goal == 0 {
		goal = 1
	}
	frac := d / goal
	return 6 + int(frac*float64(width-14))
}

func (r *LiveRenderer) drawTrack(s sim.Sample) {
	ty := height / 2

	for i := 2; i < width-2; i++ {
		r.set(i, ty+1, '=')
	}

	gx := r.column(r.goal)
	r.set(gx, ty-1, '|')
	r.set(gx, ty, '|')

	cx := r.column(s.Traveled)
	for dx := -1; dx <= 1; dx++ {
		r.set(cx+dx, ty, '#')
	}
	r.set(cx, ty-1, 'o')
}

func (r *LiveRenderer) drawVelocityBar(s sim.Sample) {
	by := height - 3
	mid := width / 2

	r.set(mid, by, '+')
	if r.vMax <= 0 {
		return
	}

	extent := int(s.Command / r.vMax * float64(width/2-6))
	step, ch := 1, '>'
	if extent < 0 {
		step, ch = -1, '<'
	}
	for i := step; i != extent+step; i += step {
		r.set(mid+i, by, ch)
	}
}

func (r *LiveRenderer) render(s sim.Sample) {
	var b strings.Builder
	b.WriteString(clearScreen)

	for _, row := range r.canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}

	b.WriteString(fmt.Sprintf("t=%6.2fs  phase=%-8s", s.T, s.Phase))
	b.WriteString(fmt.Sprintf("  traveled=%7.3f  remaining=%7.3f", s.Traveled, s.Remaining))
	b.WriteString(fmt.Sprintf("  v=%6.3f  cmd=%6.3f\n", s.Velocity, s.Command))

	fmt.Print(b.String())
}
