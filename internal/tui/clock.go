package tui

import (
	"math"
	"strings"
)

const (
	// degreesPerHourMark is the angle between two hour marks.
	degreesPerHourMark = 30
	// aspect compensates for terminal cells being about twice as tall as wide.
	aspect = 2.0

	hourHandLength   = 0.5
	minuteHandLength = 0.75
	secondHandLength = 0.85

	rimRune    = '·'
	markRune   = 'o'
	hourRune   = '#'
	minuteRune = '+'
	secondRune = '.'
	centerRune = '@'
)

// HandAngles returns the hour, minute and second hand angles in degrees,
// clockwise from twelve, for a value of seconds.
func HandAngles(seconds int) (hour, minute, second float64) {
	seconds = max(0, seconds)

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	hour = float64(h%12)*30 + float64(m)*0.5
	minute = float64(m)*6 + float64(s)*0.1
	second = float64(s) * 6

	return hour, minute, second
}

// canvas is a grid of runes addressed in clock coordinates.
type canvas struct {
	radius int
	cells  [][]rune
}

func newCanvas(radius int) *canvas {
	height := 2*radius + 1
	width := int(2*aspect*float64(radius)) + 1

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}

	return &canvas{radius: radius, cells: cells}
}

// point converts an angle and a distance (fraction of the radius) to a cell.
func (c *canvas) point(degrees, distance float64) (int, int) {
	radians := degrees * math.Pi / 180
	r := distance * float64(c.radius)

	x := int(math.Round(aspect*float64(c.radius) + aspect*r*math.Sin(radians)))
	y := int(math.Round(float64(c.radius) - r*math.Cos(radians)))

	return x, y
}

func (c *canvas) set(x, y int, r rune) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= len(c.cells[y]) {
		return
	}

	c.cells[y][x] = r
}

// hand draws a ray from the centre to length at degrees.
func (c *canvas) hand(degrees, length float64, r rune) {
	steps := int(math.Ceil(aspect * length * float64(c.radius) * 2))
	for i := 1; i <= steps; i++ {
		x, y := c.point(degrees, length*float64(i)/float64(steps))
		c.set(x, y, r)
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(lines, "\n")
}

// RenderClock draws the clock face showing seconds on a canvas of the given radius.
func RenderClock(seconds, radius int) string {
	c := newCanvas(radius)

	rimSteps := int(2 * math.Pi * aspect * float64(radius))
	for i := range rimSteps {
		x, y := c.point(360*float64(i)/float64(rimSteps), 1)
		c.set(x, y, rimRune)
	}

	for mark := range 12 {
		x, y := c.point(float64(mark*degreesPerHourMark), 1)
		c.set(x, y, markRune)
	}

	hour, minute, second := HandAngles(seconds)
	c.hand(hour, hourHandLength, hourRune)
	c.hand(minute, minuteHandLength, minuteRune)
	c.hand(second, secondHandLength, secondRune)

	x, y := c.point(0, 0)
	c.set(x, y, centerRune)

	return c.String()
}

// sunflower replaces the clock face while the countdown is finished.
const sunflower = `
      \ | /
    '. \|/ .'
  --- (@@@) ---
    .' /|\ '.
      / | \
        |
      \ | /
       \|/
  ~~~~~~~~~~~~~`

// RenderSunflower returns the finished-state artwork.
func RenderSunflower() string {
	return strings.TrimPrefix(sunflower, "\n")
}
