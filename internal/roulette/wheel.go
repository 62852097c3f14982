// Package roulette implements the betting and settlement engine for an
// American double-zero roulette table: the bet catalog with its payout
// table, the wheel and its rig override, the account ledger, and the
// settlement of pending bets against a spin outcome.
package roulette

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Color is the color of a wheel pocket.
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
)

// Valid reports whether c is one of the three pocket colors.
func (c Color) Valid() bool {
	return c == ColorRed || c == ColorBlack || c == ColorGreen
}

// Pocket identifies one of the 38 pockets of an American wheel.
// Values 0-36 are the numbered pockets; DoubleZero is the "00" pocket.
type Pocket int

// DoubleZero is the "00" pocket. It is stored as 37 so that every
// pocket fits in a plain int, and rendered as "00".
const DoubleZero Pocket = 37

// PocketCount is the number of pockets on the wheel.
const PocketCount = 38

// Valid reports whether p names a real pocket.
func (p Pocket) Valid() bool {
	return p >= 0 && p <= DoubleZero
}

// IsZero reports whether p is one of the two green pockets.
func (p Pocket) IsZero() bool {
	return p == 0 || p == DoubleZero
}

// String renders the pocket the way the table prints it.
func (p Pocket) String() string {
	if p == DoubleZero {
		return "00"
	}
	return strconv.Itoa(int(p))
}

// ParsePocket parses a pocket label ("0".."36" or "00").
func ParsePocket(s string) (Pocket, error) {
	if s == "00" {
		return DoubleZero, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPocket, s)
	}
	return Pocket(n), nil
}

// WheelOrder is the clockwise physical sequence of pockets on an
// American wheel.
var WheelOrder = [PocketCount]Pocket{
	0, 28, 9, 26, 30, 11, 7, 20, 32, 17,
	5, 22, 34, 15, 3, 24, 36, 13, 1, DoubleZero,
	27, 10, 25, 29, 12, 8, 19, 31, 18, 6,
	21, 33, 16, 4, 23, 35, 14, 2,
}

// redPockets is the published set of 18 red numbers. Everything else
// in 1-36 is black; 0 and 00 are green.
var redPockets = map[Pocket]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Color returns the pocket's color.
func (p Pocket) Color() Color {
	if p.IsZero() {
		return ColorGreen
	}
	if redPockets[p] {
		return ColorRed
	}
	return ColorBlack
}

// WheelIndex returns the position of p in the clockwise wheel order,
// or -1 if p is not a valid pocket. Presentation layers use the index
// to aim an animation at the outcome.
func WheelIndex(p Pocket) int {
	for i, wp := range WheelOrder {
		if wp == p {
			return i
		}
	}
	return -1
}

// PocketsOfColor returns all pockets of the given color in wheel order.
func PocketsOfColor(c Color) []Pocket {
	var pockets []Pocket
	for _, p := range WheelOrder {
		if p.Color() == c {
			pockets = append(pockets, p)
		}
	}
	return pockets
}

// Outcome is the result of one spin. Immutable once created.
type Outcome struct {
	ID        uuid.UUID
	Pocket    Pocket
	Color     Color
	Timestamp time.Time
}

// Wheel produces spin outcomes, either uniformly at random over all 38
// pockets or forced by a rig. The wheel itself holds no table state;
// consuming the rig is the caller's concern.
type Wheel struct {
	rng *rand.Rand
}

// NewWheel creates a wheel seeded from the clock.
func NewWheel() *Wheel {
	return NewWheelWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWheelWithSource creates a wheel with a caller-supplied random
// source, for deterministic tests.
func NewWheelWithSource(src rand.Source) *Wheel {
	return &Wheel{rng: rand.New(src)}
}

// Spin produces one outcome.
//
// With an inactive rig the pocket is uniform over all 38. A rigged
// number always wins; its color is the rig color if one was also set,
// otherwise the pocket's natural color. A rig with only a color picks
// uniformly among the pockets of that color, so a green rig lands on
// 0 or 00 with equal probability.
func (w *Wheel) Spin(rig RigState) Outcome {
	var pocket Pocket
	var color Color

	switch {
	case !rig.Active:
		pocket = WheelOrder[w.rng.Intn(PocketCount)]
		color = pocket.Color()
	case rig.Number != nil:
		pocket = *rig.Number
		if rig.Color != nil {
			color = *rig.Color
		} else {
			color = pocket.Color()
		}
	case rig.Color != nil:
		candidates := PocketsOfColor(*rig.Color)
		pocket = candidates[w.rng.Intn(len(candidates))]
		color = pocket.Color()
	default:
		// Active rig with nothing set behaves like a fair spin.
		pocket = WheelOrder[w.rng.Intn(PocketCount)]
		color = pocket.Color()
	}

	return Outcome{
		ID:        uuid.New(),
		Pocket:    pocket,
		Color:     color,
		Timestamp: time.Now(),
	}
}
