package roulette

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestColorPartition checks the pocket color sets: exactly 2 green,
// 18 red, and 18 black across all 38 pockets.
func TestColorPartition(t *testing.T) {
	counts := make(map[Color]int)
	for p := Pocket(0); p <= DoubleZero; p++ {
		counts[p.Color()]++
	}

	assert.Equal(t, 2, counts[ColorGreen])
	assert.Equal(t, 18, counts[ColorRed])
	assert.Equal(t, 18, counts[ColorBlack])
}

// TestWheelOrder checks the clockwise sequence covers every pocket
// exactly once.
func TestWheelOrder(t *testing.T) {
	require.Len(t, WheelOrder, PocketCount)

	seen := make(map[Pocket]bool)
	for _, p := range WheelOrder {
		assert.True(t, p.Valid(), "pocket %d", int(p))
		assert.False(t, seen[p], "duplicate pocket %s", p)
		seen[p] = true
	}
	assert.Len(t, seen, PocketCount)

	// Zero leads the sequence and 00 sits opposite, as on the
	// physical wheel.
	assert.Equal(t, Pocket(0), WheelOrder[0])
	assert.Equal(t, DoubleZero, WheelOrder[19])
}

// TestWheelIndex checks position lookup round-trips through the order.
func TestWheelIndex(t *testing.T) {
	for i, p := range WheelOrder {
		assert.Equal(t, i, WheelIndex(p))
	}
	assert.Equal(t, -1, WheelIndex(Pocket(38)))
}

// TestPocketString checks pocket rendering and parsing.
func TestPocketString(t *testing.T) {
	assert.Equal(t, "0", Pocket(0).String())
	assert.Equal(t, "17", Pocket(17).String())
	assert.Equal(t, "00", DoubleZero.String())

	p, err := ParsePocket("00")
	require.NoError(t, err)
	assert.Equal(t, DoubleZero, p)

	p, err = ParsePocket("36")
	require.NoError(t, err)
	assert.Equal(t, Pocket(36), p)

	// Parse failures carry the pocket sentinel, not the rig one: the
	// same parser serves bet targets, where a rig error would mislead.
	for _, bad := range []string{"37", "-1", "red", ""} {
		_, err := ParsePocket(bad)
		assert.ErrorIs(t, err, ErrInvalidPocket, "input %q", bad)
		assert.NotErrorIs(t, err, ErrInvalidRigNumber, "input %q", bad)
	}
}

// TestSpinUnrigged checks fair spins always produce a valid pocket
// with its natural color.
func TestSpinUnrigged(t *testing.T) {
	wheel := NewWheelWithSource(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		outcome := wheel.Spin(RigState{})
		require.True(t, outcome.Pocket.Valid())
		assert.Equal(t, outcome.Pocket.Color(), outcome.Color)
		assert.False(t, outcome.Timestamp.IsZero())
	}
}

// TestSpinUnriggedCoverage checks a fair wheel reaches every pocket
// eventually.
func TestSpinUnriggedCoverage(t *testing.T) {
	wheel := NewWheelWithSource(rand.NewSource(7))

	seen := make(map[Pocket]bool)
	for i := 0; i < 5000; i++ {
		seen[wheel.Spin(RigState{}).Pocket] = true
	}
	assert.Len(t, seen, PocketCount)
}

// TestRigDeterminism: a rigged number always lands, regardless of
// prior random state, with its natural color.
func TestRigDeterminism(t *testing.T) {
	wheel := NewWheel()
	target := Pocket(17)
	rig := RigState{Number: &target, Active: true}

	for i := 0; i < 50; i++ {
		outcome := wheel.Spin(rig)
		assert.Equal(t, Pocket(17), outcome.Pocket)
		assert.Equal(t, ColorBlack, outcome.Color)
	}
}

// TestRigNumberAndColor: a rig with both set lands the number and
// carries the forced color label.
func TestRigNumberAndColor(t *testing.T) {
	wheel := NewWheel()
	target := Pocket(17)
	forced := ColorRed
	outcome := wheel.Spin(RigState{Number: &target, Color: &forced, Active: true})

	assert.Equal(t, Pocket(17), outcome.Pocket)
	assert.Equal(t, ColorRed, outcome.Color)
}

// TestRigColorOnly: a color-only rig picks a pocket of that color. A
// green rig reaches both 0 and 00.
func TestRigColorOnly(t *testing.T) {
	wheel := NewWheelWithSource(rand.NewSource(3))

	for _, color := range []Color{ColorRed, ColorBlack} {
		rigColor := color
		rig := RigState{Color: &rigColor, Active: true}
		for i := 0; i < 100; i++ {
			outcome := wheel.Spin(rig)
			assert.Equal(t, color, outcome.Pocket.Color(), "rig %s landed %s", color, outcome.Pocket)
		}
	}

	green := ColorGreen
	rig := RigState{Color: &green, Active: true}
	seen := make(map[Pocket]bool)
	for i := 0; i < 200; i++ {
		outcome := wheel.Spin(rig)
		require.True(t, outcome.Pocket.IsZero(), "green rig landed %s", outcome.Pocket)
		seen[outcome.Pocket] = true
	}
	assert.True(t, seen[0], "green rig never landed 0")
	assert.True(t, seen[DoubleZero], "green rig never landed 00")
}

// TestPocketsOfColor checks the color pocket lists used by color rigs.
func TestPocketsOfColor(t *testing.T) {
	assert.Len(t, PocketsOfColor(ColorRed), 18)
	assert.Len(t, PocketsOfColor(ColorBlack), 18)
	assert.ElementsMatch(t, []Pocket{0, DoubleZero}, PocketsOfColor(ColorGreen))
}

// TestRiggedSpinAlwaysLandsProperty: for any valid rig number, the
// spin lands exactly there.
func TestRiggedSpinAlwaysLandsProperty(t *testing.T) {
	wheel := NewWheel()
	rapid.Check(t, func(t *rapid.T) {
		target := Pocket(rapid.IntRange(0, int(DoubleZero)).Draw(t, "target"))
		outcome := wheel.Spin(RigState{Number: &target, Active: true})

		if outcome.Pocket != target {
			t.Fatalf("rigged %s, landed %s", target, outcome.Pocket)
		}
		if outcome.Color != target.Color() {
			t.Fatalf("rigged %s: color %s, want natural %s", target, outcome.Color, target.Color())
		}
	})
}
