package roulette

import (
	"fmt"
	"sort"
	"strings"
)

// BetKind discriminates the closed set of bet variants on the table
// layout.
type BetKind string

const (
	BetStraight   BetKind = "straight"
	BetSplit      BetKind = "split"
	BetStreet     BetKind = "street"
	BetCorner     BetKind = "corner"
	BetFiveNumber BetKind = "five_number"
	BetLine       BetKind = "line"
	BetRed        BetKind = "red"
	BetBlack      BetKind = "black"
	BetEven       BetKind = "even"
	BetOdd        BetKind = "odd"
	BetLow        BetKind = "low"
	BetHigh       BetKind = "high"
	BetDozen      BetKind = "dozen"
	BetColumn     BetKind = "column"
)

// BetType is one wager shape: a kind plus the payload that kind needs.
// Construct values through the constructors below; they validate the
// shape so WinsFor never has to.
type BetType struct {
	Kind    BetKind
	Pocket  Pocket   // straight-up target
	Numbers []Pocket // split/street/corner/line members
	Index   int      // dozen/column ordinal, 1-3
}

// fiveNumberSet is the fixed American-only basket.
var fiveNumberSet = []Pocket{0, DoubleZero, 1, 2, 3}

// Straight builds a single-number bet.
func Straight(p Pocket) (BetType, error) {
	if !p.Valid() {
		return BetType{}, fmt.Errorf("%w: pocket %d", ErrInvalidBetShape, int(p))
	}
	return BetType{Kind: BetStraight, Pocket: p}, nil
}

// Split builds a two-number bet.
func Split(pockets ...Pocket) (BetType, error) {
	return multiNumber(BetSplit, 2, pockets)
}

// Street builds a three-number row bet.
func Street(pockets ...Pocket) (BetType, error) {
	return multiNumber(BetStreet, 3, pockets)
}

// Corner builds a four-number square bet.
func Corner(pockets ...Pocket) (BetType, error) {
	return multiNumber(BetCorner, 4, pockets)
}

// Line builds a six-number double-street bet.
func Line(pockets ...Pocket) (BetType, error) {
	return multiNumber(BetLine, 6, pockets)
}

// FiveNumber builds the fixed {0, 00, 1, 2, 3} basket bet.
func FiveNumber() BetType {
	return BetType{Kind: BetFiveNumber, Numbers: fiveNumberSet}
}

// Red, Black, Even, Odd, Low, and High build the even-money outside
// bets.
func Red() BetType   { return BetType{Kind: BetRed} }
func Black() BetType { return BetType{Kind: BetBlack} }
func Even() BetType  { return BetType{Kind: BetEven} }
func Odd() BetType   { return BetType{Kind: BetOdd} }
func Low() BetType   { return BetType{Kind: BetLow} }
func High() BetType  { return BetType{Kind: BetHigh} }

// Dozen builds a dozen bet; n is 1, 2, or 3.
func Dozen(n int) (BetType, error) {
	if n < 1 || n > 3 {
		return BetType{}, fmt.Errorf("%w: dozen %d", ErrInvalidBetShape, n)
	}
	return BetType{Kind: BetDozen, Index: n}, nil
}

// Column builds a column bet; n is 1, 2, or 3.
func Column(n int) (BetType, error) {
	if n < 1 || n > 3 {
		return BetType{}, fmt.Errorf("%w: column %d", ErrInvalidBetShape, n)
	}
	return BetType{Kind: BetColumn, Index: n}, nil
}

// multiNumber validates a multi-number bet: exact member count, every
// member a real pocket, no duplicates. Table adjacency is not checked;
// the count is what keeps the payout math honest.
func multiNumber(kind BetKind, want int, pockets []Pocket) (BetType, error) {
	if len(pockets) != want {
		return BetType{}, fmt.Errorf("%w: %s needs %d numbers, got %d", ErrInvalidBetShape, kind, want, len(pockets))
	}
	seen := make(map[Pocket]bool, want)
	for _, p := range pockets {
		if !p.Valid() {
			return BetType{}, fmt.Errorf("%w: pocket %d", ErrInvalidBetShape, int(p))
		}
		if seen[p] {
			return BetType{}, fmt.Errorf("%w: duplicate pocket %s", ErrInvalidBetShape, p)
		}
		seen[p] = true
	}
	numbers := make([]Pocket, want)
	copy(numbers, pockets)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return BetType{Kind: kind, Numbers: numbers}, nil
}

// PayoutMultiplier returns the total-return multiplier for a winning
// bet of this type, stake included. Pure; never fails.
func PayoutMultiplier(bt BetType) int64 {
	switch bt.Kind {
	case BetStraight:
		return 36
	case BetSplit:
		return 18
	case BetStreet:
		return 12
	case BetCorner:
		return 9
	case BetFiveNumber:
		return 7
	case BetLine:
		return 6
	case BetDozen, BetColumn:
		return 3
	default:
		// red/black/even/odd/low/high
		return 2
	}
}

// columnResidue maps a column ordinal to the pocket-number residue mod
// 3 on the American layout: the first column holds 1, 4, 7, ...
var columnResidue = [4]int{0: -1, 1: 1, 2: 2, 3: 0}

// WinsFor reports whether a bet of this type wins when the ball lands
// in pocket p. Green pockets never match red/black, parity, range,
// dozen, or column bets.
func WinsFor(bt BetType, p Pocket) bool {
	switch bt.Kind {
	case BetStraight:
		return p == bt.Pocket
	case BetSplit, BetStreet, BetCorner, BetFiveNumber, BetLine:
		for _, n := range bt.Numbers {
			if n == p {
				return true
			}
		}
		return false
	case BetRed:
		return p.Color() == ColorRed
	case BetBlack:
		return p.Color() == ColorBlack
	case BetEven:
		return !p.IsZero() && p%2 == 0
	case BetOdd:
		return !p.IsZero() && p%2 == 1
	case BetLow:
		return p >= 1 && p <= 18
	case BetHigh:
		return p >= 19 && p <= 36
	case BetDozen:
		lo := Pocket(12*(bt.Index-1) + 1)
		return p >= lo && p <= lo+11
	case BetColumn:
		return !p.IsZero() && int(p)%3 == columnResidue[bt.Index]
	default:
		return false
	}
}

// String renders the bet the way the table labels it.
func (bt BetType) String() string {
	switch bt.Kind {
	case BetStraight:
		return "number " + bt.Pocket.String()
	case BetSplit, BetStreet, BetCorner, BetLine:
		labels := make([]string, len(bt.Numbers))
		for i, n := range bt.Numbers {
			labels[i] = n.String()
		}
		return string(bt.Kind) + " " + strings.Join(labels, "-")
	case BetFiveNumber:
		return "five numbers"
	case BetDozen:
		return fmt.Sprintf("dozen %d", bt.Index)
	case BetColumn:
		return fmt.Sprintf("column %d", bt.Index)
	default:
		return string(bt.Kind)
	}
}
