// Package tier maps an XP total to a named rank.
package tier

import (
	"errors"
	"fmt"
)

// Threshold is a named rank and the cumulative XP needed to hold it.
type Threshold struct {
	Name  string
	MinXP int
}

// Standing describes where an XP total sits on the ladder.
type Standing struct {
	Name string

	// XPIntoTier is xp minus the tier's minimum.
	XPIntoTier int

	// XPSpanOfTier is the distance from this tier's minimum to the next
	// tier's minimum. Zero for the highest tier.
	XPSpanOfTier int

	// Next is the name of the next tier, empty at the top.
	Next string
}

// IsTop reports whether the standing is the highest tier.
func (s Standing) IsTop() bool {
	return s.XPSpanOfTier == 0
}

// Progress returns the fraction of the current tier completed, in [0, 1].
// The highest tier reports 1.
func (s Standing) Progress() float64 {
	if s.IsTop() {
		return 1
	}
	p := float64(s.XPIntoTier) / float64(s.XPSpanOfTier)
	return min(max(p, 0), 1)
}

// Remaining returns the XP still needed to reach the next tier.
func (s Standing) Remaining() int {
	if s.IsTop() {
		return 0
	}
	return s.XPSpanOfTier - s.XPIntoTier
}

var defaultThresholds = []Threshold{
	{Name: "Bronze", MinXP: 0},
	{Name: "Silver", MinXP: 100},
	{Name: "Gold", MinXP: 250},
	{Name: "Platinum", MinXP: 500},
	{Name: "Diamond", MinXP: 750},
	{Name: "Elite", MinXP: 1250},
	{Name: "Champion", MinXP: 2500},
	{Name: "Unreal", MinXP: 5000},
}

// Default returns the standard rank ladder.
func Default() []Threshold {
	out := make([]Threshold, len(defaultThresholds))
	copy(out, defaultThresholds)
	return out
}

// Validate checks that thresholds is non-empty, starts at 0 and is
// strictly ascending.
func Validate(thresholds []Threshold) error {
	if len(thresholds) == 0 {
		return errors.New("no tier thresholds")
	}
	if thresholds[0].MinXP != 0 {
		return fmt.Errorf("first tier %q starts at %d, want 0", thresholds[0].Name, thresholds[0].MinXP)
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].MinXP <= thresholds[i-1].MinXP {
			return fmt.Errorf("tier %q (%d) does not exceed %q (%d)",
				thresholds[i].Name, thresholds[i].MinXP, thresholds[i-1].Name, thresholds[i-1].MinXP)
		}
	}
	return nil
}

// For returns the standing for xp: the highest threshold whose MinXP does
// not exceed xp, or the lowest threshold when xp is below all of them.
// thresholds must be ascending; an empty slice yields the zero Standing.
func For(xp int, thresholds []Threshold) Standing {
	if len(thresholds) == 0 {
		return Standing{}
	}

	idx := 0
	for i, t := range thresholds {
		if t.MinXP <= xp {
			idx = i
		}
	}

	cur := thresholds[idx]
	s := Standing{Name: cur.Name}
	if xp > cur.MinXP {
		s.XPIntoTier = xp - cur.MinXP
	}
	if idx+1 < len(thresholds) {
		next := thresholds[idx+1]
		s.XPSpanOfTier = next.MinXP - cur.MinXP
		s.Next = next.Name
	}
	return s
}
