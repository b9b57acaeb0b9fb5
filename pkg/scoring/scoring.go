// Package scoring derives per-hole points and per-round aggregates from a
// player's raw hole-by-hole entries. Everything here is a pure function over
// a score snapshot; persistence and live updates are the caller's concern.
package scoring

import (
	"strconv"

	classic "github.com/october-classic/classic-live/repos/classic"
)

// HandicapStrokes returns the allowance strokes a player receives on a hole.
// The holes with the lowest stroke indexes get the spare strokes first.
func HandicapStrokes(handicap, strokeIndex int) int {
	if handicap < 0 {
		handicap = 0
	}
	full := handicap / 18
	extra := handicap % 18
	if strokeIndex <= extra {
		return full + 1
	}
	return full
}

// StablefordPoints maps a net score against par to Stableford points.
func StablefordPoints(strokes, par, handicapStrokes int) int {
	netDiff := (strokes - handicapStrokes) - par
	switch {
	case netDiff <= -3:
		return 5
	case netDiff == -2:
		return 4
	case netDiff == -1:
		return 3
	case netDiff == 0:
		return 2
	case netDiff == 1:
		return 1
	default:
		return 0
	}
}

// CountBirdiesEagles re-derives the birdie and eagle counts from the full
// hole map. Gross strokes only; handicap never enters into it. Hole keys
// that do not parse or do not exist on the course are skipped.
func CountBirdiesEagles(holes map[string]classic.HoleScore, courseHoles []classic.Hole) (birdies, eagles int) {
	for key, hs := range holes {
		if hs.Strokes == nil {
			continue
		}
		num, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		hole, ok := findHole(courseHoles, num)
		if !ok || hole.Par == 0 {
			continue
		}

		diff := *hs.Strokes - hole.Par
		if diff == -1 {
			birdies++
		}
		if diff <= -2 {
			eagles++
		}
	}
	return birdies, eagles
}

// GirCount counts the holes flagged green-in-regulation.
func GirCount(score classic.Score) int {
	count := 0
	for _, hs := range score.Holes {
		if hs.Gir != nil && *hs.Gir {
			count++
		}
	}
	return count
}

// RoundTotal sums the card: Stableford rounds total points, everything else
// totals strokes. Missing values count as zero.
func RoundTotal(score classic.Score, format classic.RoundFormat) int {
	total := 0
	for _, hs := range score.Holes {
		total += holeValue(hs, format)
	}
	return total
}

// FrontBackTotals splits the card into front-9 and back-9 sums using the
// round format's scoring unit. Malformed hole keys are ignored.
func FrontBackTotals(score classic.Score, format classic.RoundFormat) (front, back int) {
	for key, hs := range score.Holes {
		num, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if num <= 9 {
			front += holeValue(hs, format)
		} else {
			back += holeValue(hs, format)
		}
	}
	return front, back
}

func holeValue(hs classic.HoleScore, format classic.RoundFormat) int {
	if format == classic.FormatStableford {
		if hs.Points != nil {
			return *hs.Points
		}
		return 0
	}
	if hs.Strokes != nil {
		return *hs.Strokes
	}
	return 0
}

func findHole(holes []classic.Hole, number int) (classic.Hole, bool) {
	for _, h := range holes {
		if h.Number == number {
			return h, true
		}
	}
	return classic.Hole{}, false
}
