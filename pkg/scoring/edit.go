package scoring

import (
	"errors"
	"strconv"

	"github.com/xorcare/pointer"

	classic "github.com/october-classic/classic-live/repos/classic"
)

var (
	ErrUnknownField   = errors.New("unknown edit field")
	ErrInvalidHole    = errors.New("edit requires a valid hole number")
	ErrMissingValue   = errors.New("edit is missing a value")
	ErrInvalidStrokes = errors.New("strokes must be at least 1")
)

type EditField string

const (
	EditStrokes  EditField = "strokes"
	EditPoints   EditField = "points"
	EditGir      EditField = "gir"
	EditHandicap EditField = "handicap"
	EditLd       EditField = "ldPoints"
	EditCttp     EditField = "cttpPoints"
)

// Edit is one incoming field change from the scorer. For the per-hole fields
// (strokes, points, gir) Hole names the target hole; a nil Value clears the
// entry. Side-game counts overwrite wholesale, they never increment.
type Edit struct {
	Field    EditField `json:"field"`
	Hole     int       `json:"hole,omitempty"`
	Value    *int      `json:"value,omitempty"`
	Gir      *bool     `json:"gir,omitempty"`
	Handicap *float64  `json:"handicap,omitempty"`
}

// ApplyEdit applies one edit to a score snapshot and returns the fully
// recomputed record ready to persist. Birdies and eagles are always
// re-derived from the complete hole map. In a Stableford round, any strokes
// or handicap change recomputes every entered hole's points from the
// player's allowance, so a late handicap edit corrects the whole card.
func ApplyEdit(score classic.Score, round classic.Round, edit Edit) (classic.Score, error) {
	updated := score
	updated.RoundID = round.ID
	updated.Holes = cloneHoles(score.Holes)

	recomputePoints := false

	switch edit.Field {
	case EditStrokes:
		key, err := holeKey(edit)
		if err != nil {
			return score, err
		}
		// A hole cannot be completed in fewer than one stroke; nil still
		// clears the entry.
		if edit.Value != nil && *edit.Value < 1 {
			return score, ErrInvalidStrokes
		}
		hs := updated.Holes[key]
		hs.Strokes = edit.Value
		updated.Holes[key] = hs
		recomputePoints = true

	case EditPoints:
		key, err := holeKey(edit)
		if err != nil {
			return score, err
		}
		hs := updated.Holes[key]
		hs.Points = edit.Value
		updated.Holes[key] = hs

	case EditGir:
		key, err := holeKey(edit)
		if err != nil {
			return score, err
		}
		hs := updated.Holes[key]
		hs.Gir = edit.Gir
		updated.Holes[key] = hs

	case EditHandicap:
		if edit.Handicap == nil {
			return score, ErrMissingValue
		}
		updated.Handicap = *edit.Handicap
		if updated.Handicap < 0 {
			updated.Handicap = 0
		}
		recomputePoints = true

	case EditLd:
		updated.LdPoints = clampNonNegative(edit.Value)

	case EditCttp:
		updated.CttpPoints = clampNonNegative(edit.Value)

	default:
		return score, ErrUnknownField
	}

	var courseHoles []classic.Hole
	if round.Course != nil {
		courseHoles = round.Course.Holes
	}

	if recomputePoints && round.Format == classic.FormatStableford {
		recomputeStablefordPoints(&updated, courseHoles)
	}

	updated.Birdies, updated.Eagles = CountBirdiesEagles(updated.Holes, courseHoles)

	return updated, nil
}

// recomputeStablefordPoints rewrites every entered hole's points from gross
// strokes, par and the player's per-hole allowance. Holes without strokes
// lose any stale points.
func recomputeStablefordPoints(score *classic.Score, courseHoles []classic.Hole) {
	handicap := int(score.Handicap)
	for key, hs := range score.Holes {
		num, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		hole, ok := findHole(courseHoles, num)
		if !ok || hole.Par == 0 {
			continue
		}

		if hs.Strokes == nil {
			hs.Points = nil
		} else {
			allowance := HandicapStrokes(handicap, hole.StrokeIndex)
			hs.Points = pointer.Int(StablefordPoints(*hs.Strokes, hole.Par, allowance))
		}
		score.Holes[key] = hs
	}
}

func holeKey(edit Edit) (string, error) {
	if edit.Hole < 1 {
		return "", ErrInvalidHole
	}
	return strconv.Itoa(edit.Hole), nil
}

func clampNonNegative(value *int) int {
	if value == nil || *value < 0 {
		return 0
	}
	return *value
}

func cloneHoles(holes map[string]classic.HoleScore) map[string]classic.HoleScore {
	cloned := make(map[string]classic.HoleScore, len(holes))
	for key, hs := range holes {
		cloned[key] = hs
	}
	return cloned
}
