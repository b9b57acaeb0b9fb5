package scoring

import (
	"testing"

	"github.com/xorcare/pointer"

	classic "github.com/october-classic/classic-live/repos/classic"
)

func TestHandicapStrokes(t *testing.T) {
	cases := []struct {
		handicap    int
		strokeIndex int
		want        int
	}{
		{0, 1, 0},
		{0, 18, 0},
		{9, 5, 1},
		{9, 9, 1},
		{9, 10, 0},
		{18, 1, 1},
		{18, 18, 1},
		{19, 1, 2},
		{19, 2, 1},
		{36, 18, 2},
		{-3, 4, 0},
	}

	for _, c := range cases {
		got := HandicapStrokes(c.handicap, c.strokeIndex)
		if got != c.want {
			t.Errorf("HandicapStrokes(%d, %d) = %d, want %d", c.handicap, c.strokeIndex, got, c.want)
		}
	}
}

// Past h mod 18 the allowance settles at h/18 and never increases again as
// the stroke index rises.
func TestHandicapStrokesMonotonic(t *testing.T) {
	for handicap := 0; handicap <= 54; handicap++ {
		prev := HandicapStrokes(handicap, 1)
		for strokeIndex := 2; strokeIndex <= 18; strokeIndex++ {
			got := HandicapStrokes(handicap, strokeIndex)
			if got > prev {
				t.Fatalf("allowance increased with stroke index: h=%d si=%d", handicap, strokeIndex)
			}
			if strokeIndex > handicap%18 && got != handicap/18 {
				t.Fatalf("HandicapStrokes(%d, %d) = %d, want %d past the extra strokes", handicap, strokeIndex, got, handicap/18)
			}
			prev = got
		}
	}
}

func TestStablefordPoints(t *testing.T) {
	cases := []struct {
		strokes         int
		par             int
		handicapStrokes int
		want            int
	}{
		{1, 4, 0, 5},
		{2, 4, 0, 4},
		{3, 4, 0, 3},
		{4, 4, 0, 2},
		{5, 4, 0, 1},
		{6, 4, 0, 0},
		{9, 4, 0, 0},
		{5, 4, 1, 2}, // net par with one allowance stroke
		{6, 5, 2, 3}, // net birdie on a stroke-and-a-half hole
	}

	for _, c := range cases {
		got := StablefordPoints(c.strokes, c.par, c.handicapStrokes)
		if got != c.want {
			t.Errorf("StablefordPoints(%d, %d, %d) = %d, want %d", c.strokes, c.par, c.handicapStrokes, got, c.want)
		}
	}
}

func testCourse() *classic.Course {
	holes := make([]classic.Hole, 18)
	for i := range holes {
		holes[i] = classic.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	// A couple of par threes and fives to make birdies interesting.
	holes[2].Par = 3
	holes[7].Par = 5
	return &classic.Course{ID: "test", Name: "Test Links", Holes: holes}
}

func TestCountBirdiesEagles(t *testing.T) {
	course := testCourse()
	holes := map[string]classic.HoleScore{
		"1":    {Strokes: pointer.Int(3)},  // birdie on par 4
		"2":    {Strokes: pointer.Int(2)},  // eagle on par 4
		"3":    {Strokes: pointer.Int(3)},  // par on the par 3
		"8":    {Strokes: pointer.Int(3)},  // eagle on the par 5
		"9":    {Gir: pointer.Bool(true)},  // no strokes yet, ignored
		"abc":  {Strokes: pointer.Int(2)},  // malformed key, ignored
		"19":   {Strokes: pointer.Int(2)},  // not on the course, ignored
	}

	birdies, eagles := CountBirdiesEagles(holes, course.Holes)
	if birdies != 1 || eagles != 2 {
		t.Errorf("CountBirdiesEagles = (%d, %d), want (1, 2)", birdies, eagles)
	}

	// Recomputing from the same map yields the same counts.
	birdies2, eagles2 := CountBirdiesEagles(holes, course.Holes)
	if birdies2 != birdies || eagles2 != eagles {
		t.Errorf("recompute changed counts: (%d, %d) vs (%d, %d)", birdies2, eagles2, birdies, eagles)
	}
}

func TestFrontBackTotals(t *testing.T) {
	score := classic.Score{
		Holes: map[string]classic.HoleScore{
			"1":   {Strokes: pointer.Int(4), Points: pointer.Int(2)},
			"9":   {Strokes: pointer.Int(5), Points: pointer.Int(1)},
			"10":  {Strokes: pointer.Int(3), Points: pointer.Int(3)},
			"bad": {Strokes: pointer.Int(99)},
		},
	}

	front, back := FrontBackTotals(score, classic.FormatStrokeplay)
	if front != 9 || back != 3 {
		t.Errorf("strokeplay FrontBackTotals = (%d, %d), want (9, 3)", front, back)
	}

	front, back = FrontBackTotals(score, classic.FormatStableford)
	if front != 3 || back != 3 {
		t.Errorf("stableford FrontBackTotals = (%d, %d), want (3, 3)", front, back)
	}
}

func TestApplyEditStrokesRecomputesBirdies(t *testing.T) {
	course := testCourse()
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Course: course}
	score := classic.Score{RoundID: "r1", Player: "Neil", Holes: map[string]classic.HoleScore{}}

	updated, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 1, Value: pointer.Int(3)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if updated.Birdies != 1 || updated.Eagles != 0 {
		t.Errorf("birdies/eagles = (%d, %d), want (1, 0)", updated.Birdies, updated.Eagles)
	}

	// Clearing the strokes takes the birdie back.
	cleared, err := ApplyEdit(updated, round, Edit{Field: EditStrokes, Hole: 1})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if cleared.Birdies != 0 {
		t.Errorf("birdies after clear = %d, want 0", cleared.Birdies)
	}

	// The input snapshot stays untouched.
	if len(score.Holes) != 0 {
		t.Errorf("ApplyEdit mutated the input score")
	}
}

func TestApplyEditStablefordHandicapRecompute(t *testing.T) {
	course := testCourse()
	course.Holes[0].StrokeIndex = 5
	round := classic.Round{ID: "r3", Format: classic.FormatStableford, Course: course}
	score := classic.Score{RoundID: "r3", Player: "Dave", Holes: map[string]classic.HoleScore{}}

	withStrokes, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 1, Value: pointer.Int(5)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	// Handicap 0: 5 on a par 4 is a net bogey.
	if got := withStrokes.Holes["1"].Points; got == nil || *got != 1 {
		t.Fatalf("points before handicap = %v, want 1", got)
	}

	// A handicap edit retroactively recomputes the already-entered hole:
	// handicap 9 gives one stroke on stroke index 5, so net par.
	withHandicap, err := ApplyEdit(withStrokes, round, Edit{Field: EditHandicap, Handicap: pointer.Float64(9)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if got := withHandicap.Holes["1"].Points; got == nil || *got != 2 {
		t.Errorf("points after handicap = %v, want 2", got)
	}
}

func TestApplyEditSideGamesOverwrite(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Course: testCourse()}
	score := classic.Score{RoundID: "r1", Player: "Neil", LdPoints: 2}

	updated, err := ApplyEdit(score, round, Edit{Field: EditLd, Value: pointer.Int(1)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if updated.LdPoints != 1 {
		t.Errorf("ldPoints = %d, want 1 (overwrite, not increment)", updated.LdPoints)
	}

	negative, err := ApplyEdit(updated, round, Edit{Field: EditCttp, Value: pointer.Int(-4)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if negative.CttpPoints != 0 {
		t.Errorf("cttpPoints = %d, want 0 for a negative entry", negative.CttpPoints)
	}
}

func TestApplyEditGirToggle(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Course: testCourse()}
	score := classic.Score{RoundID: "r1", Player: "Neil", Holes: map[string]classic.HoleScore{}}

	updated, err := ApplyEdit(score, round, Edit{Field: EditGir, Hole: 4, Gir: pointer.Bool(true)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if GirCount(updated) != 1 {
		t.Errorf("girCount = %d, want 1", GirCount(updated))
	}
}

func TestApplyEditRejectsBadEdits(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Course: testCourse()}
	score := classic.Score{RoundID: "r1", Player: "Neil"}

	if _, err := ApplyEdit(score, round, Edit{Field: "nonsense"}); err == nil {
		t.Errorf("expected an error for an unknown field")
	}
	if _, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 0, Value: pointer.Int(4)}); err == nil {
		t.Errorf("expected an error for a missing hole number")
	}
	if _, err := ApplyEdit(score, round, Edit{Field: EditHandicap}); err == nil {
		t.Errorf("expected an error for a handicap edit without a value")
	}
}

func TestApplyEditRejectsImpossibleStrokes(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStableford, Course: testCourse()}
	score := classic.Score{RoundID: "r1", Player: "Neil"}

	for _, strokes := range []int{0, -1, -3} {
		if _, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 1, Value: pointer.Int(strokes)}); err != ErrInvalidStrokes {
			t.Errorf("ApplyEdit(strokes=%d) error = %v, want ErrInvalidStrokes", strokes, err)
		}
	}

	// Clearing an entered hole is still allowed.
	score.Holes = map[string]classic.HoleScore{"1": {Strokes: pointer.Int(4)}}
	updated, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 1, Value: nil})
	if err != nil {
		t.Fatalf("ApplyEdit(clear) returned error: %v", err)
	}
	if updated.Holes["1"].Strokes != nil {
		t.Errorf("clearing strokes left %d behind", *updated.Holes["1"].Strokes)
	}
}

func TestApplyEditWithoutCourseData(t *testing.T) {
	// Course data can arrive after scoring starts; the edit still lands,
	// derived counts just stay at zero.
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay}
	score := classic.Score{RoundID: "r1", Player: "Neil", Birdies: 3}

	updated, err := ApplyEdit(score, round, Edit{Field: EditStrokes, Hole: 2, Value: pointer.Int(3)})
	if err != nil {
		t.Fatalf("ApplyEdit returned error: %v", err)
	}
	if updated.Birdies != 0 || updated.Eagles != 0 {
		t.Errorf("birdies/eagles without course = (%d, %d), want (0, 0)", updated.Birdies, updated.Eagles)
	}
}
