package leaderboard

import (
	"strconv"
	"testing"

	"github.com/xorcare/pointer"

	classic "github.com/october-classic/classic-live/repos/classic"
)

func course(id, name string, holeCount int) *classic.Course {
	holes := make([]classic.Hole, holeCount)
	for i := range holes {
		holes[i] = classic.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return &classic.Course{ID: id, Name: name, Holes: holes}
}

func event(players ...string) classic.Event {
	return classic.Event{ID: "october-classic-2025", Players: players}
}

// card fills holes first..last with the given strokes per hole.
func card(roundID, player string, first, last, strokes int) classic.Score {
	holes := map[string]classic.HoleScore{}
	for n := first; n <= last; n++ {
		holes[strconv.Itoa(n)] = classic.HoleScore{Strokes: pointer.Int(strokes)}
	}
	return classic.Score{
		ID:      classic.ScoreID(roundID, player),
		RoundID: roundID,
		Player:  player,
		Holes:   holes,
	}
}

func entryFor(t *testing.T, entries []Entry, player string) Entry {
	t.Helper()
	for _, e := range entries {
		if e.Player == player {
			return e
		}
	}
	t.Fatalf("no entry for player %s", player)
	return Entry{}
}

func TestUnsubmittedRoundContributesNothing(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: false, Course: course("c1", "Portsalon Golf Club", 18)}
	scores := []classic.Score{
		card("r1", "Neil", 1, 9, 4),
		card("r1", "Dave", 1, 9, 3),
	}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	for _, e := range entries {
		if e.Total != 0 || e.Front9Wins != 0 || e.RoundWins != 0 {
			t.Errorf("unsubmitted round changed entry %+v", e)
		}
	}
}

func TestStrokeplayRound(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c1", "Portsalon Golf Club", 18)}
	scores := []classic.Score{
		card("r1", "Neil", 1, 9, 4), // 36
		card("r1", "Dave", 1, 9, 4),
	}
	// Dave shoots 34: two birdies on the front nine.
	scores[1].Holes["3"] = classic.HoleScore{Strokes: pointer.Int(3)}
	scores[1].Holes["7"] = classic.HoleScore{Strokes: pointer.Int(3)}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)

	dave := entryFor(t, entries, "Dave")
	if dave.Front9Wins != 1 {
		t.Errorf("Dave front9Wins = %d, want 1", dave.Front9Wins)
	}
	if dave.RoundWins != 1 {
		t.Errorf("Dave roundWins = %d, want 1", dave.RoundWins)
	}
	if dave.Birdies != 2 {
		t.Errorf("Dave birdies = %d, want 2", dave.Birdies)
	}
	// 3 (front nine) + 10 (round) + 2 birdies.
	if dave.Total != 15 {
		t.Errorf("Dave total = %d, want 15", dave.Total)
	}

	neil := entryFor(t, entries, "Neil")
	if neil.Total != 0 {
		t.Errorf("Neil total = %d, want 0", neil.Total)
	}

	// The board is ordered by total.
	if entries[0].Player != "Dave" {
		t.Errorf("expected Dave on top, got %s", entries[0].Player)
	}

	// Nobody entered the back nine, so nobody won it.
	if dave.Back9Wins != 0 || neil.Back9Wins != 0 {
		t.Errorf("back nine won with no back-nine scores")
	}
}

func TestFront9TieAwardsNobody(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c1", "Portsalon Golf Club", 18)}
	scores := []classic.Score{
		card("r1", "Neil", 1, 9, 4),
		card("r1", "Dave", 1, 9, 4),
	}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	for _, e := range entries {
		if e.Front9Wins != 0 {
			t.Errorf("%s got a front-nine win from a tie", e.Player)
		}
	}

	// The round win has no tie guard: the first score in the snapshot takes
	// it even on equal totals.
	if got := entryFor(t, entries, "Neil").RoundWins; got != 1 {
		t.Errorf("Neil roundWins = %d, want 1 on the tie", got)
	}
	if got := entryFor(t, entries, "Dave").RoundWins; got != 0 {
		t.Errorf("Dave roundWins = %d, want 0 on the tie", got)
	}
}

func TestStablefordRound(t *testing.T) {
	round := classic.Round{ID: "r3", Format: classic.FormatStableford, Submitted: true, Course: course("c3", "Portsalon Golf Club", 18)}

	neil := classic.Score{ID: "r3_Neil", RoundID: "r3", Player: "Neil", Holes: map[string]classic.HoleScore{
		"1": {Points: pointer.Int(2)},
		"2": {Points: pointer.Int(3)},
	}}
	dave := classic.Score{ID: "r3_Dave", RoundID: "r3", Player: "Dave", Holes: map[string]classic.HoleScore{
		"1": {Points: pointer.Int(2)},
		"2": {Points: pointer.Int(1)},
	}}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, []classic.Score{neil, dave})

	// Highest points wins a Stableford nine, not lowest.
	if got := entryFor(t, entries, "Neil").Front9Wins; got != 1 {
		t.Errorf("Neil front9Wins = %d, want 1", got)
	}
	if got := entryFor(t, entries, "Neil").RoundWins; got != 1 {
		t.Errorf("Neil roundWins = %d, want 1", got)
	}
}

func TestNineHoleCourseHasNoBackNine(t *testing.T) {
	round := classic.Round{ID: "r5", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c5", "Cruit Island Golf Club", 9)}
	scores := []classic.Score{card("r5", "Neil", 1, 9, 4)}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	if got := entryFor(t, entries, "Neil").Back9Wins; got != 0 {
		t.Errorf("back9Wins = %d on a nine-hole course, want 0", got)
	}
	if got := entryFor(t, entries, "Neil").Front9Wins; got != 1 {
		t.Errorf("front9Wins = %d, want 1", got)
	}
}

func TestMatchplayWinner(t *testing.T) {
	round := classic.Round{ID: "r7", Format: classic.FormatMatchplay, Submitted: true, Course: course("c7", "Galway Golf Club (Salthill)", 18)}
	scores := []classic.Score{card("r7", "Neil", 1, 9, 4)}

	// Unset winner: nobody takes the round.
	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	for _, e := range entries {
		if e.RoundWins != 0 {
			t.Errorf("%s won an undecided matchplay round", e.Player)
		}
	}

	round.MatchplayWinner = "Dave"
	entries = Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	if got := entryFor(t, entries, "Dave").RoundWins; got != 1 {
		t.Errorf("Dave roundWins = %d, want 1", got)
	}
}

func TestManualBonuses(t *testing.T) {
	ev := event("Neil", "Dave")
	ev.GirOverallWinner = "Neil"
	ev.HandicapDropWinner = "Dave"

	entries := Compute(ev, nil, nil)
	if got := entryFor(t, entries, "Neil"); got.GirBonus != 10 || got.Total != 10 {
		t.Errorf("Neil girBonus/total = %d/%d, want 10/10", got.GirBonus, got.Total)
	}
	if got := entryFor(t, entries, "Dave"); got.HandicapDropBonus != 10 || got.Total != 10 {
		t.Errorf("Dave handicapDropBonus/total = %d/%d, want 10/10", got.HandicapDropBonus, got.Total)
	}
}

func TestHandicapDropDisplay(t *testing.T) {
	narin := classic.Round{ID: "r6", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c6", "Narin & Portnoo Golf Club", 18)}
	mtJuliet := classic.Round{ID: "r8", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c8", "Mount Juliet Golf Club", 18)}

	neil := card("r8", "Neil", 1, 3, 4)
	neil.Handicap = 12.5
	dave := card("r8", "Dave", 1, 3, 4)
	dave.Handicap = 20

	ev := event("Neil", "Dave")
	ev.StartingHandicaps = map[string]float64{"Neil": 15, "Dave": 18}

	entries := Compute(ev, []classic.Round{narin, mtJuliet}, []classic.Score{neil, dave})
	if got := entryFor(t, entries, "Neil").HandicapDrop; got != 2.5 {
		t.Errorf("Neil handicapDrop = %v, want 2.5", got)
	}
	// Dave's handicap went up; the display clamps at zero.
	if got := entryFor(t, entries, "Dave").HandicapDrop; got != 0 {
		t.Errorf("Dave handicapDrop = %v, want 0", got)
	}

	// The drop is display only and never feeds the total: Neil's only
	// points come from taking the tied round win as the first card in the
	// snapshot.
	if got := entryFor(t, entries, "Neil").Total; got != 10 {
		t.Errorf("Neil total = %d, want 10 (drop must not feed the total)", got)
	}

	// With Mount Juliet not yet submitted, no drop shows at all.
	mtJuliet.Submitted = false
	entries = Compute(ev, []classic.Round{narin, mtJuliet}, []classic.Score{neil, dave})
	if got := entryFor(t, entries, "Neil").HandicapDrop; got != 0 {
		t.Errorf("handicapDrop = %v before both rounds are in, want 0", got)
	}
}

func TestUnknownPlayerIgnored(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c1", "Portsalon Golf Club", 18)}
	scores := []classic.Score{
		card("r1", "Neil", 1, 9, 4),
		card("r1", "Gatecrasher", 1, 9, 3),
	}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// The stray card neither wins the round nor blocks Neil's front nine.
	if got := entryFor(t, entries, "Neil").Front9Wins; got != 1 {
		t.Errorf("Neil front9Wins = %d, want 1", got)
	}
	if got := entryFor(t, entries, "Neil").RoundWins; got != 1 {
		t.Errorf("Neil roundWins = %d, want 1", got)
	}
}

func TestMissingCourseSkipsRound(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true}
	scores := []classic.Score{card("r1", "Neil", 1, 9, 3)}

	entries := Compute(event("Neil", "Dave"), []classic.Round{round}, scores)
	for _, e := range entries {
		if e.Total != 0 {
			t.Errorf("round without course data contributed to %+v", e)
		}
	}
}

func TestBirdiesRederivedFromHoles(t *testing.T) {
	round := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c1", "Portsalon Golf Club", 18)}

	neil := card("r1", "Neil", 1, 9, 4)
	neil.Holes["2"] = classic.HoleScore{Strokes: pointer.Int(3)}
	neil.Holes["5"] = classic.HoleScore{Strokes: pointer.Int(2)}
	// A stale cache from an interrupted write must not leak through.
	neil.Birdies = 99
	neil.Eagles = 99

	entries := Compute(event("Neil"), []classic.Round{round}, []classic.Score{neil})
	got := entryFor(t, entries, "Neil")
	if got.Birdies != 1 || got.Eagles != 1 {
		t.Errorf("birdies/eagles = (%d, %d), want re-derived (1, 1)", got.Birdies, got.Eagles)
	}
	// 1 birdie + 5 for the eagle + 3 front nine + 10 round win.
	if got.Total != 19 {
		t.Errorf("total = %d, want 19", got.Total)
	}
}

func TestTiesKeepPlayerOrder(t *testing.T) {
	entries := Compute(event("Neil", "Dave", "Paul"), nil, nil)
	want := []string{"Neil", "Dave", "Paul"}
	for i, e := range entries {
		if e.Player != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Player, want[i])
		}
	}
}

func TestSideGamesAndGirAccumulate(t *testing.T) {
	r1 := classic.Round{ID: "r1", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c1", "Portsalon Golf Club", 18)}
	r2 := classic.Round{ID: "r2", Format: classic.FormatStrokeplay, Submitted: true, Course: course("c2", "Dunfanaghy Golf Club", 18)}

	first := card("r1", "Neil", 1, 9, 4)
	first.LdPoints = 1
	first.CttpPoints = 2
	first.Holes["4"] = classic.HoleScore{Strokes: pointer.Int(4), Gir: pointer.Bool(true)}

	second := card("r2", "Neil", 1, 9, 4)
	second.LdPoints = 2
	second.Holes["6"] = classic.HoleScore{Strokes: pointer.Int(4), Gir: pointer.Bool(true)}

	entries := Compute(event("Neil"), []classic.Round{r1, r2}, []classic.Score{first, second})
	got := entryFor(t, entries, "Neil")
	if got.LdPoints != 3 || got.CttpPoints != 2 {
		t.Errorf("side games = (%d, %d), want (3, 2)", got.LdPoints, got.CttpPoints)
	}
	if got.GirCount != 2 {
		t.Errorf("girCount = %d, want 2", got.GirCount)
	}
}
