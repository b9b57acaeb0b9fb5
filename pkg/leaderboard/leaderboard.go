// Package leaderboard derives the cumulative standings table for an event
// from its rounds and score documents. Compute is a pure full recompute over
// the supplied snapshots; callers re-invoke it on every change notification.
package leaderboard

import (
	"sort"

	scoring "github.com/october-classic/classic-live/pkg/scoring"
	classic "github.com/october-classic/classic-live/repos/classic"
)

// Course names that bracket the handicap-drop side bet. The drop is only
// displayed once both of these rounds have been submitted.
const (
	narinCourseName    = "Narin & Portnoo Golf Club"
	mtJulietCourseName = "Mount Juliet Golf Club"
)

const (
	front9WinValue = 3
	back9WinValue  = 3
	roundWinValue  = 10
	eagleValue     = 5
	manualBonus    = 10
)

// Entry is one player's standings row. It is recomputed from scratch on
// every read and never persisted.
type Entry struct {
	Player            string  `json:"player"`
	Front9Wins        int     `json:"front9Wins"`
	Back9Wins         int     `json:"back9Wins"`
	RoundWins         int     `json:"roundWins"`
	LdPoints          int     `json:"ldPoints"`
	CttpPoints        int     `json:"cttpPoints"`
	Birdies           int     `json:"birdies"`
	Eagles            int     `json:"eagles"`
	GirCount          int     `json:"girCount"`
	GirBonus          int     `json:"girBonus"`
	HandicapDrop      float64 `json:"handicapDrop"`
	HandicapDropBonus int     `json:"handicapDropBonus"`
	Total             int     `json:"total"`
}

// Compute builds the ordered standings for the event. Only submitted rounds
// count; rounds without scores or without loaded course data contribute
// nothing, and scores for players outside event.Players are ignored. Ties on
// total keep event.Players order.
func Compute(event classic.Event, rounds []classic.Round, allScores []classic.Score) []Entry {
	entries := make(map[string]*Entry, len(event.Players))
	for _, player := range event.Players {
		entries[player] = &Entry{Player: player}
	}

	for _, round := range rounds {
		if !round.Submitted {
			continue
		}

		roundScores := knownScoresForRound(entries, allScores, round.ID)
		if len(roundScores) == 0 {
			continue
		}
		if round.Course == nil {
			continue
		}

		awardNineWins(entries, round, roundScores)
		awardRoundWin(entries, round, roundScores)

		for _, score := range roundScores {
			entry := entries[score.Player]
			entry.LdPoints += score.LdPoints
			entry.CttpPoints += score.CttpPoints

			// Re-derive from the hole map instead of trusting the stored
			// cache, so a stale write can never drift the standings.
			birdies, eagles := scoring.CountBirdiesEagles(score.Holes, round.Course.Holes)
			entry.Birdies += birdies
			entry.Eagles += eagles

			entry.GirCount += scoring.GirCount(score)
		}
	}

	applyHandicapDrops(entries, event, rounds, allScores)

	if winner, ok := entries[event.GirOverallWinner]; ok {
		winner.GirBonus = manualBonus
	}
	if winner, ok := entries[event.HandicapDropWinner]; ok {
		winner.HandicapDropBonus = manualBonus
	}

	ordered := make([]Entry, 0, len(event.Players))
	for _, player := range event.Players {
		entry := entries[player]
		entry.Total = entry.Front9Wins*front9WinValue +
			entry.Back9Wins*back9WinValue +
			entry.RoundWins*roundWinValue +
			entry.LdPoints +
			entry.CttpPoints +
			entry.Birdies +
			entry.Eagles*eagleValue +
			entry.GirBonus +
			entry.HandicapDropBonus
		ordered = append(ordered, *entry)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Total > ordered[j].Total
	})

	return ordered
}

// awardNineWins gives the front-9 and back-9 wins for one round. A nine is
// only won outright: if the extremum is shared, nobody gets the point. The
// back nine is only contested on 18-hole courses.
func awardNineWins(entries map[string]*Entry, round classic.Round, roundScores []classic.Score) {
	front9Totals := make(map[string]int, len(roundScores))
	back9Totals := make(map[string]int, len(roundScores))

	for _, score := range roundScores {
		front, back := scoring.FrontBackTotals(score, round.Format)
		front9Totals[score.Player] = front
		back9Totals[score.Player] = back
	}

	if winner, ok := soleExtremum(front9Totals, round.Format); ok {
		entries[winner].Front9Wins++
	}

	if len(round.Course.Holes) == 18 {
		if winner, ok := soleExtremum(back9Totals, round.Format); ok {
			entries[winner].Back9Wins++
		}
	}
}

// soleExtremum picks the winning total among players with a strictly
// positive one: highest for Stableford points, lowest for strokes. Reports
// false when no player qualifies or when the extremum is tied.
func soleExtremum(totals map[string]int, format classic.RoundFormat) (string, bool) {
	winner := ""
	best := 0
	count := 0

	for player, total := range totals {
		if total <= 0 {
			continue
		}
		better := count == 0 ||
			(format == classic.FormatStableford && total > best) ||
			(format != classic.FormatStableford && total < best)
		switch {
		case better:
			winner = player
			best = total
			count = 1
		case total == best:
			count++
		}
	}

	return winner, count == 1
}

// awardRoundWin gives the round win per format. Unlike the nines there is no
// tie guard here: for equal totals the score that appears first in the
// snapshot wins. Matchplay rounds use the manually designated winner and
// award nobody while it is unset.
func awardRoundWin(entries map[string]*Entry, round classic.Round, roundScores []classic.Score) {
	switch round.Format {
	case classic.FormatStrokeplay:
		candidates := make([]classic.Score, 0, len(roundScores))
		for _, score := range roundScores {
			if len(score.Holes) > 0 {
				candidates = append(candidates, score)
			}
		}
		if len(candidates) == 0 {
			return
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return scoring.RoundTotal(candidates[i], round.Format) <
				scoring.RoundTotal(candidates[j], round.Format)
		})
		entries[candidates[0].Player].RoundWins++

	case classic.FormatStableford:
		candidates := append([]classic.Score(nil), roundScores...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return scoring.RoundTotal(candidates[i], round.Format) >
				scoring.RoundTotal(candidates[j], round.Format)
		})
		entries[candidates[0].Player].RoundWins++

	case classic.FormatMatchplay:
		if winner, ok := entries[round.MatchplayWinner]; ok && round.MatchplayWinner != "" {
			winner.RoundWins++
		}
	}
}

// applyHandicapDrops fills the display-only drop column once both the Narin
// & Portnoo and Mount Juliet rounds are in. The drop is the starting
// handicap less the handicap played at Mount Juliet, floored at zero; it
// feeds the manually awarded bonus but never the total directly.
func applyHandicapDrops(entries map[string]*Entry, event classic.Event, rounds []classic.Round, allScores []classic.Score) {
	narinRound := findRoundByCourseName(rounds, narinCourseName)
	mtJulietRound := findRoundByCourseName(rounds, mtJulietCourseName)

	if narinRound == nil || mtJulietRound == nil {
		return
	}
	if !narinRound.Submitted || !mtJulietRound.Submitted {
		return
	}

	for _, player := range event.Players {
		score := findScore(allScores, mtJulietRound.ID, player)
		if score == nil {
			continue
		}

		drop := event.StartingHandicaps[player] - score.Handicap
		if drop < 0 {
			drop = 0
		}
		entries[player].HandicapDrop = drop
	}
}

func knownScoresForRound(entries map[string]*Entry, allScores []classic.Score, roundID string) []classic.Score {
	var scores []classic.Score
	for _, score := range allScores {
		if score.RoundID != roundID {
			continue
		}
		if _, ok := entries[score.Player]; !ok {
			// A score for an unmodeled identity has no standings row to
			// land in; skip it instead of failing the whole board.
			continue
		}
		scores = append(scores, score)
	}
	return scores
}

func findRoundByCourseName(rounds []classic.Round, name string) *classic.Round {
	for i := range rounds {
		if rounds[i].Course != nil && rounds[i].Course.Name == name {
			return &rounds[i]
		}
	}
	return nil
}

func findScore(scores []classic.Score, roundID, player string) *classic.Score {
	for i := range scores {
		if scores[i].RoundID == roundID && scores[i].Player == player {
			return &scores[i]
		}
	}
	return nil
}
