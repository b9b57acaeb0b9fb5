package board

import (
	"context"
	"errors"

	leaderboard "github.com/october-classic/classic-live/pkg/leaderboard"
	scoring "github.com/october-classic/classic-live/pkg/scoring"
	classic "github.com/october-classic/classic-live/repos/classic"
)

// ErrRoundNotFound is returned when a scorecard is requested for a round
// outside the given event.
var ErrRoundNotFound = errors.New("round not found in event")

// ScorecardRow is one player's line on a round scorecard.
type ScorecardRow struct {
	Player   string                       `json:"player"`
	Holes    map[string]classic.HoleScore `json:"holes"`
	Front9   int                          `json:"front9"`
	Back9    int                          `json:"back9"`
	Total    int                          `json:"total"`
	GirCount int                          `json:"girCount"`
	Birdies  int                          `json:"birdies"`
	Eagles   int                          `json:"eagles"`
}

// Scorecard is a round's scores with derived totals, for the viewer.
type Scorecard struct {
	Round classic.Round  `json:"round"`
	Rows  []ScorecardRow `json:"rows"`
}

type BoardService struct {
	classicService *classic.Service
}

func NewBoardService(classicService *classic.Service) *BoardService {
	return &BoardService{
		classicService: classicService,
	}
}

// Standings assembles the read snapshots and runs the aggregation. Viewers
// call this on every change notification, so it always recomputes from the
// stored state instead of keeping anything in memory.
func (s *BoardService) Standings(ctx context.Context, eventID string) ([]leaderboard.Entry, error) {
	event, err := s.classicService.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rounds, err := s.classicService.ListRounds(ctx, eventID)
	if err != nil {
		return nil, err
	}

	roundIDs := make([]string, 0, len(rounds))
	for _, round := range rounds {
		roundIDs = append(roundIDs, round.ID)
	}

	scores, err := s.classicService.ListEventScores(ctx, roundIDs)
	if err != nil {
		return nil, err
	}

	return leaderboard.Compute(*event, rounds, scores), nil
}

// Rounds lists the event's rounds in playing order for the viewer's tabs.
func (s *BoardService) Rounds(ctx context.Context, eventID string) ([]classic.Round, error) {
	return s.classicService.ListRounds(ctx, eventID)
}

// RoundScorecard projects one round's scores with per-player totals. Totals
// follow the round's format, and birdies and eagles are derived from the
// entered holes rather than the stored counters.
func (s *BoardService) RoundScorecard(ctx context.Context, eventID, roundID string) (*Scorecard, error) {
	round, err := s.classicService.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.EventID != eventID {
		return nil, ErrRoundNotFound
	}

	scores, err := s.classicService.ListRoundScores(ctx, roundID)
	if err != nil {
		return nil, err
	}

	card := &Scorecard{Round: *round, Rows: make([]ScorecardRow, 0, len(scores))}
	for _, score := range scores {
		front, back := scoring.FrontBackTotals(score, round.Format)
		row := ScorecardRow{
			Player:   score.Player,
			Holes:    score.Holes,
			Front9:   front,
			Back9:    back,
			Total:    scoring.RoundTotal(score, round.Format),
			GirCount: scoring.GirCount(score),
		}
		if round.Course != nil {
			row.Birdies, row.Eagles = scoring.CountBirdiesEagles(score.Holes, round.Course.Holes)
		}
		card.Rows = append(card.Rows, row)
	}
	return card, nil
}
