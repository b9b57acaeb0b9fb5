package scores

import (
	"context"
	"errors"
	"log"

	editorlock "github.com/october-classic/classic-live/pkg/editorlock"
	scoring "github.com/october-classic/classic-live/pkg/scoring"
	classic "github.com/october-classic/classic-live/repos/classic"
)

var (
	// ErrNotEditor rejects a write before any mutation happens: the caller's
	// session is not the one holding the editor lock.
	ErrNotEditor = errors.New("caller does not hold the editor lock")

	// ErrUnknownPlayer rejects an edit for a name outside event.Players.
	ErrUnknownPlayer = errors.New("player is not part of the event")
)

type ScoresService struct {
	classicService *classic.Service
}

func NewScoresService(classicService *classic.Service) *ScoresService {
	return &ScoresService{
		classicService: classicService,
	}
}

// EditRequest is one field edit from the scorer's card.
type EditRequest struct {
	RoundID string       `json:"roundId"`
	Player  string       `json:"player"`
	Edit    scoring.Edit `json:"edit"`
}

// ScoreSummary is the per-player read model for one round's card.
type ScoreSummary struct {
	Score    classic.Score `json:"score"`
	Front9   int           `json:"front9"`
	Back9    int           `json:"back9"`
	Total    int           `json:"total"`
	GirCount int           `json:"girCount"`
}

// ApplyEdit loads the current score (defaulting an empty card on the first
// edit), runs the scoring engine and persists the recomputed document. The
// editor-lock check runs first so an unauthorized edit never mutates state.
func (s *ScoresService) ApplyEdit(ctx context.Context, editorToken string, request EditRequest) error {
	round, err := s.classicService.GetRound(ctx, request.RoundID)
	if err != nil {
		return err
	}

	event, err := s.classicService.GetEvent(ctx, round.EventID)
	if err != nil {
		return err
	}

	if err := s.requireEditor(ctx, event.ID, editorToken); err != nil {
		return err
	}

	if !playerInEvent(event.Players, request.Player) {
		log.Printf("Edit for unknown player %q rejected\n", request.Player)
		return ErrUnknownPlayer
	}

	score, err := s.classicService.GetScore(ctx, request.RoundID, request.Player)
	if err != nil {
		return err
	}
	if score == nil {
		score = &classic.Score{
			ID:      classic.ScoreID(request.RoundID, request.Player),
			RoundID: request.RoundID,
			Player:  request.Player,
			Holes:   map[string]classic.HoleScore{},
		}
	}

	updated, err := scoring.ApplyEdit(*score, *round, request.Edit)
	if err != nil {
		return err
	}

	return s.classicService.PutScore(ctx, updated)
}

// RoundScores returns the round's score documents with their derived totals
// for the scorecard view.
func (s *ScoresService) RoundScores(ctx context.Context, roundID string) ([]ScoreSummary, error) {
	round, err := s.classicService.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	scores, err := s.classicService.ListRoundScores(ctx, roundID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ScoreSummary, 0, len(scores))
	for _, score := range scores {
		front, back := scoring.FrontBackTotals(score, round.Format)
		summaries = append(summaries, ScoreSummary{
			Score:    score,
			Front9:   front,
			Back9:    back,
			Total:    scoring.RoundTotal(score, round.Format),
			GirCount: scoring.GirCount(score),
		})
	}

	return summaries, nil
}

func (s *ScoresService) requireEditor(ctx context.Context, eventID, editorToken string) error {
	tokenEventID, sessionID, err := editorlock.DecodeToken(editorToken)
	if err != nil {
		return ErrNotEditor
	}
	if tokenEventID != eventID {
		return ErrNotEditor
	}

	access, err := s.classicService.GetEditorAccess(ctx, eventID)
	if err != nil {
		return err
	}
	if access.CurrentEditorUID == "" || access.CurrentEditorUID != sessionID {
		return ErrNotEditor
	}
	return nil
}

func playerInEvent(players []string, player string) bool {
	for _, p := range players {
		if p == player {
			return true
		}
	}
	return false
}
