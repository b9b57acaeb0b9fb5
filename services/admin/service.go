package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"os"

	editorlock "github.com/october-classic/classic-live/pkg/editorlock"
	classic "github.com/october-classic/classic-live/repos/classic"
	notify "github.com/october-classic/classic-live/repos/notify"
	board "github.com/october-classic/classic-live/services/board"
)

var (
	// ErrWrongPin rejects a lock claim with a bad PIN.
	ErrWrongPin = errors.New("incorrect editor PIN")

	// ErrNotEditor rejects an admin write from a session that does not hold
	// the editor lock.
	ErrNotEditor = errors.New("caller does not hold the editor lock")

	// ErrUnknownPlayer rejects a winner or handicap designation for a name
	// outside event.Players.
	ErrUnknownPlayer = errors.New("player is not part of the event")
)

type AdminService struct {
	classicService *classic.Service
	boardService   *board.BoardService
	notifyService  *notify.Service
	editorPIN      string
}

func NewAdminService(classicService *classic.Service, boardService *board.BoardService, notifyService *notify.Service) *AdminService {
	return &AdminService{
		classicService: classicService,
		boardService:   boardService,
		notifyService:  notifyService,
		editorPIN:      os.Getenv("EDITOR_PIN"),
	}
}

// ClaimEditor trades the shared PIN for an editor session token and writes
// the session id to the event's access document. A later claim simply
// overwrites the lock; the previous editor loses write access on their next
// edit.
func (s *AdminService) ClaimEditor(ctx context.Context, eventID, pin string) (string, error) {
	if s.editorPIN == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(s.editorPIN)) != 1 {
		return "", ErrWrongPin
	}

	sessionID := editorlock.NewSessionID()
	if err := s.classicService.ClaimEditor(ctx, eventID, sessionID); err != nil {
		return "", err
	}

	return editorlock.EncodeToken(eventID, sessionID), nil
}

// ReleaseEditor clears the lock. Only the current holder may release it.
func (s *AdminService) ReleaseEditor(ctx context.Context, editorToken string) error {
	eventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return err
	}
	return s.classicService.ReleaseEditor(ctx, eventID)
}

// SubmitRound flips the round's submitted flag so its scores start counting
// toward the leaderboard, then mails the updated standings out of band.
func (s *AdminService) SubmitRound(ctx context.Context, editorToken, roundID string) error {
	round, err := s.authorizeRoundWrite(ctx, editorToken, roundID)
	if err != nil {
		return err
	}

	if err := s.classicService.SetRoundSubmitted(ctx, roundID, true); err != nil {
		return err
	}

	go s.sendSubmissionMail(*round)
	return nil
}

// ResetRound reverses a submission so the scorer can correct the cards.
func (s *AdminService) ResetRound(ctx context.Context, editorToken, roundID string) error {
	if _, err := s.authorizeRoundWrite(ctx, editorToken, roundID); err != nil {
		return err
	}
	return s.classicService.SetRoundSubmitted(ctx, roundID, false)
}

// SetMatchplayWinner designates the round winner for a Matchplay round. An
// empty player clears the designation and nobody holds the round win.
func (s *AdminService) SetMatchplayWinner(ctx context.Context, editorToken, roundID, player string) error {
	round, err := s.authorizeRoundWrite(ctx, editorToken, roundID)
	if err != nil {
		return err
	}

	if player != "" {
		event, err := s.classicService.GetEvent(ctx, round.EventID)
		if err != nil {
			return err
		}
		if !playerInEvent(event.Players, player) {
			return ErrUnknownPlayer
		}
	}

	return s.classicService.SetMatchplayWinner(ctx, roundID, player)
}

// SetGirWinner manually awards the GIR overall bonus; empty clears it.
func (s *AdminService) SetGirWinner(ctx context.Context, editorToken, eventID, player string) error {
	if err := s.authorizeEventWrite(ctx, editorToken, eventID, player); err != nil {
		return err
	}
	return s.classicService.SetGirOverallWinner(ctx, eventID, player)
}

// SetHandicapDropWinner manually awards the handicap-drop bonus; empty
// clears it.
func (s *AdminService) SetHandicapDropWinner(ctx context.Context, editorToken, eventID, player string) error {
	if err := s.authorizeEventWrite(ctx, editorToken, eventID, player); err != nil {
		return err
	}
	return s.classicService.SetHandicapDropWinner(ctx, eventID, player)
}

// SetStartingHandicap records a player's handicap at the start of the trip,
// the baseline for the handicap-drop side bet.
func (s *AdminService) SetStartingHandicap(ctx context.Context, editorToken, eventID, player string, handicap float64) error {
	if player == "" {
		return ErrUnknownPlayer
	}
	if err := s.authorizeEventWrite(ctx, editorToken, eventID, player); err != nil {
		return err
	}
	if handicap < 0 {
		handicap = 0
	}
	return s.classicService.SetStartingHandicap(ctx, eventID, player, handicap)
}

// UpdateCourseHoles writes the par, stroke index and yardage for a course
// once the scorer has the card in hand. Course documents carry no event id,
// so the write is scoped through the event's rounds: only a course some
// round of the token's event plays on may be edited.
func (s *AdminService) UpdateCourseHoles(ctx context.Context, editorToken, courseID string, holes []classic.Hole) error {
	eventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return err
	}

	rounds, err := s.classicService.ListRounds(ctx, eventID)
	if err != nil {
		return err
	}
	if !courseInRounds(rounds, courseID) {
		return ErrNotEditor
	}

	return s.classicService.UpdateCourseHoles(ctx, courseID, holes)
}

// Seed recreates the event, courses and rounds. Gated on Firebase auth by
// the route group rather than the editor lock, since seeding also resets the
// lock document itself.
func (s *AdminService) Seed(ctx context.Context, players []string) error {
	return s.classicService.Seed(ctx, players)
}

func (s *AdminService) sendSubmissionMail(round classic.Round) {
	ctx := context.Background()

	entries, err := s.boardService.Standings(ctx, round.EventID)
	if err != nil {
		log.Printf("Could not compute standings for submission mail: %v\n", err)
		return
	}
	if err := s.notifyService.SendRoundSubmitted(ctx, round, entries); err != nil {
		log.Printf("Submission mail failed: %v\n", err)
	}
}

// requireEditor validates the session token against the access document and
// returns the event it is scoped to.
func (s *AdminService) requireEditor(ctx context.Context, editorToken string) (string, error) {
	eventID, sessionID, err := editorlock.DecodeToken(editorToken)
	if err != nil {
		return "", ErrNotEditor
	}

	access, err := s.classicService.GetEditorAccess(ctx, eventID)
	if err != nil {
		return "", err
	}
	if access.CurrentEditorUID == "" || access.CurrentEditorUID != sessionID {
		return "", ErrNotEditor
	}
	return eventID, nil
}

func (s *AdminService) authorizeRoundWrite(ctx context.Context, editorToken, roundID string) (*classic.Round, error) {
	eventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return nil, err
	}

	round, err := s.classicService.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.EventID != eventID {
		return nil, ErrNotEditor
	}
	return round, nil
}

func (s *AdminService) authorizeEventWrite(ctx context.Context, editorToken, eventID, player string) error {
	tokenEventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return err
	}
	if tokenEventID != eventID {
		return ErrNotEditor
	}

	if player == "" {
		return nil
	}
	event, err := s.classicService.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !playerInEvent(event.Players, player) {
		return ErrUnknownPlayer
	}
	return nil
}

func courseInRounds(rounds []classic.Round, courseID string) bool {
	for _, round := range rounds {
		if round.CourseID == courseID {
			return true
		}
	}
	return false
}

func playerInEvent(players []string, player string) bool {
	for _, p := range players {
		if p == player {
			return true
		}
	}
	return false
}
