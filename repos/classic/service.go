package classic

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service is the Firestore repository for the tournament documents.
type Service struct {
	Client *firestore.Client
}

// NewService creates a new empty service.
func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func (s Service) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	doc, err := s.Client.Collection("events").Doc(eventID).Get(ctx)
	if err != nil {
		log.Printf("Failed to get event from Firestore: %v\n", err)
		return nil, err
	}

	var event Event
	if err := doc.DataTo(&event); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal event struct failed: %w",
			doc,
			err,
		)
	}
	event.ID = doc.Ref.ID

	return &event, nil
}

func (s Service) SetGirOverallWinner(ctx context.Context, eventID, player string) error {
	_, err := s.Client.Collection("events").Doc(eventID).Set(ctx, map[string]interface{}{
		"girOverallWinner": player,
	}, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to set GIR overall winner: %v\n", err)
	}
	return err
}

func (s Service) SetHandicapDropWinner(ctx context.Context, eventID, player string) error {
	_, err := s.Client.Collection("events").Doc(eventID).Set(ctx, map[string]interface{}{
		"handicapDropWinner": player,
	}, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to set handicap drop winner: %v\n", err)
	}
	return err
}

func (s Service) SetStartingHandicap(ctx context.Context, eventID, player string, handicap float64) error {
	_, err := s.Client.Collection("events").Doc(eventID).Set(ctx, map[string]interface{}{
		"startingHandicaps": map[string]interface{}{
			player: handicap,
		},
	}, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to set starting handicap: %v\n", err)
	}
	return err
}

func (s Service) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	doc, err := s.Client.Collection("courses").Doc(courseID).Get(ctx)
	if err != nil {
		return nil, err
	}

	var course Course
	if err := doc.DataTo(&course); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal course struct failed: %w",
			doc,
			err,
		)
	}
	course.ID = doc.Ref.ID

	return &course, nil
}

func (s Service) UpdateCourseHoles(ctx context.Context, courseID string, holes []Hole) error {
	_, err := s.Client.Collection("courses").Doc(courseID).Update(ctx, []firestore.Update{
		{
			Path:  "holes",
			Value: holes,
		},
	})
	if err != nil {
		log.Printf("Failed to update course holes: %v\n", err)
	}
	return err
}

// ListRounds returns the event's rounds in sequence order with their course
// documents joined. A round whose course is not loadable keeps a nil Course;
// the aggregator treats that as "no holes" rather than failing the read.
func (s Service) ListRounds(ctx context.Context, eventID string) ([]Round, error) {
	iter := s.Client.Collection("rounds").
		Where("eventId", "==", eventID).
		OrderBy("sequence", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var rounds []Round
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get round document: %v\n", err)
			return nil, err
		}

		round, err := docToRound(doc)
		if err != nil {
			return nil, err
		}

		s.joinCourse(ctx, round)
		rounds = append(rounds, *round)
	}

	return rounds, nil
}

func (s Service) GetRound(ctx context.Context, roundID string) (*Round, error) {
	doc, err := s.Client.Collection("rounds").Doc(roundID).Get(ctx)
	if err != nil {
		log.Printf("Failed to get round from Firestore: %v\n", err)
		return nil, err
	}

	round, err := docToRound(doc)
	if err != nil {
		return nil, err
	}

	s.joinCourse(ctx, round)
	return round, nil
}

func (s Service) joinCourse(ctx context.Context, round *Round) {
	if round.CourseID == "" {
		return
	}
	course, err := s.GetCourse(ctx, round.CourseID)
	if err != nil {
		// Course data may arrive later; the round still renders without it.
		log.Printf("Failed to join course %s for round %s: %v\n", round.CourseID, round.ID, err)
		return
	}
	round.Course = course
}

func (s Service) SetRoundSubmitted(ctx context.Context, roundID string, submitted bool) error {
	_, err := s.Client.Collection("rounds").Doc(roundID).Update(ctx, []firestore.Update{
		{
			Path:  "submitted",
			Value: submitted,
		},
	})
	if err != nil {
		log.Printf("Failed to update round submitted flag: %v\n", err)
	}
	return err
}

func (s Service) SetMatchplayWinner(ctx context.Context, roundID, player string) error {
	_, err := s.Client.Collection("rounds").Doc(roundID).Update(ctx, []firestore.Update{
		{
			Path:  "matchplayWinner",
			Value: player,
		},
	})
	if err != nil {
		log.Printf("Failed to update matchplay winner: %v\n", err)
	}
	return err
}

// GetScore returns nil without error when no score document exists yet:
// score documents are created lazily on the first edit.
func (s Service) GetScore(ctx context.Context, roundID, player string) (*Score, error) {
	doc, err := s.Client.Collection("scores").Doc(ScoreID(roundID, player)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		log.Printf("Failed to get score from Firestore: %v\n", err)
		return nil, err
	}

	return docToScore(doc)
}

// PutScore writes the full score document. Whole-document writes keep the
// single-writer model simple: the last write wins and the next read
// recomputes from whatever landed.
func (s Service) PutScore(ctx context.Context, score Score) error {
	_, err := s.Client.Collection("scores").Doc(ScoreID(score.RoundID, score.Player)).Set(ctx, score)
	if err != nil {
		log.Printf("Failed to write score to Firestore: %v\n", err)
	}
	return err
}

func (s Service) ListRoundScores(ctx context.Context, roundID string) ([]Score, error) {
	iter := s.Client.Collection("scores").
		Where("roundId", "==", roundID).
		Documents(ctx)
	defer iter.Stop()

	var scores []Score
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get score document: %v\n", err)
			return nil, err
		}

		score, err := docToScore(doc)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *score)
	}

	return scores, nil
}

func (s Service) ListEventScores(ctx context.Context, roundIDs []string) ([]Score, error) {
	var all []Score
	for _, roundID := range roundIDs {
		scores, err := s.ListRoundScores(ctx, roundID)
		if err != nil {
			return nil, err
		}
		all = append(all, scores...)
	}
	return all, nil
}

func (s Service) GetEditorAccess(ctx context.Context, eventID string) (*EditorAccess, error) {
	doc, err := s.Client.Collection("events").Doc(eventID).Collection("controls").Doc("access").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &EditorAccess{}, nil
		}
		log.Printf("Failed to get editor access from Firestore: %v\n", err)
		return nil, err
	}

	var access EditorAccess
	if err := doc.DataTo(&access); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal access struct failed: %w",
			doc,
			err,
		)
	}
	return &access, nil
}

// ClaimEditor takes the editor lock for the given session id. The write runs
// in a transaction so a racing claim is serialized; the later claim wins and
// the earlier editor loses write access on their next check.
func (s Service) ClaimEditor(ctx context.Context, eventID, sessionID string) error {
	docRef := s.Client.Collection("events").Doc(eventID).Collection("controls").Doc("access")

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return tx.Set(docRef, map[string]interface{}{
			"currentEditorUid": sessionID,
			"updatedAt":        firestore.ServerTimestamp,
		})
	})
	if err != nil {
		log.Printf("Failed to claim editor lock: %v\n", err)
	}
	return err
}

func (s Service) ReleaseEditor(ctx context.Context, eventID string) error {
	docRef := s.Client.Collection("events").Doc(eventID).Collection("controls").Doc("access")

	_, err := docRef.Set(ctx, map[string]interface{}{
		"currentEditorUid": "",
		"updatedAt":        firestore.ServerTimestamp,
	})
	if err != nil {
		log.Printf("Failed to release editor lock: %v\n", err)
	}
	return err
}

func docToRound(doc *firestore.DocumentSnapshot) (*Round, error) {
	var round Round
	if err := doc.DataTo(&round); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal round struct failed: %w",
			doc,
			err,
		)
	}
	round.ID = doc.Ref.ID
	return &round, nil
}

func docToScore(doc *firestore.DocumentSnapshot) (*Score, error) {
	var score Score
	if err := doc.DataTo(&score); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal score struct failed: %w",
			doc,
			err,
		)
	}
	score.ID = doc.Ref.ID
	return &score, nil
}
