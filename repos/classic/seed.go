package classic

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
)

// EventID is the single tournament instance this deployment serves.
const EventID = "october-classic-2025"

func blankHoles(count int) []Hole {
	holes := make([]Hole, count)
	for i := range holes {
		holes[i] = Hole{Number: i + 1}
	}
	return holes
}

// Par, stroke index and yardage are entered by the scorer once the card for
// each course is in hand, so seeding only lays down hole numbers.
var coursesData = []Course{
	{
		ID:       "ballyliffin-old",
		Name:     "Ballyliffin Old",
		Location: "Ballyliffin, Co. Donegal",
		Holes:    blankHoles(18),
	},
	{
		ID:       "ballyliffin-glashedy",
		Name:     "Ballyliffin Glashedy",
		Location: "Ballyliffin, Co. Donegal",
		Holes:    blankHoles(18),
	},
	{
		ID:       "portsalon",
		Name:     "Portsalon Golf Club",
		Location: "Portsalon, Co. Donegal",
		Holes:    blankHoles(18),
	},
	{
		ID:       "dunfanaghy",
		Name:     "Dunfanaghy Golf Club",
		Location: "Dunfanaghy, Co. Donegal",
		Holes:    blankHoles(18),
	},
	{
		ID:       "cruit-island",
		Name:     "Cruit Island Golf Club",
		Location: "Cruit Island, Co. Donegal",
		Holes:    blankHoles(9),
	},
	{
		ID:       "narin-portnoo",
		Name:     "Narin & Portnoo Golf Club",
		Location: "Narin, Co. Donegal",
		Holes:    blankHoles(18),
	},
	{
		ID:       "galway",
		Name:     "Galway Golf Club (Salthill)",
		Location: "Galway",
		Holes:    blankHoles(18),
	},
	{
		ID:       "mount-juliet",
		Name:     "Mount Juliet Golf Club",
		Location: "Thomastown, Co. Kilkenny",
		Holes:    blankHoles(18),
	},
}

var roundsData = []Round{
	{CourseID: "ballyliffin-old", Sequence: 1, Label: "D1 AM", Date: "2025-10-06", Format: FormatStrokeplay},
	{CourseID: "ballyliffin-glashedy", Sequence: 2, Label: "D1 PM", Date: "2025-10-06", Format: FormatStrokeplay},
	{CourseID: "portsalon", Sequence: 3, Label: "D2 AM", Date: "2025-10-07", Format: FormatStableford},
	{CourseID: "dunfanaghy", Sequence: 4, Label: "D2 PM", Date: "2025-10-07", Format: FormatStableford},
	{CourseID: "cruit-island", Sequence: 5, Label: "D3 AM", Date: "2025-10-08", Format: FormatStrokeplay},
	{CourseID: "narin-portnoo", Sequence: 6, Label: "D3 PM", Date: "2025-10-08", Format: FormatStrokeplay},
	{CourseID: "galway", Sequence: 7, Label: "D4", Date: "2025-10-09", Format: FormatMatchplay},
	{CourseID: "mount-juliet", Sequence: 8, Label: "D5", Date: "2025-10-10", Format: FormatStrokeplay},
}

// Seed writes the event, the editor-lock control document, the courses and
// the rounds. Scores are created lazily on first edit. Reseeding replaces the
// event and course documents wholesale but leaves existing rounds in place so
// already-entered cards keep their round ids.
func (s Service) Seed(ctx context.Context, players []string) error {
	eventRef := s.Client.Collection("events").Doc(EventID)
	_, err := eventRef.Set(ctx, map[string]interface{}{
		"name":               "The October Classic 2025",
		"year":               2025,
		"players":            players,
		"girOverallWinner":   "",
		"handicapDropWinner": "",
		"createdAt":          firestore.ServerTimestamp,
	})
	if err != nil {
		log.Printf("Failed to seed event: %v\n", err)
		return err
	}

	accessRef := eventRef.Collection("controls").Doc("access")
	if _, err := accessRef.Set(ctx, map[string]interface{}{
		"currentEditorUid": "",
		"updatedAt":        firestore.ServerTimestamp,
	}); err != nil {
		log.Printf("Failed to seed editor access: %v\n", err)
		return err
	}

	for _, course := range coursesData {
		if _, err := s.Client.Collection("courses").Doc(course.ID).Set(ctx, course); err != nil {
			log.Printf("Failed to seed course %s: %v\n", course.ID, err)
			return err
		}
	}

	for _, round := range roundsData {
		round.EventID = EventID

		existing := s.Client.Collection("rounds").
			Where("eventId", "==", EventID).
			Where("sequence", "==", round.Sequence).
			Limit(1).
			Documents(ctx)
		docs, err := existing.GetAll()
		if err != nil {
			log.Printf("Failed to look up round %d: %v\n", round.Sequence, err)
			return err
		}

		if len(docs) > 0 {
			continue
		}

		if _, _, err := s.Client.Collection("rounds").Add(ctx, round); err != nil {
			log.Printf("Failed to seed round %d: %v\n", round.Sequence, err)
			return err
		}
	}

	log.Println("Seed complete")
	return nil
}
