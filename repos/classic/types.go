package classic

import "time"

type RoundFormat string

const (
	FormatStrokeplay RoundFormat = "Strokeplay"
	FormatStableford RoundFormat = "Stableford"
	FormatMatchplay  RoundFormat = "Matchplay"
)

type Hole struct {
	Number      int `firestore:"number" json:"number"`
	Par         int `firestore:"par" json:"par"`
	StrokeIndex int `firestore:"strokeIndex" json:"strokeIndex"`
	Yardage     int `firestore:"yardage" json:"yardage"`
}

type Course struct {
	ID       string `firestore:"-" json:"id"`
	Name     string `firestore:"name" json:"name"`
	Location string `firestore:"location" json:"location"`
	Holes    []Hole `firestore:"holes" json:"holes"`
}

type Event struct {
	ID                 string             `firestore:"-" json:"id"`
	Name               string             `firestore:"name" json:"name"`
	Year               int                `firestore:"year" json:"year"`
	Players            []string           `firestore:"players" json:"players"`
	StartingHandicaps  map[string]float64 `firestore:"startingHandicaps" json:"startingHandicaps"`
	GirOverallWinner   string             `firestore:"girOverallWinner" json:"girOverallWinner"`
	HandicapDropWinner string             `firestore:"handicapDropWinner" json:"handicapDropWinner"`
	CreatedAt          time.Time          `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

type Round struct {
	ID              string      `firestore:"-" json:"id"`
	EventID         string      `firestore:"eventId" json:"eventId"`
	CourseID        string      `firestore:"courseId" json:"courseId"`
	Sequence        int         `firestore:"sequence" json:"sequence"`
	Label           string      `firestore:"label" json:"label"`
	Date            string      `firestore:"date" json:"date"`
	Format          RoundFormat `firestore:"format" json:"format"`
	LdHoles         []int       `firestore:"ldHoles" json:"ldHoles"`
	CttpHoles       []int       `firestore:"cttpHoles" json:"cttpHoles"`
	MatchplayWinner string      `firestore:"matchplayWinner" json:"matchplayWinner"`
	Submitted       bool        `firestore:"submitted" json:"submitted"`

	// Joined from the courses collection on read. Nil until the course
	// document has loaded; consumers must treat a nil course as "no holes".
	Course *Course `firestore:"-" json:"course,omitempty"`
}

// HoleScore is sparse: fields stay nil until the scorer enters them.
type HoleScore struct {
	Strokes *int  `firestore:"strokes" json:"strokes,omitempty"`
	Points  *int  `firestore:"points" json:"points,omitempty"`
	Gir     *bool `firestore:"gir" json:"gir,omitempty"`
}

// Score is one player's card for one round. Birdies and eagles are a
// recompute-on-write cache over the hole map; the leaderboard re-derives
// them from the holes and never trusts the stored values.
type Score struct {
	ID         string               `firestore:"-" json:"id"`
	RoundID    string               `firestore:"roundId" json:"roundId"`
	Player     string               `firestore:"player" json:"player"`
	Handicap   float64              `firestore:"handicap" json:"handicap"`
	Holes      map[string]HoleScore `firestore:"holes" json:"holes"`
	Birdies    int                  `firestore:"birdies" json:"birdies"`
	Eagles     int                  `firestore:"eagles" json:"eagles"`
	LdPoints   int                  `firestore:"ldPoints" json:"ldPoints"`
	CttpPoints int                  `firestore:"cttpPoints" json:"cttpPoints"`
	UpdatedAt  time.Time            `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// NewsEntry is one post on the event's news feed. CreatedAt is set once on
// publish and survives later edits; UpdatedAt moves on every write.
type NewsEntry struct {
	ID        string    `firestore:"-" json:"id"`
	EventID   string    `firestore:"eventId" json:"eventId"`
	Title     string    `firestore:"title" json:"title"`
	Body      string    `firestore:"body" json:"body"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// EditorAccess lives at events/{id}/controls/access and holds the
// single-writer lock: whoever's session id is in CurrentEditorUID may write.
type EditorAccess struct {
	CurrentEditorUID string    `firestore:"currentEditorUid" json:"currentEditorUid"`
	UpdatedAt        time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// ScoreID is the deterministic document id for a (round, player) pair.
func ScoreID(roundID, player string) string {
	return roundID + "_" + player
}
