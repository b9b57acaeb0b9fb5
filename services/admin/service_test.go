package admin

import (
	"testing"

	classic "github.com/october-classic/classic-live/repos/classic"
)

func TestCourseInRounds(t *testing.T) {
	rounds := []classic.Round{
		{ID: "r1", EventID: "e1", CourseID: "narin-portnoo"},
		{ID: "r2", EventID: "e1", CourseID: "mount-juliet"},
	}

	if !courseInRounds(rounds, "mount-juliet") {
		t.Errorf("course played by a round of the event should be editable")
	}
	// A real course id from a different trip must not pass the scope check.
	if courseInRounds(rounds, "cruit-island") {
		t.Errorf("course outside the event's rounds should be rejected")
	}
	if courseInRounds(nil, "narin-portnoo") {
		t.Errorf("no rounds means no editable courses")
	}
}
