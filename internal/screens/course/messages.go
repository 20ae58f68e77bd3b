package course

import (
	"time"

	"github.com/abhisek/aperture/internal/session"
)

// evaluationDoneMsg carries the outcome of an evaluation run off the
// update loop. It may arrive after the learner has moved on.
type evaluationDoneMsg struct {
	Outcome session.Outcome
}

// spinnerTickMsg animates the "analyzing" indicator while an evaluation
// is in flight.
type spinnerTickMsg time.Time

// restartMsg asks the screen to reset the completed course.
type restartMsg struct{}

// dismissCelebrationMsg hides the course-complete overlay.
type dismissCelebrationMsg struct{}
