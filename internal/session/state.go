package session

import (
	"errors"

	"github.com/abhisek/aperture/internal/evaluation"
)

// Phase is the step of the current lesson the learner is on.
type Phase int

const (
	PhaseLearn    Phase = iota // Reading theory and tips
	PhaseShoot                 // Choosing a photo to submit
	PhaseFeedback              // Waiting for, or reading, the evaluation
)

func (p Phase) String() string {
	switch p {
	case PhaseLearn:
		return "learn"
	case PhaseShoot:
		return "shoot"
	case PhaseFeedback:
		return "feedback"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownLesson      = errors.New("unknown lesson")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrEvaluationInFlight = errors.New("an evaluation is already in flight")
	ErrNoNextLesson       = errors.New("no next lesson")
	ErrCourseIncomplete   = errors.New("course is not complete")
)

// State is a read-only view of the session for the rendering layer.
type State struct {
	LessonID string
	Phase    Phase

	// Feedback is the last evaluation result for the current lesson, or nil.
	Feedback *evaluation.Result

	// InFlight is true while an evaluation for this lesson is outstanding.
	InFlight bool

	// Notice is a transient message for the learner (evaluation failure,
	// storage trouble). Cleared by ClearNotice or the next transition.
	Notice string

	// Celebrating is true when every lesson is completed. It overlays the
	// phase without changing it.
	Celebrating bool
}

// Ticket identifies one submitted evaluation. Resolve applies an Outcome
// only while its ticket is still current.
type Ticket struct {
	Generation uint64
	LessonID   string
	RequestID  string
	Photo      string
	Lesson     evaluation.LessonContext
}

// Outcome is the result of running a Ticket through the evaluator.
type Outcome struct {
	Ticket *Ticket
	Result *evaluation.Result
	Err    error
}
