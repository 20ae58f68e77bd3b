package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/logger"
	"github.com/abhisek/aperture/internal/progress"
)

const storageNotice = "Your progress could not be saved. It will be kept until you quit."

// Evaluator grades a photo for a lesson. *evaluation.Client implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, photo string, lc evaluation.LessonContext) (*evaluation.Result, error)
}

// identifiedEvaluator is implemented by evaluators that accept the ticket's
// request id for log correlation.
type identifiedEvaluator interface {
	EvaluateWithID(ctx context.Context, requestID, photo string, lc evaluation.LessonContext) (*evaluation.Result, error)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. Default: no-op.
func WithLogger(log *logger.Logger) Option {
	return func(m *Machine) { m.log = log }
}

// WithStartLesson starts the session on the given lesson instead of the
// first one. Unknown ids are ignored.
func WithStartLesson(id string) Option {
	return func(m *Machine) {
		if m.catalog.Contains(id) {
			m.lessonID = id
		}
	}
}

// Machine is the lesson session state machine. It is owned by a single
// goroutine; only Evaluate may run elsewhere.
type Machine struct {
	catalog   *catalog.Catalog
	store     *progress.Store
	evaluator Evaluator
	log       *logger.Logger

	lessonID   string
	phase      Phase
	feedback   *evaluation.Result
	inFlight   bool
	notice     string
	generation uint64
}

// New creates a Machine positioned on the first lesson in the Learn phase.
// The store should already be loaded.
func New(cat *catalog.Catalog, store *progress.Store, evaluator Evaluator, opts ...Option) *Machine {
	m := &Machine{
		catalog:   cat,
		store:     store,
		evaluator: evaluator,
		log:       logger.Nop(),
		lessonID:  cat.First().ID,
		phase:     PhaseLearn,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	return m
}

// SelectLesson jumps to a lesson from any phase. An outstanding evaluation
// keeps running but its outcome will be discarded.
func (m *Machine) SelectLesson(id string) error {
	if !m.catalog.Contains(id) {
		return fmt.Errorf("%w: %q", ErrUnknownLesson, id)
	}
	if m.inFlight {
		m.log.Debug("abandoning in-flight evaluation", "lesson", m.lessonID, "generation", m.generation)
	}
	m.generation++
	m.lessonID = id
	m.enter(PhaseLearn)
	m.inFlight = false
	return nil
}

// Ready moves from Learn to Shoot.
func (m *Machine) Ready() error {
	if m.phase != PhaseLearn {
		return m.invalid("ready")
	}
	m.enter(PhaseShoot)
	return nil
}

// Back moves from Shoot to Learn.
func (m *Machine) Back() error {
	if m.phase != PhaseShoot {
		return m.invalid("back")
	}
	m.enter(PhaseLearn)
	return nil
}

// Submit validates photo and moves to Feedback with an evaluation in
// flight. The caller runs the returned ticket through Evaluate and hands
// the Outcome to Resolve. A malformed photo fails with an
// *evaluation.Error of kind InvalidInput and leaves the phase at Shoot.
func (m *Machine) Submit(photo string) (*Ticket, error) {
	if m.inFlight {
		return nil, ErrEvaluationInFlight
	}
	if m.phase != PhaseShoot {
		return nil, m.invalid("submit")
	}
	if _, err := evaluation.ParsePhoto(photo); err != nil {
		m.notice = evaluation.UserMessage(err)
		m.log.Warn("photo rejected", "lesson", m.lessonID, "error", err)
		return nil, err
	}

	lesson := m.Lesson()
	m.enter(PhaseFeedback)
	m.inFlight = true

	t := &Ticket{
		Generation: m.generation,
		LessonID:   m.lessonID,
		RequestID:  uuid.NewString(),
		Photo:      photo,
		Lesson:     evaluation.ContextFor(lesson),
	}
	m.log.Debug("evaluation submitted", "lesson", t.LessonID, "request_id", t.RequestID, "generation", t.Generation)
	return t, nil
}

// Evaluate performs the single evaluator call for t. It reads no machine
// state and is safe to call from another goroutine.
func (m *Machine) Evaluate(ctx context.Context, t *Ticket) Outcome {
	var (
		res *evaluation.Result
		err error
	)
	if ev, ok := m.evaluator.(identifiedEvaluator); ok {
		res, err = ev.EvaluateWithID(ctx, t.RequestID, t.Photo, t.Lesson)
	} else {
		res, err = m.evaluator.Evaluate(ctx, t.Photo, t.Lesson)
	}
	return Outcome{Ticket: t, Result: res, Err: err}
}

// Resolve applies an evaluation outcome. It returns false when the outcome
// is stale (the learner navigated away or reset) and nothing changed.
func (m *Machine) Resolve(o Outcome) bool {
	t := o.Ticket
	if t == nil || !m.inFlight || t.Generation != m.generation || t.LessonID != m.lessonID {
		m.log.Debug("discarding stale evaluation outcome", "ticket", ticketID(t), "generation", m.generation)
		return false
	}
	m.inFlight = false

	if o.Err != nil || o.Result == nil {
		err := o.Err
		if err == nil {
			err = errors.New("evaluator returned no result")
		}
		m.enter(PhaseShoot)
		m.notice = evaluation.UserMessage(err)
		m.log.Info("evaluation failed, back to shoot", "lesson", t.LessonID, "kind", evaluation.KindOf(err))
		return true
	}

	m.feedback = o.Result
	if o.Result.Pass {
		err := m.store.RecordCompletion(context.Background(), t.LessonID, o.Result.Rating)
		if err != nil {
			m.log.Error("progress not persisted", "lesson", t.LessonID, "error", err)
			m.notice = storageNotice
		}
	}
	return true
}

// Continue advances to the next lesson after a pass.
func (m *Machine) Continue() error {
	if m.phase != PhaseFeedback || m.feedback == nil || !m.feedback.Pass {
		return m.invalid("continue")
	}
	next, ok := m.catalog.Next(m.lessonID)
	if !ok {
		return ErrNoNextLesson
	}
	m.lessonID = next.ID
	m.enter(PhaseLearn)
	return nil
}

// Retry returns to Shoot after a failed grade.
func (m *Machine) Retry() error {
	if m.phase != PhaseFeedback || m.feedback == nil || m.feedback.Pass {
		return m.invalid("retry")
	}
	m.enter(PhaseShoot)
	return nil
}

// Reset clears all progress and restarts the course. Only allowed once
// every lesson is completed.
func (m *Machine) Reset() error {
	if !m.Celebrating() {
		return ErrCourseIncomplete
	}
	m.generation++
	m.inFlight = false
	m.lessonID = m.catalog.First().ID
	m.enter(PhaseLearn)
	if err := m.store.Reset(context.Background()); err != nil {
		m.log.Error("progress reset not persisted", "error", err)
		m.notice = storageNotice
	}
	return nil
}

// Celebrating reports whether every catalog lesson is completed.
func (m *Machine) Celebrating() bool {
	return m.store.Snapshot().AllCompleted(m.catalog.IDs())
}

// CompletedCount is the number of catalog lessons completed.
func (m *Machine) CompletedCount() int {
	return m.store.Snapshot().CompletedAmong(m.catalog.IDs())
}

// State returns a snapshot of the session.
func (m *Machine) State() State {
	return State{
		LessonID:    m.lessonID,
		Phase:       m.phase,
		Feedback:    m.feedback,
		InFlight:    m.inFlight,
		Notice:      m.notice,
		Celebrating: m.Celebrating(),
	}
}

// Lesson returns the current lesson.
func (m *Machine) Lesson() catalog.Lesson {
	l, _ := m.catalog.Get(m.lessonID)
	return l
}

// Catalog returns the lesson catalog the machine walks.
func (m *Machine) Catalog() *catalog.Catalog {
	return m.catalog
}

// Progress returns a copy of the progress map.
func (m *Machine) Progress() progress.Map {
	return m.store.Snapshot()
}

// ClearNotice dismisses the current notice.
func (m *Machine) ClearNotice() {
	m.notice = ""
}

// enter switches phase. Feedback never survives a phase change, and
// neither does a notice unless the caller sets a new one afterwards.
func (m *Machine) enter(p Phase) {
	m.phase = p
	m.feedback = nil
	m.notice = ""
}

func (m *Machine) invalid(action string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, m.phase)
}

func ticketID(t *Ticket) string {
	if t == nil {
		return ""
	}
	return t.RequestID
}
