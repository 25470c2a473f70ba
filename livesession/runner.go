package livesession

import (
	"context"
	"errors"

	"tourbase/models"
)

var (
	ErrAtStart = errors.New("already at the first section")
	ErrAtEnd   = errors.New("already at the last section")
)

// Submitter flushes one section's response map in bulk.
type Submitter interface {
	SubmitSection(ctx context.Context, sessionID, sectionID string, responses map[string]any) error
}

// Step is one stop in the flattened (fase, section) walk of a session.
type Step struct {
	Fase    string
	Section models.Section
}

// Runner walks a live session linearly. Visitor input accumulates in memory
// per section; moving to the previous or next section first flushes the
// entire current section's map in one call, then advances the pointer, so a
// navigation can never lose a response. Only closing the tab can.
type Runner struct {
	session   *models.LiveSession
	submitter Submitter
	steps     []Step
	pos       int
	pending   map[string]map[string]any
}

func NewRunner(session *models.LiveSession, submitter Submitter) *Runner {
	var steps []Step
	for _, fase := range models.FaseOrder {
		for _, section := range session.Fases[fase] {
			steps = append(steps, Step{Fase: fase, Section: section})
		}
	}
	return &Runner{
		session:   session,
		submitter: submitter,
		steps:     steps,
		pending:   map[string]map[string]any{},
	}
}

// Empty reports whether the session snapshot holds no sections at all.
func (r *Runner) Empty() bool { return len(r.steps) == 0 }

// Current returns the step under the pointer, or a zero Step for an empty
// session.
func (r *Runner) Current() Step {
	if r.Empty() {
		return Step{}
	}
	return r.steps[r.pos]
}

func (r *Runner) HasPrev() bool { return r.pos > 0 }
func (r *Runner) HasNext() bool { return r.pos < len(r.steps)-1 }

// SetResponse records a visitor answer for a component of the current
// section. Memory only; flushed on navigation.
func (r *Runner) SetResponse(componentID string, value any) {
	if r.Empty() {
		return
	}
	sectionID := r.Current().Section.SectionID
	if r.pending[sectionID] == nil {
		r.pending[sectionID] = map[string]any{}
	}
	r.pending[sectionID][componentID] = value
}

// Responses returns the in-memory map of the current section.
func (r *Runner) Responses() map[string]any {
	return r.pending[r.Current().Section.SectionID]
}

// Next flushes the current section, then advances.
func (r *Runner) Next(ctx context.Context) error {
	if !r.HasNext() {
		return ErrAtEnd
	}
	if err := r.flushCurrent(ctx); err != nil {
		return err
	}
	r.pos++
	return nil
}

// Prev flushes the current section, then steps back.
func (r *Runner) Prev(ctx context.Context) error {
	if !r.HasPrev() {
		return ErrAtStart
	}
	if err := r.flushCurrent(ctx); err != nil {
		return err
	}
	r.pos--
	return nil
}

// Finish flushes the current section without moving; used on the last page.
func (r *Runner) Finish(ctx context.Context) error {
	return r.flushCurrent(ctx)
}

func (r *Runner) flushCurrent(ctx context.Context) error {
	if r.Empty() {
		return nil
	}
	sectionID := r.Current().Section.SectionID
	responses := r.pending[sectionID]
	if len(responses) == 0 {
		return nil
	}
	if err := r.submitter.SubmitSection(ctx, r.session.SessionID, sectionID, responses); err != nil {
		return err
	}
	delete(r.pending, sectionID)
	return nil
}
