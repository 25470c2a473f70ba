package livesession

import (
	"context"
	"errors"
	"testing"

	"tourbase/models"
)

type recordedSubmit struct {
	sessionID string
	sectionID string
	responses map[string]any
}

type fakeSubmitter struct {
	submits []recordedSubmit
	fail    error
}

func (f *fakeSubmitter) SubmitSection(_ context.Context, sessionID, sectionID string, responses map[string]any) error {
	if f.fail != nil {
		return f.fail
	}
	copied := make(map[string]any, len(responses))
	for k, v := range responses {
		copied[k] = v
	}
	f.submits = append(f.submits, recordedSubmit{sessionID, sectionID, copied})
	return nil
}

func runnerSession() *models.LiveSession {
	return &models.LiveSession{
		SessionID: "s1",
		Active:    true,
		Fases: map[string][]models.Section{
			models.FaseBefore: {{SectionID: "sec1", Title: "Praktisch"}},
			models.FaseDuring: {
				{SectionID: "sec2", Title: "Zaal 1"},
				{SectionID: "sec3", Title: "Zaal 2"},
			},
		},
		Responses: map[string]map[string]any{},
	}
}

func TestRunnerEmptySession(t *testing.T) {
	submitter := &fakeSubmitter{}
	r := NewRunner(&models.LiveSession{
		SessionID: "s1",
		Active:    true,
		Fases:     map[string][]models.Section{},
		Responses: map[string]map[string]any{},
	}, submitter)
	ctx := context.Background()

	if !r.Empty() {
		t.Fatal("a session with no sections should report empty")
	}
	if step := r.Current(); step.Fase != "" || step.Section.SectionID != "" {
		t.Errorf("empty session should yield a zero step, got %+v", step)
	}
	if r.HasPrev() || r.HasNext() {
		t.Error("empty session has nowhere to navigate")
	}

	// None of these may panic or reach the submitter.
	r.SetResponse("c1", "verloren")
	if err := r.Finish(ctx); err != nil {
		t.Fatal(err)
	}
	if len(submitter.submits) != 0 {
		t.Errorf("empty session submitted %d times", len(submitter.submits))
	}
}

func TestRunnerWalksFasesInOrder(t *testing.T) {
	r := NewRunner(runnerSession(), &fakeSubmitter{})
	ctx := context.Background()

	want := []string{"sec1", "sec2", "sec3"}
	for i, sectionID := range want {
		if got := r.Current().Section.SectionID; got != sectionID {
			t.Fatalf("step %d: at %s, want %s", i, got, sectionID)
		}
		if r.HasNext() {
			if err := r.Next(ctx); err != nil {
				t.Fatal(err)
			}
		}
	}
	if r.HasNext() {
		t.Error("should be at the last section")
	}
	if err := r.Next(ctx); !errors.Is(err, ErrAtEnd) {
		t.Errorf("err = %v, want ErrAtEnd", err)
	}
}

func TestRunnerFlushesSectionInBulkOnNavigation(t *testing.T) {
	submitter := &fakeSubmitter{}
	r := NewRunner(runnerSession(), submitter)
	ctx := context.Background()

	r.SetResponse("c1", "Jan")
	r.SetResponse("c2", "Optie 2")
	if len(submitter.submits) != 0 {
		t.Fatal("responses must stay in memory until navigation")
	}

	if err := r.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if len(submitter.submits) != 1 {
		t.Fatalf("expected 1 bulk submit, got %d", len(submitter.submits))
	}
	submit := submitter.submits[0]
	if submit.sessionID != "s1" || submit.sectionID != "sec1" {
		t.Errorf("submit went to %s/%s", submit.sessionID, submit.sectionID)
	}
	if submit.responses["c1"] != "Jan" || submit.responses["c2"] != "Optie 2" {
		t.Errorf("responses = %v", submit.responses)
	}
	if got := r.Current().Section.SectionID; got != "sec2" {
		t.Errorf("pointer should advance after the flush, at %s", got)
	}
}

func TestRunnerSkipsEmptySections(t *testing.T) {
	submitter := &fakeSubmitter{}
	r := NewRunner(runnerSession(), submitter)
	ctx := context.Background()

	// No responses entered on sec1; navigation submits nothing.
	if err := r.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if len(submitter.submits) != 0 {
		t.Errorf("empty section should not submit, saw %d", len(submitter.submits))
	}
}

func TestRunnerFailedFlushBlocksNavigation(t *testing.T) {
	submitter := &fakeSubmitter{fail: errors.New("network gone")}
	r := NewRunner(runnerSession(), submitter)
	ctx := context.Background()

	r.SetResponse("c1", "Jan")
	if err := r.Next(ctx); err == nil {
		t.Fatal("expected the submit failure to surface")
	}
	if got := r.Current().Section.SectionID; got != "sec1" {
		t.Errorf("pointer must not advance past an unflushed section, at %s", got)
	}

	// Retry succeeds with the same payload.
	submitter.fail = nil
	if err := r.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if len(submitter.submits) != 1 || submitter.submits[0].responses["c1"] != "Jan" {
		t.Errorf("retry payload = %+v", submitter.submits)
	}
}

func TestRunnerPrevAndFinish(t *testing.T) {
	submitter := &fakeSubmitter{}
	r := NewRunner(runnerSession(), submitter)
	ctx := context.Background()

	if err := r.Prev(ctx); !errors.Is(err, ErrAtStart) {
		t.Errorf("err = %v, want ErrAtStart", err)
	}

	if err := r.Next(ctx); err != nil {
		t.Fatal(err)
	}
	r.SetResponse("c9", true)
	if err := r.Prev(ctx); err != nil {
		t.Fatal(err)
	}
	if len(submitter.submits) != 1 || submitter.submits[0].sectionID != "sec2" {
		t.Errorf("stepping back should flush the section being left: %+v", submitter.submits)
	}
	if got := r.Current().Section.SectionID; got != "sec1" {
		t.Errorf("at %s after Prev", got)
	}

	// Finish flushes in place on the last page.
	for r.HasNext() {
		if err := r.Next(ctx); err != nil {
			t.Fatal(err)
		}
	}
	r.SetResponse("c5", "klaar")
	if err := r.Finish(ctx); err != nil {
		t.Fatal(err)
	}
	last := submitter.submits[len(submitter.submits)-1]
	if last.sectionID != "sec3" || last.responses["c5"] != "klaar" {
		t.Errorf("finish submit = %+v", last)
	}
	if got := r.Current().Section.SectionID; got != "sec3" {
		t.Errorf("finish must not move the pointer, at %s", got)
	}
}
