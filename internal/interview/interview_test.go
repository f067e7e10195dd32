package interview

import (
	"errors"
	"testing"

	"tax-engine/internal/model"
)

// fullAnswers drives a session to completion for a filer with no children, no
// commute and no disability; values keyed by question id.
var fullAnswers = map[string]string{
	"taxpayer_id":         "12-345/6789",
	"birth_date":          "1980-06-15",
	"marital_status":      "single",
	"children_count":      "0",
	"disability":          "no",
	"gross_income":        "45000",
	"withheld_tax":        "10000",
	"employer_count":      "1",
	"self_employed":       "no",
	"commute_exists":      "no",
	"home_office_days":    "50",
	"equipment_spend":     "0",
	"education_spend":     "0",
	"church_contribution": "400",
	"donations":           "200",
	"medical_spend":       "0",
}

func mustGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := TaxGraph()
	if err != nil {
		t.Fatalf("authored graph invalid: %v", err)
	}
	return g
}

func drive(t *testing.T, iv *Interview, s *model.Session, answers map[string]string) {
	t.Helper()
	for steps := 0; !s.Complete(); steps++ {
		if steps > iv.Graph().Len() {
			t.Fatalf("no completion after %d steps, stuck at %s", steps, s.Current)
		}
		raw, ok := answers[s.Current]
		if !ok {
			t.Fatalf("no scripted answer for question %s", s.Current)
		}
		if _, err := iv.Submit(s, raw); err != nil {
			t.Fatalf("submit %s=%q: %v", s.Current, raw, err)
		}
	}
}

func TestGraphRejectsBadPattern(t *testing.T) {
	_, err := NewGraph([]model.Question{
		{ID: "broken", Type: model.AnswerText, Pattern: `^[a-$`},
	})
	if err == nil {
		t.Fatal("expected graph construction to reject an uncompilable pattern")
	}
}

func TestInterviewReachesCompletion(t *testing.T) {
	iv := New(mustGraph(t))
	s := iv.Start(2024)

	if s.Current != "taxpayer_id" {
		t.Fatalf("expected entry question taxpayer_id, got %s", s.Current)
	}

	drive(t, iv, s, fullAnswers)

	if !s.Complete() {
		t.Fatal("expected session to be complete")
	}
	if len(s.Ordered) != len(fullAnswers) {
		t.Fatalf("expected %d stored answers, got %d", len(fullAnswers), len(s.Ordered))
	}
}

func TestCommuteSkipMakesDistanceUnreachable(t *testing.T) {
	iv := New(mustGraph(t))
	s := iv.Start(2024)
	drive(t, iv, s, fullAnswers)

	for _, id := range []string{"commute_distance_km", "commute_public_feasible"} {
		if _, answered := s.Answers[id]; answered {
			t.Fatalf("question %s should have been bypassed", id)
		}
	}
	// no-children path also bypasses every child question
	for _, id := range []string{"children_adult_count", "single_parent", "childcare_spend", "shared_custody"} {
		if _, answered := s.Answers[id]; answered {
			t.Fatalf("question %s should have been bypassed", id)
		}
	}
}

func TestValidationFailureKeepsPosition(t *testing.T) {
	iv := New(mustGraph(t))
	s := iv.Start(2024)

	q, err := iv.Submit(s, "not-an-id")
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if q == nil || q.ID != "taxpayer_id" {
		t.Fatalf("expected to stay on taxpayer_id, got %v", q)
	}
	if s.LastError == "" {
		t.Fatal("expected active validation error")
	}
	if len(s.Answers) != 0 {
		t.Fatal("invalid answer must not be stored")
	}

	if _, err := iv.Submit(s, "12-345/6789"); err != nil {
		t.Fatalf("valid retry failed: %v", err)
	}
	if s.LastError != "" {
		t.Fatal("validation error must clear on next valid answer")
	}
	if s.Current != "birth_date" {
		t.Fatalf("expected advance to birth_date, got %s", s.Current)
	}
}

func TestTerminalStateIsAbsorbing(t *testing.T) {
	iv := New(mustGraph(t))
	s := iv.Start(2024)
	drive(t, iv, s, fullAnswers)

	_, err := iv.Submit(s, "yes")
	var done *ErrSessionComplete
	if !errors.As(err, &done) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	iv := New(mustGraph(t))
	live := iv.Start(2024)
	drive(t, iv, live, fullAnswers)

	rec := iv.Record(live)
	restored, err := iv.Restore(rec)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if restored.Current != live.Current {
		t.Fatalf("restored position %s, live position %s", restored.Current, live.Current)
	}
	if len(restored.Answers) != len(live.Answers) {
		t.Fatalf("restored %d answers, live has %d", len(restored.Answers), len(live.Answers))
	}
	for id, want := range live.Answers {
		if got := restored.Answers[id]; got != want {
			t.Fatalf("answer %s: restored %+v, live %+v", id, got, want)
		}
	}
}

func TestRestoreMidSession(t *testing.T) {
	iv := New(mustGraph(t))
	live := iv.Start(2024)

	// answer the first five questions only
	script := []string{"12-345/6789", "1980-06-15", "married", "yes", "2"}
	for _, raw := range script {
		if _, err := iv.Submit(live, raw); err != nil {
			t.Fatalf("submit %q: %v", raw, err)
		}
	}

	restored, err := iv.Restore(iv.Record(live))
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Current != live.Current {
		t.Fatalf("restored position %s, live position %s", restored.Current, live.Current)
	}
}

func TestRestoreCorruptRecords(t *testing.T) {
	iv := New(mustGraph(t))
	live := iv.Start(2024)
	drive(t, iv, live, fullAnswers)
	rec := iv.Record(live)

	unknown := *rec
	unknown.Answers = append([]model.AnswerRecord(nil), rec.Answers...)
	unknown.Answers[3] = model.AnswerRecord{QuestionID: "no_such_question", Raw: "x"}

	wrongPosition := *rec
	wrongPosition.Current = "gross_income"

	badRaw := *rec
	badRaw.Answers = append([]model.AnswerRecord(nil), rec.Answers...)
	badRaw.Answers[0] = model.AnswerRecord{QuestionID: "taxpayer_id", Raw: "garbage"}

	for name, r := range map[string]model.SessionRecord{
		"unknown_question": unknown,
		"wrong_position":   wrongPosition,
		"invalid_raw":      badRaw,
	} {
		_, err := iv.Restore(&r)
		var corrupt *SessionCorruptError
		if !errors.As(err, &corrupt) {
			t.Fatalf("%s: expected SessionCorruptError, got %v", name, err)
		}
		if corrupt.QuestionID == "" {
			t.Fatalf("%s: corrupt error must name the offending identifier", name)
		}
	}
}

func TestStoreAtomicSubmit(t *testing.T) {
	iv := New(mustGraph(t))
	st := NewStore()
	s := iv.Start(2024)
	st.Put(s)

	err := st.With(s.SessionID, func(held *model.Session) error {
		_, err := iv.Submit(held, "12-345/6789")
		return err
	})
	if err != nil {
		t.Fatalf("submit via store failed: %v", err)
	}

	var notFound *ErrSessionNotFound
	if err := st.With("missing", func(*model.Session) error { return nil }); !errors.As(err, &notFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
