package interview

import (
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"tax-engine/internal/model"
)

// randomAnswer draws a valid raw answer for the question.
func randomAnswer(rt *rapid.T, q *model.Question) string {
	switch q.Type {
	case model.AnswerText:
		if q.Pattern != "" {
			return rapid.StringMatching(strings.Trim(q.Pattern, "^$")).Draw(rt, q.ID)
		}
		return rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, q.ID)
	case model.AnswerNumber:
		lo, hi := int64(0), int64(500000)
		if q.Min != nil {
			lo = int64(*q.Min)
		}
		if q.Max != nil {
			hi = int64(*q.Max)
		}
		v := rapid.Int64Range(lo, hi).Draw(rt, q.ID)
		return strconv.FormatInt(v/100, 10) + "." + twoDigits(v%100)
	case model.AnswerChoice:
		return rapid.SampledFrom(q.Options).Draw(rt, q.ID)
	case model.AnswerDate:
		y := rapid.IntRange(1940, 2005).Draw(rt, q.ID+"_y")
		m := rapid.IntRange(1, 12).Draw(rt, q.ID+"_m")
		d := rapid.IntRange(1, 28).Draw(rt, q.ID+"_d")
		return pad4(y) + "-" + pad2i(m) + "-" + pad2i(d)
	case model.AnswerBoolean:
		return rapid.SampledFrom([]string{"yes", "no", "ja", "nein"}).Draw(rt, q.ID)
	}
	return ""
}

func twoDigits(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

func pad2i(v int) string { return twoDigits(int64(v)) }

func pad4(v int) string {
	s := strconv.Itoa(v)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// Every valid answer sequence completes within the total question count, and
// the persisted record replays to the identical position.
func TestPropertyCompletionAndReplay(t *testing.T) {
	graph, err := TaxGraph()
	if err != nil {
		t.Fatal(err)
	}
	iv := New(graph)

	rapid.Check(t, func(rt *rapid.T) {
		s := iv.Start(2024)

		steps := 0
		for !s.Complete() {
			if steps >= graph.Len() {
				rt.Fatalf("still on %s after %d steps", s.Current, steps)
			}
			q := iv.CurrentQuestion(s)
			if q == nil {
				rt.Fatalf("no current question but session not complete")
			}
			if _, err := iv.Submit(s, randomAnswer(rt, q)); err != nil {
				rt.Fatalf("submit %s: %v", q.ID, err)
			}
			steps++
		}

		restored, err := iv.Restore(iv.Record(s))
		if err != nil {
			rt.Fatalf("restore: %v", err)
		}
		if restored.Current != s.Current {
			rt.Fatalf("replay reached %s, live reached %s", restored.Current, s.Current)
		}
		if len(restored.Answers) != len(s.Answers) {
			rt.Fatalf("replay stored %d answers, live stored %d", len(restored.Answers), len(s.Answers))
		}
		for id, want := range s.Answers {
			if restored.Answers[id] != want {
				rt.Fatalf("answer %s diverged after replay", id)
			}
		}
	})
}

// Mid-session snapshots replay to the same position as the live session,
// regardless of where the interview is interrupted.
func TestPropertyPartialReplay(t *testing.T) {
	graph, err := TaxGraph()
	if err != nil {
		t.Fatal(err)
	}
	iv := New(graph)

	rapid.Check(t, func(rt *rapid.T) {
		s := iv.Start(2023)
		n := rapid.IntRange(0, graph.Len()).Draw(rt, "answered")

		for i := 0; i < n && !s.Complete(); i++ {
			q := iv.CurrentQuestion(s)
			if _, err := iv.Submit(s, randomAnswer(rt, q)); err != nil {
				rt.Fatalf("submit %s: %v", q.ID, err)
			}
		}

		restored, err := iv.Restore(iv.Record(s))
		if err != nil {
			rt.Fatalf("restore: %v", err)
		}
		if restored.Current != s.Current {
			rt.Fatalf("replay reached %s, live reached %s", restored.Current, s.Current)
		}
	})
}
