package interview

import (
	"fmt"

	"github.com/google/uuid"

	"tax-engine/internal/answers"
	"tax-engine/internal/model"
)

// ErrSessionComplete rejects answers submitted after the terminal position.
type ErrSessionComplete struct {
	SessionID string
}

func (e *ErrSessionComplete) Error() string {
	return fmt.Sprintf("session %s is complete and accepts no further answers", e.SessionID)
}

// SessionCorruptError means a persisted record cannot be replayed to a
// consistent graph position. Fatal for the session, never for the process.
type SessionCorruptError struct {
	SessionID  string
	QuestionID string
	Reason     string
}

func (e *SessionCorruptError) Error() string {
	return fmt.Sprintf("session %s corrupt at question %q: %s", e.SessionID, e.QuestionID, e.Reason)
}

// Interview drives sessions over one question graph.
type Interview struct {
	graph *Graph
}

// New builds an interview over the given graph.
func New(graph *Graph) *Interview {
	return &Interview{graph: graph}
}

// Graph exposes the underlying question graph.
func (iv *Interview) Graph() *Graph { return iv.graph }

// Start creates a fresh session at the graph's entry question.
func (iv *Interview) Start(taxYear int) *model.Session {
	return &model.Session{
		SessionID: uuid.New().String(),
		TaxYear:   taxYear,
		Current:   iv.graph.Entry(),
		Answers:   make(map[string]model.Answer),
	}
}

// CurrentQuestion returns the session's open question, or nil when complete.
func (iv *Interview) CurrentQuestion(s *model.Session) *model.Question {
	if s.Complete() {
		return nil
	}
	q, _ := iv.graph.Question(s.Current)
	return q
}

// Submit processes one raw answer for the session's current question as a
// single atomic step: validate, store, re-evaluate skip rules, advance. On a
// validation failure the session state is unchanged apart from the recorded
// error, and the same question stays current.
//
// It returns the next open question (nil once complete).
func (iv *Interview) Submit(s *model.Session, raw string) (*model.Question, error) {
	if s.Complete() {
		return nil, &ErrSessionComplete{SessionID: s.SessionID}
	}
	q, ok := iv.graph.Question(s.Current)
	if !ok {
		return nil, &SessionCorruptError{SessionID: s.SessionID, QuestionID: s.Current, Reason: "current question not in graph"}
	}

	ans, err := answers.Parse(q, raw)
	if err != nil {
		s.LastError = err.Error()
		s.ErrorLog = append(s.ErrorLog, err.Error())
		s.Log = append(s.Log, model.Exchange{QuestionID: q.ID, Raw: raw, Reason: err.Error()})
		return q, err
	}

	s.Answers[q.ID] = ans
	s.Ordered = append(s.Ordered, model.AnswerRecord{QuestionID: q.ID, Raw: raw, Value: ans})
	s.Log = append(s.Log, model.Exchange{QuestionID: q.ID, Raw: raw, Accepted: true})
	s.LastError = ""
	s.Current = iv.graph.next(s.Answers, q.ID)

	return iv.CurrentQuestion(s), nil
}

// Record projects the session onto its persistence boundary shape.
func (iv *Interview) Record(s *model.Session) *model.SessionRecord {
	recs := make([]model.AnswerRecord, len(s.Ordered))
	copy(recs, s.Ordered)
	errs := make([]string, len(s.ErrorLog))
	copy(errs, s.ErrorLog)
	return &model.SessionRecord{
		SessionID: s.SessionID,
		TaxYear:   s.TaxYear,
		Current:   s.Current,
		Answers:   recs,
		ErrorLog:  errs,
	}
}

// Restore rebuilds a session from a persisted record by replaying every
// stored answer in original order through the same store/skip/advance steps a
// live run performs. Replay is required because skip sets can depend on
// answers given after the node they affect was first reached; the final
// position must match the record's.
func (iv *Interview) Restore(rec *model.SessionRecord) (*model.Session, error) {
	s := iv.Start(rec.TaxYear)
	s.SessionID = rec.SessionID
	s.ErrorLog = append([]string(nil), rec.ErrorLog...)

	for _, ar := range rec.Answers {
		if s.Complete() {
			return nil, &SessionCorruptError{SessionID: rec.SessionID, QuestionID: ar.QuestionID, Reason: "answer beyond terminal position"}
		}
		if ar.QuestionID != s.Current {
			return nil, &SessionCorruptError{SessionID: rec.SessionID, QuestionID: ar.QuestionID, Reason: fmt.Sprintf("expected answer for %q", s.Current)}
		}
		q, ok := iv.graph.Question(ar.QuestionID)
		if !ok {
			return nil, &SessionCorruptError{SessionID: rec.SessionID, QuestionID: ar.QuestionID, Reason: "question no longer in graph"}
		}
		ans, err := answers.Parse(q, ar.Raw)
		if err != nil {
			return nil, &SessionCorruptError{SessionID: rec.SessionID, QuestionID: ar.QuestionID, Reason: "stored answer no longer valid"}
		}
		s.Answers[q.ID] = ans
		s.Ordered = append(s.Ordered, model.AnswerRecord{QuestionID: q.ID, Raw: ar.Raw, Value: ans})
		s.Log = append(s.Log, model.Exchange{QuestionID: q.ID, Raw: ar.Raw, Accepted: true})
		s.Current = iv.graph.next(s.Answers, q.ID)
	}

	if s.Current != rec.Current {
		return nil, &SessionCorruptError{SessionID: rec.SessionID, QuestionID: rec.Current, Reason: fmt.Sprintf("replay reached %q, record claims %q", s.Current, rec.Current)}
	}
	return s, nil
}
