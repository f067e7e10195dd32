package model

// Complete is the terminal interview position. It is absorbing: a completed
// session rejects further answers.
const Complete = "COMPLETE"

// Exchange is one raw submission, accepted or not. The ordered log is the
// audit trail and, for accepted entries, the replay source.
type Exchange struct {
	QuestionID string `json:"question_id"`
	Raw        string `json:"raw"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason,omitempty"`
}

// AnswerRecord is one accepted answer in submission order.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	Raw        string `json:"raw"`
	Value      Answer `json:"value"`
}

// Session is the live interview state for one filer and tax year. It is
// mutated only through single-answer submissions and becomes immutable once
// Current reaches Complete.
type Session struct {
	SessionID string
	TaxYear   int
	Current   string
	Answers   map[string]Answer
	Ordered   []AnswerRecord
	Log       []Exchange
	LastError string // active validation error, cleared on next valid answer
	ErrorLog  []string
}

// Complete reports whether the session reached the terminal position.
func (s *Session) Complete() bool { return s.Current == Complete }

// SessionRecord is the persistence boundary shape. An external store owns
// durability; this core only round-trips the exact record.
type SessionRecord struct {
	SessionID string         `json:"session_id"`
	TaxYear   int            `json:"tax_year"`
	Current   string         `json:"current_question_id"`
	Answers   []AnswerRecord `json:"answers"`
	ErrorLog  []string       `json:"validation_errors,omitempty"`
}
