package model

// AnswerType enumerates the value kinds a question can collect.
type AnswerType string

const (
	AnswerText    AnswerType = "text"
	AnswerNumber  AnswerType = "number"
	AnswerChoice  AnswerType = "choice"
	AnswerDate    AnswerType = "date"
	AnswerBoolean AnswerType = "boolean"
)

// SkipCondition is the comparison a skip rule applies to a referenced answer.
type SkipCondition string

const (
	CondEquals  SkipCondition = "equals"
	CondTruthy  SkipCondition = "truthy"
	CondInRange SkipCondition = "in-range"
)

// SkipRule bypasses downstream questions once the referenced answer exists and
// satisfies the condition. Rules are re-evaluated after every stored answer, so
// a rule can retroactively affect questions declared before its trigger.
type SkipRule struct {
	WhenAnswer string        `json:"when_answer"`
	Condition  SkipCondition `json:"condition"`
	Equals     string        `json:"equals,omitempty"`
	Min        Cents         `json:"min,omitempty"`
	Max        Cents         `json:"max,omitempty"`
	Skip       []string      `json:"skip"`
}

// Question is a node of the interview graph. The "next" question is never
// authored here; it is computed at answer time from the declared order and the
// active skip rules.
type Question struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"prompt"`
	Type         AnswerType `json:"type"`
	Help         string     `json:"help,omitempty"`
	Required     bool       `json:"required"`
	Options      []string   `json:"options,omitempty"`
	Min          *Cents     `json:"min,omitempty"`
	Max          *Cents     `json:"max,omitempty"`
	RangeMessage string     `json:"range_message,omitempty"`
	Pattern      string     `json:"pattern,omitempty"`
	SkipRules    []SkipRule `json:"skip_rules,omitempty"`
}
