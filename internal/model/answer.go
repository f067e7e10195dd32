package model

import "strconv"

// Cents is a monetary or numeric amount at fixed hundredth resolution. All
// engine arithmetic stays in this scale; display formatting happens at the
// boundary only.
type Cents int64

// Whole returns the integral part, discarding the sub-unit digits.
func (c Cents) Whole() int64 { return int64(c) / 100 }

// String renders the amount with two decimal places, e.g. "4425.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + pad2(v%100)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

// Answer is the typed value produced by the parser. Exactly one value field is
// meaningful, selected by Type.
type Answer struct {
	Type   AnswerType `json:"type"`
	Text   string     `json:"text,omitempty"`
	Number Cents      `json:"number,omitempty"`
	Choice string     `json:"choice,omitempty"`
	Date   string     `json:"date,omitempty"`
	Bool   bool       `json:"bool,omitempty"`
}

// Canonical returns the comparable string form used by equals skip rules.
func (a Answer) Canonical() string {
	switch a.Type {
	case AnswerText:
		return a.Text
	case AnswerNumber:
		return strconv.FormatInt(int64(a.Number), 10)
	case AnswerChoice:
		return a.Choice
	case AnswerDate:
		return a.Date
	case AnswerBoolean:
		if a.Bool {
			return "true"
		}
		return "false"
	}
	return ""
}

// Truthy reports whether the answer counts as affirmative for truthy skip
// rules: a true boolean, a non-zero number, or any non-empty text/choice/date.
func (a Answer) Truthy() bool {
	switch a.Type {
	case AnswerBoolean:
		return a.Bool
	case AnswerNumber:
		return a.Number != 0
	default:
		return a.Canonical() != ""
	}
}
