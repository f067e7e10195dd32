// Package answers normalizes raw interview input into typed values. Parsing is
// a pure function of (question, raw input); it never touches session state.
package answers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"tax-engine/internal/model"
)

// ValidationError is recoverable: the session stays on the same question and
// the reason is surfaced to the caller.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Reason)
}

// Bilingual boolean vocabulary, matched case-insensitively. Anything else is
// rejected.
var (
	affirmative = map[string]bool{
		"yes": true, "y": true, "true": true,
		"ja": true, "j": true, "wahr": true,
	}
	negative = map[string]bool{
		"no": true, "n": true, "false": true,
		"nein": true,
	}
)

// Parse turns a raw string into the question's typed answer or a
// *ValidationError with a human-readable reason.
func Parse(q *model.Question, raw string) (model.Answer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if q.Required {
			return model.Answer{}, fail(q, "an answer is required")
		}
		return model.Answer{Type: q.Type}, nil
	}

	switch q.Type {
	case model.AnswerText:
		return parseText(q, trimmed)
	case model.AnswerNumber:
		return parseNumber(q, trimmed)
	case model.AnswerChoice:
		return parseChoice(q, trimmed)
	case model.AnswerDate:
		return parseDate(q, trimmed)
	case model.AnswerBoolean:
		return parseBoolean(q, trimmed)
	}
	return model.Answer{}, fail(q, "unknown answer type")
}

func fail(q *model.Question, reason string) error {
	return &ValidationError{QuestionID: q.ID, Reason: reason}
}

// patterns caches compiled question patterns; they are static graph data, so
// each compiles once for the process lifetime.
var patterns sync.Map

// CompilePattern compiles and caches a question pattern. Graph validation
// calls it at startup so an unusable authored pattern fails there, not on a
// filer's answer.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if v, ok := patterns.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

func parseText(q *model.Question, s string) (model.Answer, error) {
	if q.Pattern != "" {
		re, err := CompilePattern(q.Pattern)
		if err != nil {
			return model.Answer{}, fail(q, "question has an unusable pattern")
		}
		if !re.MatchString(s) {
			return model.Answer{}, fail(q, "answer does not match the expected format")
		}
	}
	return model.Answer{Type: model.AnswerText, Text: s}, nil
}

func parseBoolean(q *model.Question, s string) (model.Answer, error) {
	w := strings.ToLower(s)
	if affirmative[w] {
		return model.Answer{Type: model.AnswerBoolean, Bool: true}, nil
	}
	if negative[w] {
		return model.Answer{Type: model.AnswerBoolean, Bool: false}, nil
	}
	return model.Answer{}, fail(q, "please answer yes/no (ja/nein)")
}

func parseChoice(q *model.Question, s string) (model.Answer, error) {
	for _, opt := range q.Options {
		if strings.EqualFold(opt, s) {
			return model.Answer{Type: model.AnswerChoice, Choice: opt}, nil
		}
	}
	if idx, err := strconv.Atoi(s); err == nil {
		if idx >= 1 && idx <= len(q.Options) {
			return model.Answer{Type: model.AnswerChoice, Choice: q.Options[idx-1]}, nil
		}
	}
	return model.Answer{}, fail(q,
		"not one of the options: "+strings.Join(q.Options, ", "))
}

var (
	plainNumberRe = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)
	localNumberRe = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})*|\d+)(,\d{2})?$`)
	groupedRe     = regexp.MustCompile(`^-?\d{1,3}(\.\d{3}){2,}$`)
)

// parseNumber accepts a plain decimal ("1234.56") and the local format
// ("1.234,56" or "1234,56"). A comma followed by exactly two trailing digits
// is the decimal separator; dot groups of three digits are thousands
// separators, optional before a comma decimal. A single dot group without a
// comma reads as a plain decimal. Values normalize to fixed hundredths (cents
// for monetary questions).
func parseNumber(q *model.Question, s string) (model.Answer, error) {
	normalized := ""
	switch {
	case strings.Contains(s, ","):
		if !localNumberRe.MatchString(s) {
			return model.Answer{}, fail(q, "not a valid number")
		}
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	case groupedRe.MatchString(s):
		normalized = strings.ReplaceAll(s, ".", "")
	case plainNumberRe.MatchString(s):
		normalized = s
	default:
		return model.Answer{}, fail(q, "not a valid number")
	}

	value, err := toCents(normalized)
	if err != nil {
		return model.Answer{}, fail(q, "not a valid number")
	}

	if q.Min != nil && value < *q.Min || q.Max != nil && value > *q.Max {
		msg := q.RangeMessage
		if msg == "" {
			msg = "value is out of range"
		}
		return model.Answer{}, fail(q, msg)
	}
	return model.Answer{Type: model.AnswerNumber, Number: value}, nil
}

// toCents parses "whole[.frac]" into hundredths without going through float64.
func toCents(s string) (model.Cents, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	for len(frac) < 2 {
		frac += "0"
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	return model.Cents(v), nil
}

// parseDate accepts ISO "YYYY-MM-DD" and the local "DD.MM.YYYY"; the answer is
// normalized to ISO form.
func parseDate(q *model.Question, s string) (model.Answer, error) {
	iso := s
	if len(s) == 10 && s[2] == '.' && s[5] == '.' {
		iso = s[6:] + "-" + s[3:5] + "-" + s[:2]
	}
	if _, ok := fastParseDate(iso); !ok {
		return model.Answer{}, fail(q, "not a valid date (YYYY-MM-DD or DD.MM.YYYY)")
	}
	return model.Answer{Type: model.AnswerDate, Date: iso}, nil
}

// fastParseDate parses "YYYY-MM-DD" without layout parsing. Returns zero time
// and false on invalid input.
func fastParseDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}
