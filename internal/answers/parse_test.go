package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tax-engine/internal/model"
)

func boolQ() *model.Question {
	return &model.Question{ID: "q", Type: model.AnswerBoolean, Required: true}
}

func numQ() *model.Question {
	return &model.Question{ID: "q", Type: model.AnswerNumber, Required: true}
}

func TestParseBooleanBilingual(t *testing.T) {
	cases := map[string]bool{
		"yes": true, "Y": true, "TRUE": true, "ja": true, "J": true, "wahr": true,
		"no": false, "N": false, "false": false, "Nein": false,
	}
	for raw, want := range cases {
		ans, err := Parse(boolQ(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, ans.Bool, raw)
	}

	_, err := Parse(boolQ(), "maybe")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "q", verr.QuestionID)
}

func TestParseNumberFormats(t *testing.T) {
	cases := map[string]model.Cents{
		"45000":        4500000,
		"45000.50":     4500050,
		"1.234,56":     123456,
		"1234,56":      123456, // comma decimal needs no thousand grouping
		"45000,50":     4500050,
		"1.234.567":    123456700,
		"1.234.567,89": 123456789,
		"0":            0,
		"3":            300,
		"12,50":        1250,
	}
	for raw, want := range cases {
		ans, err := Parse(numQ(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, ans.Number, raw)
	}

	for _, raw := range []string{"12,5", "1.23,45", "abc", "1..2", "12.3456"} {
		_, err := Parse(numQ(), raw)
		assert.Error(t, err, raw)
	}
}

func TestParseNumberRange(t *testing.T) {
	min, max := model.Cents(0), model.Cents(2000)
	q := &model.Question{
		ID: "children", Type: model.AnswerNumber, Required: true,
		Min: &min, Max: &max,
		RangeMessage: "please enter a count between 0 and 20",
	}

	_, err := Parse(q, "21")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "please enter a count between 0 and 20", verr.Reason)

	ans, err := Parse(q, "20")
	require.NoError(t, err)
	assert.Equal(t, int64(20), ans.Number.Whole())
}

func TestParseChoice(t *testing.T) {
	q := &model.Question{
		ID: "status", Type: model.AnswerChoice, Required: true,
		Options: []string{"single", "married", "divorced"},
	}

	ans, err := Parse(q, "MARRIED")
	require.NoError(t, err)
	assert.Equal(t, "married", ans.Choice)

	// 1-based position
	ans, err = Parse(q, "3")
	require.NoError(t, err)
	assert.Equal(t, "divorced", ans.Choice)

	_, err = Parse(q, "4")
	assert.Error(t, err)
	_, err = Parse(q, "widowed")
	assert.Error(t, err)
}

func TestParseDateFormats(t *testing.T) {
	q := &model.Question{ID: "birth", Type: model.AnswerDate, Required: true}

	ans, err := Parse(q, "1980-06-15")
	require.NoError(t, err)
	assert.Equal(t, "1980-06-15", ans.Date)

	ans, err = Parse(q, "15.06.1980")
	require.NoError(t, err)
	assert.Equal(t, "1980-06-15", ans.Date)

	for _, raw := range []string{"1980-13-01", "1980-06-32", "15/06/1980", "yesterday"} {
		_, err := Parse(q, raw)
		assert.Error(t, err, raw)
	}
}

func TestParseRequiredAndPattern(t *testing.T) {
	q := &model.Question{ID: "tid", Type: model.AnswerText, Required: true, Pattern: `^\d{2}-\d{3}/\d{4}$`}

	_, err := Parse(q, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "an answer is required", verr.Reason)

	_, err = Parse(q, "12345")
	assert.Error(t, err)

	ans, err := Parse(q, "12-345/6789")
	require.NoError(t, err)
	assert.Equal(t, "12-345/6789", ans.Text)

	// optional question accepts blank input as a neutral answer
	opt := &model.Question{ID: "note", Type: model.AnswerText}
	ans, err = Parse(opt, "")
	require.NoError(t, err)
	assert.Empty(t, ans.Text)
}

func TestParseIsPure(t *testing.T) {
	q := numQ()
	a1, err1 := Parse(q, "1.234,56")
	a2, err2 := Parse(q, "1.234,56")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a1, a2)
}
