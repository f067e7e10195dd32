// Package interview owns the question graph, skip-rule evaluation and the
// session state machine. Sessions are explicit values held in a Store; there
// is no ambient "current interview" state.
package interview

import (
	"fmt"

	"tax-engine/internal/answers"
	"tax-engine/internal/model"
)

// Graph is the authored question set in declared order plus the skip rules.
// The next question is always computed at answer time, never authored.
type Graph struct {
	questions []model.Question
	index     map[string]int
}

// NewGraph validates the authored questions: ids unique, patterns compile,
// skip rules reference existing answers and bypass existing downstream
// questions.
func NewGraph(questions []model.Question) (*Graph, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question graph is empty")
	}
	g := &Graph{questions: questions, index: make(map[string]int, len(questions))}
	for i, q := range questions {
		if _, dup := g.index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.Pattern != "" {
			if _, err := answers.CompilePattern(q.Pattern); err != nil {
				return nil, fmt.Errorf("question %q: pattern does not compile: %v", q.ID, err)
			}
		}
		g.index[q.ID] = i
	}
	for _, q := range questions {
		for _, rule := range q.SkipRules {
			ref, ok := g.index[rule.WhenAnswer]
			if !ok {
				return nil, fmt.Errorf("question %q: skip rule references unknown answer %q", q.ID, rule.WhenAnswer)
			}
			for _, target := range rule.Skip {
				ti, ok := g.index[target]
				if !ok {
					return nil, fmt.Errorf("question %q: skip rule targets unknown question %q", q.ID, target)
				}
				if ti <= ref {
					return nil, fmt.Errorf("question %q: skip target %q is not downstream of %q", q.ID, target, rule.WhenAnswer)
				}
			}
		}
	}
	return g, nil
}

// Entry returns the designated starting question id.
func (g *Graph) Entry() string { return g.questions[0].ID }

// Len returns the total question count.
func (g *Graph) Len() int { return len(g.questions) }

// Question looks up a node by id.
func (g *Graph) Question(id string) (*model.Question, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.questions[i], true
}

// Questions returns the declared order.
func (g *Graph) Questions() []model.Question { return g.questions }

// bypassSet evaluates every skip rule whose referenced answer is present and
// collects the question ids to bypass.
func (g *Graph) bypassSet(answers map[string]model.Answer) map[string]bool {
	set := make(map[string]bool)
	for _, q := range g.questions {
		for _, rule := range q.SkipRules {
			ans, ok := answers[rule.WhenAnswer]
			if !ok || !ruleMatches(rule, ans) {
				continue
			}
			for _, target := range rule.Skip {
				set[target] = true
			}
		}
	}
	return set
}

func ruleMatches(rule model.SkipRule, ans model.Answer) bool {
	switch rule.Condition {
	case model.CondEquals:
		return ans.Canonical() == rule.Equals
	case model.CondTruthy:
		return ans.Truthy()
	case model.CondInRange:
		return ans.Type == model.AnswerNumber &&
			ans.Number >= rule.Min && ans.Number <= rule.Max
	}
	return false
}

// next advances from the question at fromID in declared order, skipping
// bypassed or already-answered ids, until it finds an open question or
// exhausts the graph.
func (g *Graph) next(answers map[string]model.Answer, fromID string) string {
	bypass := g.bypassSet(answers)
	start := 0
	if i, ok := g.index[fromID]; ok {
		start = i + 1
	}
	for i := start; i < len(g.questions); i++ {
		id := g.questions[i].ID
		if bypass[id] {
			continue
		}
		if _, answered := answers[id]; answered {
			continue
		}
		return id
	}
	return model.Complete
}
