package rulepack

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"tax-engine/internal/model"
)

// Change is one field-level difference between two rule packs, addressed by a
// JSON-pointer path into the pack document.
type Change struct {
	Op    string      `json:"op"` // add, remove, replace
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// Diff compares two rule packs field by field and returns the changes that
// transform a into b. Year-over-year audit utility; not on the interactive
// path.
func Diff(a, b *model.RulePack) ([]Change, error) {
	av, err := toTree(a)
	if err != nil {
		return nil, err
	}
	bv, err := toTree(b)
	if err != nil {
		return nil, err
	}
	return walk(av, bv, ""), nil
}

func toTree(p *model.RulePack) (interface{}, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func walk(a, b interface{}, path string) []Change {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Change{{Op: "replace", Path: path, Value: b}}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return walkObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return walkArrays(aArr, bArr, path)
	}

	if a != b {
		return []Change{{Op: "replace", Path: path, Value: b}}
	}
	return nil
}

func walkObjects(a, b map[string]interface{}, path string) []Change {
	var out []Change

	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, Change{Op: "remove", Path: path + "/" + escapeKey(k)})
		}
	}
	for k, bv := range b {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			out = append(out, Change{Op: "add", Path: childPath, Value: bv})
			continue
		}
		out = append(out, walk(av, bv, childPath)...)
	}
	return out
}

func walkArrays(a, b []interface{}, path string) []Change {
	var out []Change

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		out = append(out, walk(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}
	for i := len(a) - 1; i >= minLen; i-- {
		out = append(out, Change{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}
	for i := minLen; i < len(b); i++ {
		out = append(out, Change{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}
	return out
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
