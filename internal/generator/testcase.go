package generator

import (
	"errors"
	"regexp"
	"strings"
)

// TestCase is a parsed test case description
type TestCase struct {
	ID       string
	Title    string
	Groups   string
	Category string
	Feature  string
	Steps    []string
}

const (
	DefaultCategory = "VMwareBackup"
	DefaultFeature  = "VMWAREBACKUP"
)

var ErrMissingFields = errors.New(
	"input text missing required fields (id/title/groups)",
)

var stepPrefix = regexp.MustCompile(`(?i)^step\s*\d*[:\-]\s*`)

// ParseTestCase reads a description made of "key: value" header lines and
// step lines. Blank lines and lines starting with # are ignored
func ParseTestCase(text string) (*TestCase, error) {
	tc := &TestCase{
		Category: DefaultCategory,
		Feature:  DefaultFeature,
		Steps:    []string{},
	}

	var hasID, hasTitle, hasGroups bool
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := cutField(line, "title:"); ok {
			tc.Title, hasTitle = v, true
		} else if v, ok := cutField(line, "groups:"); ok {
			tc.Groups, hasGroups = normalizeQuotedList(v), true
		} else if v, ok := cutField(line, "id:"); ok {
			tc.ID, hasID = v, true
		} else if v, ok := cutField(line, "category:"); ok {
			tc.Category = v
		} else if v, ok := cutField(line, "feature:"); ok {
			tc.Feature = v
		} else if hasPrefixFold(line, "step") {
			step := strings.TrimSpace(stepPrefix.ReplaceAllString(line, ""))
			tc.Steps = append(tc.Steps, step)
		}
	}

	if !hasID || !hasTitle || !hasGroups {
		return nil, ErrMissingFields
	}
	return tc, nil
}

// FirstGroup returns the first group, unquoted
func (tc *TestCase) FirstGroup() string {
	first, _, _ := strings.Cut(tc.Groups, ",")
	return strings.Trim(strings.TrimSpace(first), `"`)
}

// ClassName returns the name of the test class the case belongs to
func (tc *TestCase) ClassName() string {
	return tc.Category + "ManualTest"
}

func cutField(line, prefix string) (string, bool) {
	if !hasPrefixFold(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// normalizeQuotedList re-quotes a comma-separated list: `a, 'b',"c"`
// becomes `"a", "b", "c"`
func normalizeQuotedList(s string) string {
	var res []string
	for item := range strings.SplitSeq(s, ",") {
		item = strings.NewReplacer(`"`, "", "'", "").Replace(
			strings.TrimSpace(item),
		)
		if item != "" {
			res = append(res, `"`+item+`"`)
		}
	}
	return strings.Join(res, ", ")
}
