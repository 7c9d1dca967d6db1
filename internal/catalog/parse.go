package catalog

import (
	"strings"

	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/util"
)

const byteOrderMark = "\ufeff"

// ParseLines returns the trimmed, non-empty lines of text in order. Repeated
// lines are kept only once
func ParseLines(text string) []string {
	text = strings.TrimPrefix(text, byteOrderMark)
	seen := util.Set[string]{}
	var res []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen.Contains(line) {
			continue
		}
		seen.Add(line)
		res = append(res, line)
	}
	return res
}

// ParseSteps turns each line of text into a step template
func ParseSteps(text string) []api.StepTemplate {
	lines := ParseLines(text)
	res := make([]api.StepTemplate, len(lines))
	for i, line := range lines {
		res[i] = api.StepTemplate{ID: line, Label: line}
	}
	return res
}

// ParseParameters turns each line of text into a parameter template with
// the given default value
func ParseParameters(text, defaultValue string) []api.ParameterTemplate {
	lines := ParseLines(text)
	res := make([]api.ParameterTemplate, len(lines))
	for i, line := range lines {
		res[i] = api.ParameterTemplate{
			ID:           line,
			Label:        line,
			DefaultValue: defaultValue,
		}
	}
	return res
}
