package generator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

type (
	// Mappings associates lower-cased step phrasings with method calls
	Mappings struct {
		keys    []string
		methods map[string]string
	}

	// Mapping is one resolved step
	Mapping struct {
		Key    string
		Method string
		Score  float64
	}
)

// MinScore is the lowest token overlap accepted by Resolve
const MinScore = 0.5

var (
	ErrEmptyMappings   = errors.New("step mappings are empty")
	ErrInvalidMappings = errors.New("invalid step mappings")
	ErrNoMapping       = errors.New("cannot detect method mapping for step")
)

var numberedStep = regexp.MustCompile(`^Step \d+:\s*`)

// ParseMappings reads "key,method" records. Keys are lower-cased, and each
// method is terminated with a semicolon. A later duplicate key replaces the
// earlier one
func ParseMappings(r io.Reader) (*Mappings, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	m := &Mappings{methods: map[string]string{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMappings, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: missing comma at line %d",
				ErrInvalidMappings, line)
		}

		key := strings.ToLower(strings.TrimSpace(rec[0]))
		method := strings.TrimSpace(strings.Join(rec[1:], ","))
		if key == "" || method == "" {
			return nil, fmt.Errorf("%w: empty key or method at line %d",
				ErrInvalidMappings, line)
		}
		if !strings.HasSuffix(method, ";") {
			method += ";"
		}
		if _, ok := m.methods[key]; ok {
			slog.Warn("Duplicate step mapping replaced",
				slog.String("key", key),
				slog.Int("line", line))
		} else {
			m.keys = append(m.keys, key)
		}
		m.methods[key] = method
	}

	if len(m.keys) == 0 {
		return nil, ErrEmptyMappings
	}
	return m, nil
}

// Len returns the number of mappings
func (m *Mappings) Len() int {
	return len(m.keys)
}

// Resolve finds the method whose key shares the most words with step. Ties
// go to the mapping listed first
func (m *Mappings) Resolve(step string) (*Mapping, error) {
	desc := strings.ToLower(
		strings.TrimSpace(numberedStep.ReplaceAllString(step, "")),
	)

	var best *Mapping
	for _, key := range m.keys {
		score := tokenOverlap(key, desc)
		if best == nil || score > best.Score {
			best = &Mapping{Key: key, Method: m.methods[key], Score: score}
		}
	}

	if best == nil || best.Score < MinScore {
		return nil, fmt.Errorf("%w: %s", ErrNoMapping, step)
	}
	return best, nil
}

// tokenOverlap returns the Dice coefficient of the word sets of a and b
func tokenOverlap(a, b string) float64 {
	sa := wordSet(a)
	sb := wordSet(b)
	if len(sa)+len(sb) == 0 {
		return 0
	}
	common := 0
	for w := range sa {
		if sb[w] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(sa)+len(sb))
}

func wordSet(s string) map[string]bool {
	res := map[string]bool{}
	for _, w := range strings.Fields(s) {
		res[w] = true
	}
	return res
}
