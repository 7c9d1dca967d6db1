package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type (
	// StepPayload is the JSON rendering of one selected step
	StepPayload struct {
		StepLabel  string `json:"stepText"`
		Parameters Params `json:"parameters"`
	}

	// Params is an ordered set of parameter keys and typed values. It
	// serializes as a JSON object whose keys keep insertion order
	Params []Param

	// Param is one key and typed value within Params
	Param struct {
		Key   string
		Value any
	}
)

var ErrParamsNotObject = errors.New("parameters must be a JSON object")

// Set assigns value to key. An existing key keeps its position
func (p *Params) Set(key string, value any) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

// Get returns the value stored under key
func (p Params) Get(key string) (any, bool) {
	for _, e := range p {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order
func (p Params) Keys() []string {
	res := make([]string, len(p))
	for i, e := range p {
		res[i] = e.Key
	}
	return res
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Params) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrParamsNotObject
	}
	res := Params{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return ErrParamsNotObject
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if n, ok := raw.(json.Number); ok {
			f, err := n.Float64()
			if err != nil {
				return err
			}
			raw = f
		}
		res.Set(key, raw)
	}
	*p = res
	return nil
}

// CoerceValue converts a parameter's raw string value to the typed value
// rendered in the payload. Numbers that fail to parse keep the original
// string; booleans are true only for the exact string "true"
func CoerceValue(vt ValueType, raw string) any {
	switch vt {
	case ValueNumber:
		if f, ok := parseNumber(raw); ok {
			return f
		}
		return raw
	case ValueBoolean:
		return raw == "true"
	default:
		return raw
	}
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// PayloadOf renders the selection as one StepPayload per step, in order
func PayloadOf(sel Selection) []StepPayload {
	res := make([]StepPayload, 0, len(sel))
	for _, st := range sel {
		params := make(Params, 0, len(st.Parameters))
		for _, p := range st.Parameters {
			params.Set(p.Key(), CoerceValue(p.ValueType, p.DefaultValue))
		}
		res = append(res, StepPayload{
			StepLabel:  st.Label,
			Parameters: params,
		})
	}
	return res
}

// DescriptionOf renders the selection as numbered lines, one per step
func DescriptionOf(sel Selection) string {
	lines := make([]string, len(sel))
	for i, st := range sel {
		lines[i] = strconv.Itoa(i+1) + ". " + st.Label
	}
	return strings.Join(lines, "\n")
}
