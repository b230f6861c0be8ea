package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// toFloat accepts any numeric type produced by JSON, YAML or Go callers, and
// numeric strings written by older admin tools
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// toInt accepts integral numbers only
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// optionalColumn returns nil for anything that is not an integer in 1-4
func optionalColumn(v any) *int {
	c, ok := toInt(v)
	if !ok || c < 1 || c > 4 {
		return nil
	}
	return &c
}

// optionalPosition returns nil for anything that is not a non-negative integer
func optionalPosition(v any) *int {
	p, ok := toInt(v)
	if !ok || p < 0 {
		return nil
	}
	return &p
}

func optionalBool(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// stringField reads a string value. Absent fields are "", present non-strings are an error.
func stringField(doc map[string]any, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

// numberField reads a numeric value. present reports whether the key was set.
func numberField(doc map[string]any, key string) (value float64, present bool, err error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, true, fmt.Errorf("%s must be a number", key)
	}
	return f, true, nil
}

// stringList reads an array of strings. Absent is an empty list.
func stringList(doc map[string]any, key string) ([]string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must be an array", key)
}
