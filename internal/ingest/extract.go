// Package ingest normalizes raw platform feed records into canonical rows.
// Feeds arrive as decoded JSON (map[string]any); platforms disagree on field
// names and on whether numbers come as floats, ints, or strings, so all
// field access goes through the extract helpers below.
package ingest

import "strconv"

// Record is one decoded feed entry.
type Record = map[string]any

// str returns the first non-empty string among the named keys.
func str(rec Record, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := rec[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// num returns the first extractable numeric value among the named keys.
// JSON decoding yields float64; some feeds ship numbers as strings.
func num(rec Record, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// boolean returns the first boolean among the named keys. String forms
// ("true", "1") count.
func boolean(rec Record, keys ...string) (bool, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed, true
			}
		}
	}
	return false, false
}

// floatField returns a *float64 for optional numeric columns.
func floatField(rec Record, keys ...string) *float64 {
	if v, ok := num(rec, keys...); ok {
		return &v
	}
	return nil
}

// intField returns a *int for optional count columns.
func intField(rec Record, keys ...string) *int {
	if v, ok := num(rec, keys...); ok {
		n := int(v)
		return &n
	}
	return nil
}

// stringField returns a *string for optional text columns.
func stringField(rec Record, keys ...string) *string {
	if s, ok := str(rec, keys...); ok {
		return &s
	}
	return nil
}

// records returns a nested list of records under a key.
func records(rec Record, key string) []Record {
	raw, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stringList returns a list of strings under a key.
func stringList(rec Record, key string) []string {
	raw, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
