package grades

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Subject is a named, ordered list of scores. Position in Scores drives the
// sprint/semester numbering shown to the user.
type Subject struct {
	Name   string
	Scores []float64
}

// Set is the full nested grade structure returned by the grade store:
// category -> subject -> scores. Subject order follows the order the server
// sent them in.
type Set struct {
	categories map[Category][]Subject
}

// NewSet returns an empty grade set
func NewSet() Set {
	return Set{categories: make(map[Category][]Subject)}
}

// With returns a copy of s with subject appended to (or replaced within) category c.
// Intended for building sets in code and tests.
func (s Set) With(c Category, name string, scores ...float64) Set {
	out := s.Clone()
	subjects := out.categories[c]
	for i := range subjects {
		if subjects[i].Name == name {
			subjects[i].Scores = append([]float64(nil), scores...)
			return out
		}
	}
	out.categories[c] = append(subjects, Subject{Name: name, Scores: append([]float64(nil), scores...)})
	return out
}

// Subjects returns the subject names of a category in server order
func (s Set) Subjects(c Category) []string {
	subjects := s.categories[c]
	names := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		names = append(names, sub.Name)
	}
	return names
}

// Scores returns a copy of the scores for (c, subject) and whether the subject exists
func (s Set) Scores(c Category, subject string) ([]float64, bool) {
	for _, sub := range s.categories[c] {
		if sub.Name == subject {
			return append([]float64(nil), sub.Scores...), true
		}
	}
	return nil, false
}

// HasSubject reports whether subject exists under category c
func (s Set) HasSubject(c Category, subject string) bool {
	_, ok := s.Scores(c, subject)
	return ok
}

// Len returns the total number of scores across every category
func (s Set) Len() int {
	n := 0
	for _, subjects := range s.categories {
		for _, sub := range subjects {
			n += len(sub.Scores)
		}
	}
	return n
}

// Clone returns a deep copy of s
func (s Set) Clone() Set {
	out := NewSet()
	for c, subjects := range s.categories {
		copied := make([]Subject, len(subjects))
		for i, sub := range subjects {
			copied[i] = Subject{Name: sub.Name, Scores: append([]float64(nil), sub.Scores...)}
		}
		out.categories[c] = copied
	}
	return out
}

// Equal reports whether s and other hold the same subjects, in the same
// order, with the same scores.
func (s Set) Equal(other Set) bool {
	for _, c := range Categories() {
		a, b := s.categories[c], other.categories[c]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Name != b[i].Name || len(a[i].Scores) != len(b[i].Scores) {
				return false
			}
			for j := range a[i].Scores {
				if a[i].Scores[j] != b[i].Scores[j] {
					return false
				}
			}
		}
	}
	return true
}

// WithoutScore returns a copy of s where every score equal to value is
// removed from (c, subject). Other subjects and categories are untouched.
// If the subject does not exist the copy is identical to s.
func (s Set) WithoutScore(c Category, subject string, value float64) Set {
	out := s.Clone()
	subjects := out.categories[c]
	for i := range subjects {
		if subjects[i].Name != subject {
			continue
		}
		kept := subjects[i].Scores[:0]
		for _, v := range subjects[i].Scores {
			if v != value {
				kept = append(kept, v)
			}
		}
		subjects[i].Scores = kept
	}
	return out
}

// MarshalJSON encodes the set as {"Challenge": {"Subject": [..]}, ...},
// keeping category and subject order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(c))
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, sub := range s.categories[c] {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(sub.Name)
			if err != nil {
				return nil, err
			}
			scores := sub.Scores
			if scores == nil {
				scores = []float64{}
			}
			values, err := json.Marshal(scores)
			if err != nil {
				return nil, fmt.Errorf("encode %s/%s: %w", c, sub.Name, err)
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(values)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a grade set while preserving the subject order of the
// document. Unknown categories are skipped; null categories and null score
// lists decode as empty.
func (s *Set) UnmarshalJSON(data []byte) error {
	out := NewSet()
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode grade set: %w", err)
	}
	if tok == nil {
		*s = out
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode grade set: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode grade set: %w", err)
		}
		key, _ := keyTok.(string)

		c, err := ParseCategory(key)
		if err != nil {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("decode grade set: skip %q: %w", key, err)
			}
			continue
		}

		subjects, err := decodeSubjects(dec)
		if err != nil {
			return fmt.Errorf("decode grade set: %s: %w", c, err)
		}
		out.categories[c] = subjects
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode grade set: %w", err)
	}

	*s = out
	return nil
}

func decodeSubjects(dec *json.Decoder) ([]Subject, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var subjects []Subject
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := nameTok.(string)

		var scores []float64
		if err := dec.Decode(&scores); err != nil {
			return nil, fmt.Errorf("subject %q: %w", name, err)
		}
		subjects = putSubject(subjects, name, scores)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return subjects, nil
}

// putSubject appends a subject, or replaces the scores of an earlier entry
// with the same name so a repeated key keeps its first position and last value.
func putSubject(subjects []Subject, name string, scores []float64) []Subject {
	for i := range subjects {
		if subjects[i].Name == name {
			subjects[i].Scores = scores
			return subjects
		}
	}
	return append(subjects, Subject{Name: name, Scores: scores})
}
