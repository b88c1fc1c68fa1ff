package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Request is the caller's input to a generation.
type Request struct {
	Ingredients []string `json:"ingredients"`
	Filters     []string `json:"filters,omitempty"`
}

// Recipe is one model-produced recipe plus the image attached by the service.
// Fields missing from the model output decode to their zero value; Extra keeps
// any additional keys the model added so they are echoed back unchanged.
type Recipe struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Difficulty  string     `json:"difficulty"`
	Servings    Servings   `json:"servings"`
	Ingredients StringList `json:"ingredients"`
	Steps       StringList `json:"steps"`
	Notes       string     `json:"notes"`
	ImageURL    string     `json:"image_url"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownFields = map[string]bool{
	"title":       true,
	"description": true,
	"duration":    true,
	"difficulty":  true,
	"servings":    true,
	"ingredients": true,
	"steps":       true,
	"notes":       true,
	"image_url":   true,
}

type recipeFields struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	Duration    flexString `json:"duration"`
	Difficulty  flexString `json:"difficulty"`
	Servings    Servings   `json:"servings"`
	Ingredients StringList `json:"ingredients"`
	Steps       StringList `json:"steps"`
	Notes       flexString `json:"notes"`
}

// UnmarshalJSON decodes a model recipe object, coercing loosely typed fields.
// image_url is never taken from the model.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields recipeFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*r = Recipe{
		Title:       string(fields.Title),
		Description: string(fields.Description),
		Duration:    string(fields.Duration),
		Difficulty:  string(fields.Difficulty),
		Servings:    fields.Servings,
		Ingredients: fields.Ingredients,
		Steps:       fields.Steps,
		Notes:       string(fields.Notes),
	}

	for key, value := range all {
		if knownFields[key] {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = value
	}
	return nil
}

// recipeJSON has Recipe's fields without its methods.
type recipeJSON Recipe

// MarshalJSON writes the known fields first, then any extras in key order.
func (r Recipe) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(recipeJSON(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(r.Extra))
	for key := range r.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(r.Extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Servings keeps whether the model sent a string ("4 people") or a number (4).
type Servings struct {
	Value   string
	Numeric bool
}

func (s *Servings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Servings{}
		return nil
	}
	// Try unmarshal as string first
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Servings{Value: str}
		return nil
	}
	// Try as number
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = Servings{Value: num.String(), Numeric: true}
		return nil
	}
	// Anything else is kept as its JSON text
	var text flexString
	if err := text.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("servings: %w", err)
	}
	*s = Servings{Value: string(text)}
	return nil
}

func (s Servings) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		if _, err := strconv.ParseFloat(s.Value, 64); err == nil {
			return []byte(s.Value), nil
		}
	}
	return json.Marshal(s.Value)
}

func (s Servings) String() string {
	return s.Value
}

// StringList accepts a JSON list or a single string. Non-string entries are
// stringified: numbers and bools verbatim, objects and arrays as compact JSON.
// A bare scalar becomes a one-element list and an object becomes its values.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*l = StringList{}
		} else {
			*l = StringList{single}
		}
		return nil
	}

	items, err := listItems(trimmed)
	if err != nil {
		return err
	}

	out := make(StringList, 0, len(items))
	for _, item := range items {
		var s flexString
		if err := s.UnmarshalJSON(item); err != nil {
			return err
		}
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		out = append(out, string(s))
	}
	*l = out
	return nil
}

// listItems returns the elements of a JSON array, the values of an object in
// key order, or the value itself for any other scalar.
func listItems(data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty list value")
	}
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			var v json.RawMessage
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid list value %q", data)
		}
		return []json.RawMessage{data}, nil
	}
}

// MarshalJSON always writes a list, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// flexString decodes strings as-is and scalars (numbers, booleans) as their
// JSON text, so a model answering "duration": 30 still yields "30".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return err
	}
	*f = flexString(compact.String())
	return nil
}
