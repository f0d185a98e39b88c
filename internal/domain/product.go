package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is the canonical catalog item. Products are owned by the
// catalog store and mutated only through admin operations.
type Product struct {
	ID              int64    `json:"id" form:"id"`
	Name            string   `json:"name" form:"name"`
	Category        string   `json:"category" form:"category"`
	Price           float64  `json:"price" form:"price"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty" form:"originalPrice"`
	Description     string   `json:"description" form:"description"`
	FullDescription string   `json:"fullDescription,omitempty" form:"fullDescription"`
	Image           string   `json:"image" form:"image"`
	Rating          float64  `json:"rating" form:"rating"`
	Reviews         int      `json:"reviews" form:"reviews"`
	Badge           string   `json:"badge,omitempty" form:"badge"`
	Specs           SpecList `json:"specs"`
}

// LongDescription returns the full description, falling back to the
// short description when none was provided.
func (p *Product) LongDescription() string {
	if p.FullDescription != "" {
		return p.FullDescription
	}
	return p.Description
}

// Discounted reports whether the original price should be shown
// struck-through next to the current price.
func (p *Product) Discounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// SpecEntry is one free-form label/value attribute of a product,
// e.g. "Material" -> "Oak".
type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecList is an order-preserving label/value mapping. It serializes as
// a JSON object so the persisted form matches the legacy schema, but
// keeps entry order, which a Go map would not.
type SpecList []SpecEntry

func (s SpecList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *SpecList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specs: expected object, got %v", tok)
	}
	out := SpecList{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, SpecEntry{Key: key, Value: value})
	}
	*s = out
	return nil
}

// Get returns the value for a spec label, if present.
func (s SpecList) Get(key string) (string, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}
