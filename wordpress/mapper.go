package wordpress

import (
	"bytes"
	"encoding/json"
)

// Text accepts both {"rendered": "..."} and a plain JSON string.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" || string(b) == "false" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var r struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*t = Text(r.Rendered)
	return nil
}

func (t Text) String() string { return string(t) }

// Fields is a loosely shaped JSON object. ACF serializes a record without
// fields as false or [], both decode to an empty map.
type Fields map[string]any

func (f *Fields) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*f = Fields{}
		return nil
	}
	m := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*f = m
	return nil
}

// MediaGroup decodes wp:attachment, which WordPress nests one level deep
// ([[...]]) because the relation is a collection link.
type MediaGroup []Media

func (g *MediaGroup) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*g = nil
		return nil
	}
	var nested [][]Media
	if err := json.Unmarshal(b, &nested); err == nil {
		var out []Media
		for _, list := range nested {
			out = append(out, list...)
		}
		*g = out
		return nil
	}
	var flat []Media
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	*g = flat
	return nil
}

// acfResponse is the acf/v3 single record envelope.
type acfResponse struct {
	ACF Fields `json:"acf"`
}
