package models

import "encoding/json"

// ImageURL resolves a project image value to a single display URL. Stored
// values are polymorphic: a bare URL string or a single-element array holding
// the URL, either as decoded Go values or as raw JSON bytes from the jsonb
// column. When a sequence is seen, the first element wins.
func ImageURL(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case []any:
		if len(v) == 0 {
			return ""
		}
		return ImageURL(v[0])
	case []byte:
		return imageURLFromJSON(v)
	case json.RawMessage:
		return imageURLFromJSON(v)
	}
	return ""
}

func imageURLFromJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Not JSON at all: legacy rows stored the URL as plain text.
		return string(raw)
	}
	return ImageURL(decoded)
}
