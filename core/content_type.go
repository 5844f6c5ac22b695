package core

import (
	"encoding/json"
	"fmt"
)

// ContentType is the dominant kind of content on a page.
type ContentType int

// The five content categories. The zero value is not a valid category.
const (
	ContentUnknown ContentType = iota
	ContentTextOnly
	ContentMixed
	ContentVisualHeavy
	ContentMinimal
	ContentBalanced
)

// ContentTypes lists every valid category in report order.
var ContentTypes = []ContentType{
	ContentTextOnly,
	ContentMixed,
	ContentVisualHeavy,
	ContentMinimal,
	ContentBalanced,
}

var contentTypeNames = map[ContentType]string{
	ContentTextOnly:    "text_only",
	ContentMixed:       "mixed_content",
	ContentVisualHeavy: "visual_heavy",
	ContentMinimal:     "minimal_content",
	ContentBalanced:    "balanced",
}

// String returns the snake_case category name.
func (c ContentType) String() string {
	if name, ok := contentTypeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether c is one of the five categories.
func (c ContentType) Valid() bool {
	_, ok := contentTypeNames[c]
	return ok
}

// ParseContentType maps a category name back to its ContentType.
func ParseContentType(s string) (ContentType, error) {
	for ct, name := range contentTypeNames {
		if name == s {
			return ct, nil
		}
	}
	return ContentUnknown, fmt.Errorf("unknown content type %q", s)
}

// MarshalJSON encodes the category by name.
func (c ContentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category name.
func (c *ContentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ct, err := ParseContentType(s)
	if err != nil {
		return err
	}
	*c = ct
	return nil
}
