package utils

import (
	"github.com/goccy/go-json"
)

// MarshalJsonNoHTMLEspace marshals v without escaping <, > and &.
func MarshalJsonNoHTMLEspace(v any) ([]byte, error) {
	return json.MarshalWithOption(v, json.DisableHTMLEscape())
}

func MarshalIndentJsonNoHTMLEspace(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndentWithOption(v, prefix, indent, json.DisableHTMLEscape())
}
