package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type RecType string

const (
	RecTypeText RecType = "text"
	RecTypeFile RecType = "file"
)

func (RecType) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(RecTypeText),
			string(RecTypeFile),
		},
		Description: "Kind of the stored secret",
		Examples:    []any{RecTypeText},
	}
}

// Validate rejects unknown record types.
func (t RecType) Validate() error {
	switch t {
	case RecTypeText, RecTypeFile:
		return nil
	}
	return fmt.Errorf("%w: unknown record type %q", ErrInvalidData, t)
}

// String returns the wire value of the type.
func (t RecType) String() string {
	return string(t)
}

// DisplayName returns a human readable type name.
func (t RecType) DisplayName() string {
	switch t {
	case RecTypeText:
		return "Text"
	case RecTypeFile:
		return "File"
	default:
		return "Unknown"
	}
}
