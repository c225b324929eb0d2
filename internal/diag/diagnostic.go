package diag

import (
	"schemac/internal/source"
)

// Note attaches a secondary span and message to a Diagnostic, e.g. to
// point back at a prior declaration involved in a conflict.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single reported error, warning, or informational message
// produced while translating a declaration tree into a schema.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
