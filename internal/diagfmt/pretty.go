package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"schemac/internal/diag"
	"schemac/internal/source"
)

var (
	prettyErrorColor   = color.New(color.FgRed, color.Bold)
	prettyWarningColor = color.New(color.FgYellow, color.Bold)
	prettyInfoColor    = color.New(color.FgCyan, color.Bold)
	prettyLocColor     = color.New(color.FgHiBlack)
	prettyCaretColor   = color.New(color.FgRed, color.Bold)
	prettyNoteColor    = color.New(color.FgHiBlack, color.Italic)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return prettyErrorColor
	case diag.SevWarning:
		return prettyWarningColor
	default:
		return prettyInfoColor
	}
}

// Pretty formats diagnostics for humans. It walks bag.Items() (callers are
// expected to have called bag.Sort() beforehand). Each entry is rendered as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	    <source line>
//	    <caret underline>
//
// followed by its notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		writePrettyEntry(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writePrettyNote(w, note, fs, opts)
			}
		}
	}
}

func writePrettyEntry(w io.Writer, sev diag.Severity, code diag.Code, msg string, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	path := resolvePath(fs, span, opts.PathMode)
	start, _ := fs.Resolve(span)

	sevLabel := sev.String()
	codeLabel := code.ID()
	if opts.Color {
		c := severityColor(sev)
		sevLabel = c.Sprint(sev.String())
		codeLabel = c.Sprint(code.ID())
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevLabel, codeLabel, msg)
	writeSourceContext(w, span, fs, opts)
}

func writePrettyNote(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	path := resolvePath(fs, note.Span, opts.PathMode)
	start, _ := fs.Resolve(note.Span)

	label := "note"
	msg := note.Msg
	if opts.Color {
		label = prettyNoteColor.Sprint("note")
		msg = prettyNoteColor.Sprint(note.Msg)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, label, msg)
	writeSourceContext(w, note.Span, fs, opts)
}

func writeSourceContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if opts.Width > 0 && uint8(len(line)) > opts.Width {
		line = line[:opts.Width]
	}

	width := end.Col - start.Col
	if width == 0 {
		width = 1
	}
	caret := strings.Repeat(" ", int(start.Col-1)) + strings.Repeat("^", int(width))
	if opts.Color {
		caret = prettyCaretColor.Sprint(caret)
	}

	fmt.Fprintf(w, "    %s\n    %s\n", line, caret)
}

func resolvePath(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
