// Package diag defines the core diagnostic model shared across the
// declaration loader, translator, and CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced while loading and translating declaration trees.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context, e.g.
//     pointing back at the first declaration of a name involved in a conflict.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Translator passes use a diag.Reporter to decouple emission from storage.
// A pass constructs a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo), chains WithNote as needed,
// and calls Emit.
//
// When no additional metadata is needed, a pass may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which supports
// sorting, deduplication, and merging. diag.DedupReporter wraps another
// Reporter and drops repeats of the same code/severity/span/message.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics into pretty/json/sarif formats.
//   - internal/driver collects per-source Bags and surfaces them to the CLI.
package diag
