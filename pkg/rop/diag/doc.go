// Package diag provides the diagnostics log threaded through results and
// pipelines: an ordered, append-only list of timestamped, leveled entries.
//
// A Log never prints anything by itself. Presentation is left to callers,
// which can render a log as text (String), forward it to a zerolog.Logger
// (Emit, MarshalZerologArray) or serialize it as YAML.
//
// Key operations:
// - Info/Warn/Error (and the f variants): append an entry, blank messages are dropped
// - Append: copy another log's entries after the current ones
// - Merge: concatenate logs into a fresh log without aliasing any input
package diag
