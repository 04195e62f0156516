package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyContentSet = "content_set"
	KeyVersion    = "version"
	KeyTree       = "tree"
	KeyDocID      = "doc_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ContentSet(id string) slog.Attr    { return slog.String(KeyContentSet, id) }
func Version(v string) slog.Attr        { return slog.String(KeyVersion, v) }
func Tree(name string) slog.Attr        { return slog.String(KeyTree, name) }
func DocID(id string) slog.Attr         { return slog.String(KeyDocID, id) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
