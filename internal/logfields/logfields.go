package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyHash       = "hash"
	KeyBytes      = "bytes"
	KeyCount      = "count"
	KeySlug       = "slug"
	KeyToken      = "token"
	KeyTemplate   = "template"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Hash(h string) slog.Attr           { return slog.String(KeyHash, h) }
func Bytes(n int) slog.Attr             { return slog.Int(KeyBytes, n) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Slug(s string) slog.Attr           { return slog.String(KeySlug, s) }
func Token(t string) slog.Attr          { return slog.String(KeyToken, t) }
func Template(name string) slog.Attr    { return slog.String(KeyTemplate, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
