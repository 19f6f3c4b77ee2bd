// Package tagger stamps exported artifacts with a durable idempotency tag.
// The tag lives in the first line of the artifact as `file_id: "<uuid>"` and
// is mirrored back into the source document by the caller, so a document is
// never processed into duplicate records.
package tagger

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Marker matches the tag line. The value group may be empty, which counts as
// "marker present but unassigned".
var markerRe = regexp.MustCompile(`(?i)^file[ _]id:\s*"([^"]*)"\s*$`)

// MarkerLine renders the tag line for a given tag value.
func MarkerLine(tag string) string {
	return fmt.Sprintf("file_id: %q", tag)
}

// Tagger reads and rewrites tag lines in artifact files.
type Tagger struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Tagger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tagger{logger: logger}
}

// EnsureTag guarantees the artifact at path carries a tag and returns it.
// assigned reports whether a new tag was generated on this call; when true
// the artifact has been rewritten in place and the caller must mirror the
// tag into the source document.
func (t *Tagger) EnsureTag(path string) (tag string, assigned bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("open artifact: %w", err)
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	first := ""
	if len(lines) > 0 {
		first = strings.TrimSpace(lines[0])
	}

	if m := markerRe.FindStringSubmatch(first); m != nil {
		if m[1] != "" {
			t.logger.Debug("tagger.existing", "tag", m[1])
			return m[1], false, nil
		}
		// Marker present but empty: fill it in place.
		tag = uuid.NewString()
		lines[0] = MarkerLine(tag)
	} else {
		// No marker at all: prepend a new first line.
		tag = uuid.NewString()
		lines = append([]string{MarkerLine(tag)}, lines...)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		return "", false, fmt.Errorf("rewrite artifact: %w", err)
	}
	t.logger.Info("tagger.assigned", "tag", tag, "path", path)
	return tag, true, nil
}
