package transcript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/id"
)

// DefaultDir is where transcripts go when no directory is configured.
const DefaultDir = "report"

// maxPartLen bounds the name and email parts of a file name.
const maxPartLen = 64

// Writer stores transcripts as files in one directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir}
}

func (w *Writer) Dir() string {
	return w.dir
}

// Write creates the transcript file for s and returns its path. The file is
// created exclusively; a session that already has a transcript, or a name
// clash with an existing file, yields *AlreadyWrittenError.
func (w *Writer) Write(s *interview.Session, completedAt time.Time) (string, error) {
	if s.TranscriptPath != "" {
		return "", &AlreadyWrittenError{Path: s.TranscriptPath}
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	path := filepath.Join(w.dir, FileName(s, completedAt))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &AlreadyWrittenError{Path: path}
		}
		return "", fmt.Errorf("failed to create transcript: %w", err)
	}

	if err := Format(f, s, completedAt); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close transcript: %w", err)
	}

	return path, nil
}

// FileName is <name>_<email>_<YYYYMMDD_HHMMSS>_<id8>.txt, with "@" spelled
// "_at_" and every other run of non-alphanumerics collapsed to "_". Name and
// email are cut to maxPartLen each, keeping the result well under the
// 255-byte file name limit.
func FileName(s *interview.Session, completedAt time.Time) string {
	email := strings.ReplaceAll(s.Email, "@", "_at_")
	return fmt.Sprintf("%s_%s_%s_%s.txt",
		sanitize(s.Name, "candidate"),
		sanitize(email, "unknown"),
		completedAt.Format("20060102_150405"),
		id.Short(s.ID),
	)
}

func sanitize(s, fallback string) string {
	var b strings.Builder
	underscore := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}
	out := b.String()
	if len(out) > maxPartLen {
		out = out[:maxPartLen]
	}
	out = strings.Trim(out, "_")
	if out == "" {
		return fallback
	}
	return out
}
