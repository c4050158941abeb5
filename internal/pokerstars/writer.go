package pokerstars

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lox/pnconvert/internal/fileutil"
	"github.com/lox/pnconvert/internal/pokernow"
)

// HistoryWriter stores a converted hand history under a file name.
type HistoryWriter interface {
	WriteHistory(name string, lines []string) (string, error)
}

// FileHistoryWriter writes hand histories into a directory.
type FileHistoryWriter struct {
	directory string
}

// NewFileHistoryWriter creates a writer rooted at directory, which is
// created on first write.
func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteHistory atomically writes lines to name inside the directory and
// returns the full path.
func (w *FileHistoryWriter) WriteHistory(name string, lines []string) (string, error) {
	path := filepath.Join(w.directory, name)
	if err := fileutil.WriteLinesAtomic(path, lines, 0o644); err != nil {
		return "", fmt.Errorf("failed to write hand history: %w", err)
	}
	return path, nil
}

// StreamHistoryWriter writes hand histories to a stream, e.g. stdout.
type StreamHistoryWriter struct {
	w io.Writer
}

// NewStreamHistoryWriter creates a writer that prints every history to w.
func NewStreamHistoryWriter(w io.Writer) *StreamHistoryWriter {
	return &StreamHistoryWriter{w: w}
}

// WriteHistory prints lines and returns name unchanged.
func (w *StreamHistoryWriter) WriteHistory(name string, lines []string) (string, error) {
	for _, line := range lines {
		if _, err := io.WriteString(w.w, line+"\n"); err != nil {
			return "", err
		}
	}
	return name, nil
}

// ErrNoHands is returned when a game without hands is named or written.
var ErrNoHands = errors.New("no completed hands")

// FileName names the converted file after the first hand's start time,
// blinds and variant.
func FileName(g *pokernow.Game) (string, error) {
	if len(g.Hands) == 0 {
		return "", ErrNoHands
	}
	h := g.Hands[0]
	return fmt.Sprintf("ConvertedPNLog-%s-%s-%s-%s.txt",
		h.Start.Format("2006-01-02-1504"),
		strconv.FormatFloat(h.SmallBlindAmount(), 'f', -1, 64),
		strconv.FormatFloat(h.BigBlindAmount(), 'f', -1, 64),
		h.Variant), nil
}

// QualifiedFileName appends the stem of the source log to name, keeping the
// extension.
func QualifiedFileName(name, sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + stem + ext
}

// WriteGame formats g and stores it with w under name, or under FileName(g)
// when name is empty.
func WriteGame(w HistoryWriter, g *pokernow.Game, name string) (string, error) {
	if len(g.Hands) == 0 {
		return "", ErrNoHands
	}
	if name == "" {
		var err error
		if name, err = FileName(g); err != nil {
			return "", err
		}
	}
	lines, err := FormatGame(g)
	if err != nil {
		return "", err
	}
	return w.WriteHistory(name, lines)
}
