// Package manifest reads and writes topic manifest files: plain text, one
// image name per line, newline-terminated, no header and no escaping.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

const (
	filePrefix = "text"
	fileSuffix = ".txt"
	fileMode   = 0644
)

func FileName(topic int) string {
	return fmt.Sprintf("%s%d%s", filePrefix, topic, fileSuffix)
}

func Path(dir string, topic int) string {
	return filepath.Join(dir, FileName(topic))
}

// ParseFileName extracts the topic number from a manifest file name. Only
// the exact form FileName produces is accepted, so "text03.txt" or a number
// too large for an int never maps onto a topic.
func ParseFileName(name string) (int, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, filePrefix) || !strings.HasSuffix(base, fileSuffix) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(base, filePrefix), fileSuffix)
	topic, err := strconv.Atoi(digits)
	if err != nil || topic < 0 || FileName(topic) != base {
		return 0, false
	}
	return topic, true
}

// ReadLines returns every line of the manifest in file order. Lines are not
// trimmed; a trailing newline does not produce an extra empty line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.WrapNotFound(err, fmt.Sprintf("manifest %s", path))
		}
		return nil, apperrors.WrapStorage(err, fmt.Sprintf("read manifest %s", path))
	}
	return splitLines(string(data)), nil
}

func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// AppendLine adds name as the last line, creating the file if needed.
func AppendLine(path, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.WrapStorage(err, fmt.Sprintf("create manifest directory for %s", path))
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, fileMode)
	if err != nil {
		return apperrors.WrapStorage(err, fmt.Sprintf("open manifest %s for appending", path))
	}

	record := name + "\n"
	needsBreak, err := missingFinalNewline(f)
	if err != nil {
		f.Close()
		return apperrors.WrapStorage(err, fmt.Sprintf("inspect manifest %s", path))
	}
	if needsBreak {
		record = "\n" + record
	}

	if _, err := f.WriteString(record); err != nil {
		f.Close()
		return apperrors.WrapStorage(err, fmt.Sprintf("append to manifest %s", path))
	}
	if err := f.Close(); err != nil {
		return apperrors.WrapStorage(err, fmt.Sprintf("close manifest %s", path))
	}
	return nil
}

func missingFinalNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// WriteLines truncates the manifest and writes lines back in order.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), fileMode); err != nil {
		return apperrors.WrapStorage(err, fmt.Sprintf("rewrite manifest %s", path))
	}
	return nil
}

// Contains reports whether any line equals name byte for byte.
func Contains(lines []string, name string) bool {
	for _, line := range lines {
		if line == name {
			return true
		}
	}
	return false
}

// Remove drops every line equal to name and keeps the rest in order.
func Remove(lines []string, name string) ([]string, int) {
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if line == name {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	return kept, removed
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: image name cannot be empty", apperrors.ErrInvalid)
	}
	if strings.ContainsRune(name, '\n') {
		return fmt.Errorf("%w: image name cannot contain a newline", apperrors.ErrInvalid)
	}
	return nil
}
