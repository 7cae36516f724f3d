package links

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IsComment reports whether a trimmed input line is a comment.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// FilterLines trims each line and drops blanks and comments, preserving order.
func FilterLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || IsComment(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Read returns the filtered URL lines from r.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimPrefix(scanner.Text(), "\ufeff"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return FilterLines(lines), nil
}

// LoadFile reads a newline-separated URL file. The returned error wraps
// os.ErrNotExist when the file is missing.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer file.Close()
	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read url file %s: %w", path, err)
	}
	return lines, nil
}

// SplitArgs flattens command-line URL values that may hold several
// whitespace separated URLs.
func SplitArgs(values []string) []string {
	var out []string
	for _, value := range values {
		out = append(out, strings.Fields(value)...)
	}
	return FilterLines(out)
}
