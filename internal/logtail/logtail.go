package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is a log severity as written by the logger.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelTokens = map[string]Level{
	"DEBU": LevelDebug, "DEBUG": LevelDebug,
	"INFO": LevelInfo,
	"WARN": LevelWarn,
	"ERRO": LevelError, "ERROR": LevelError,
	"FATA": LevelError, "FATAL": LevelError,
}

// ParseLevel maps a user-supplied level name ("debug", "warn", ...) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelUnknown, fmt.Errorf("unknown log level %q", name)
}

// LineLevel finds the level token among the leading fields of line. Indented
// lines are continuations of the entry above and never carry a level.
func LineLevel(line string) Level {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return LevelUnknown
	}
	fields := strings.Fields(line)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	for _, f := range fields {
		if lvl, ok := levelTokens[f]; ok {
			return lvl
		}
	}
	return LevelUnknown
}

// Filter keeps lines at or above minLevel. Lines without a level token are
// continuation lines and follow the verdict of the line before them.
func Filter(lines []string, minLevel Level) []string {
	if minLevel <= LevelDebug {
		return lines
	}
	var out []string
	keep := false
	for _, line := range lines {
		if lvl := LineLevel(line); lvl != LevelUnknown {
			keep = lvl >= minLevel
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

// ColorizeLine styles line by its level. Lines without a level are returned
// unchanged.
func ColorizeLine(line string) string {
	style, ok := levelStyles[LineLevel(line)]
	if !ok {
		return line
	}
	return style.Render(line)
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}
