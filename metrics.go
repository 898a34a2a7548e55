package loom

import "strings"

// CodeMetrics summarizes the shape of a generated source file.
type CodeMetrics struct {
	TotalLines    int
	NonEmptyLines int
	CommentLines  int
	MaxLineLength int
	AvgLineLength float64
}

// GetCodeMetrics computes line statistics for a piece of source text.
// Average length is taken over every line, blanks included.
func GetCodeMetrics(code string) CodeMetrics {
	lines := strings.Split(code, "\n")

	m := CodeMetrics{TotalLines: len(lines)}
	totalLen := 0
	for _, line := range lines {
		totalLen += len(line)
		if len(line) > m.MaxLineLength {
			m.MaxLineLength = len(line)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m.NonEmptyLines++
		if strings.HasPrefix(trimmed, "#") {
			m.CommentLines++
		}
	}
	// Split always yields at least one line.
	m.AvgLineLength = float64(totalLen) / float64(m.TotalLines)
	return m
}
