package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCodeMetrics(t *testing.T) {
	code := "# header\nx = 1\n\ny = 22\n"

	m := GetCodeMetrics(code)
	assert.Equal(t, 5, m.TotalLines)
	assert.Equal(t, 3, m.NonEmptyLines)
	assert.Equal(t, 1, m.CommentLines)
	assert.Equal(t, 8, m.MaxLineLength)
	assert.InDelta(t, 19.0/5.0, m.AvgLineLength, 0.01)
}

func TestGetCodeMetrics_AverageCountsBlankLines(t *testing.T) {
	m := GetCodeMetrics("x = 1\n\ny = 22")
	assert.Equal(t, 3, m.TotalLines)
	assert.Equal(t, 2, m.NonEmptyLines)
	assert.InDelta(t, 11.0/3.0, m.AvgLineLength, 0.01)
}

func TestGetCodeMetrics_EmptyInput(t *testing.T) {
	m := GetCodeMetrics("")
	assert.Equal(t, 1, m.TotalLines)
	assert.Equal(t, 0, m.NonEmptyLines)
	assert.Equal(t, 0.0, m.AvgLineLength)
}

func TestGetCodeMetrics_IndentedComment(t *testing.T) {
	m := GetCodeMetrics("    # note")
	assert.Equal(t, 1, m.CommentLines)
}
