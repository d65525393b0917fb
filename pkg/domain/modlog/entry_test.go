package modlog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	short := "great game"
	assert.Equal(t, short, TruncateContent(short))

	long := strings.Repeat("खेल", 300)
	truncated := TruncateContent(long)
	assert.Equal(t, MaxContentRunes, utf8.RuneCountInString(truncated))
	assert.True(t, utf8.ValidString(truncated))
	assert.True(t, strings.HasPrefix(long, truncated))
}
