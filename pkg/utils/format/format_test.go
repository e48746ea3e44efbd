package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, "1.5K", Number(1500))
	assert.Equal(t, "2.0M", Number(2000000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "héllo w...", Truncate("héllo wörld again", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
