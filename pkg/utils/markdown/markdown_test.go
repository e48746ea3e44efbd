package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescription_Empty(t *testing.T) {
	d := NewDescription("   ")
	require.Equal(t, "", string(d.HTML()))
	require.Equal(t, "", d.PlainText())
}

func TestDescription_HTML_Sanitizes(t *testing.T) {
	d := NewDescription("hello <script>alert(1)</script> **world**")

	out := string(d.HTML())
	require.NotContains(t, strings.ToLower(out), "<script")
	require.Contains(t, out, "<strong>world</strong>")

	// caching path
	require.Equal(t, out, string(d.HTML()))
}

func TestDescription_HTML_Autolinks(t *testing.T) {
	d := NewDescription("Full video:\nhttps://example.com/watch")

	out := string(d.HTML())
	require.Contains(t, out, `href="https://example.com/watch"`)
	require.Contains(t, out, `rel="nofollow`)
	require.Contains(t, out, "<br")
}

func TestDescription_PlainText(t *testing.T) {
	d := NewDescription("hello **world**\n\nTom & Jerry")

	require.Equal(t, "hello world Tom & Jerry", d.PlainText())
}

func TestDescription_Summary(t *testing.T) {
	d := NewDescription("one two three four")

	require.Equal(t, "one two three four", d.Summary(100))
	require.LessOrEqual(t, len([]rune(d.Summary(8))), 8)
}
