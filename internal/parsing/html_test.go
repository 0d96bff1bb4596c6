package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Paragraphs become blank lines",
			input:    "<p>Hello</p><p>World</p>",
			expected: "Hello\n\nWorld",
		},
		{
			name:     "List items become lines",
			input:    "<ul><li>Go</li><li>Python</li></ul>",
			expected: "Go\nPython",
		},
		{
			name:     "Line breaks",
			input:    "first<br>second<br/>third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "Headings separate from body",
			input:    "<h2>About us</h2>We build things",
			expected: "About us\n\nWe build things",
		},
		{
			name:     "Divs become lines",
			input:    "<div>one</div><div>two</div>",
			expected: "one\ntwo",
		},
		{
			name:     "Inline tags vanish without newlines",
			input:    "a <strong>bold</strong> claim",
			expected: "a bold claim",
		},
		{
			name:     "Entities decode",
			input:    "Fish &amp; Chips &lt;fresh&gt; &quot;daily&quot;",
			expected: "Fish & Chips <fresh> \"daily\"",
		},
		{
			name:     "Non-breaking spaces collapse",
			input:    "pay:&nbsp;&nbsp;competitive",
			expected: "pay: competitive",
		},
		{
			name:     "Horizontal whitespace collapses",
			input:    "too   many\t\tspaces",
			expected: "too many spaces",
		},
		{
			name:     "Blank line runs collapse to one",
			input:    "<p>a</p><p></p><p></p><p>b</p>",
			expected: "a\n\nb",
		},
		{
			name:     "Scripts and styles are dropped",
			input:    "<p>visible</p><script>alert(1)</script><style>p{}</style>",
			expected: "visible",
		},
		{
			name:     "Plain text passes through",
			input:    "no markup here",
			expected: "no markup here",
		},
		{
			name:     "Leading and trailing whitespace trimmed",
			input:    "  <p> padded </p>  ",
			expected: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.input))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Run("Short text keeps ellipsis marker", func(t *testing.T) {
		assert.Equal(t, "short...", Excerpt("short"))
	})

	t.Run("Long text truncates to bounded prefix", func(t *testing.T) {
		long := strings.Repeat("a", 700)
		got := Excerpt(long)
		assert.Len(t, got, 503)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("Truncation counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("ü", 600)
		got := Excerpt(long)
		assert.Equal(t, strings.Repeat("ü", 500)+"...", got)
	})
}
