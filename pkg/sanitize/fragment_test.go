package sanitize

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/venturemark/blogworker/pkg/gateway"
)

func Test_NewFragment(t *testing.T) {
	cover := "https://example.com/c.png"

	r := &gateway.Rendered{
		ID:    "1",
		Title: "Hello",
		Cover: &cover,
		Slug:  "hello",
		HTML:  `<p class="notion-paragraph">a</p><script>alert(1)</script>`,
	}

	expected := Fragment{
		ID:    "1",
		Title: "Hello",
		Cover: &cover,
		Slug:  "hello",
		HTML:  `<p class="notion-paragraph">a</p>`,
	}

	f := NewFragment(r)
	if !cmp.Equal(expected, f) {
		t.Fatal(cmp.Diff(expected, f))
	}
}

func Test_NewFragment_Normalization(t *testing.T) {
	testCases := []struct {
		html     string
		expected string
	}{
		// Case 0 turns the entity of an empty paragraph into the raw no-break
		// space.
		{
			html:     `<p class="notion-paragraph">&nbsp;</p>`,
			expected: "<p class=\"notion-paragraph\">\u00a0</p>",
		},
		// Case 1 uses the numeric apostrophe entity without padding.
		{
			html:     `<p class="notion-paragraph">it&#039;s</p>`,
			expected: `<p class="notion-paragraph">it&#39;s</p>`,
		},
	}

	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			f := NewFragment(&gateway.Rendered{HTML: tc.html})
			if !cmp.Equal(tc.expected, f.HTML) {
				t.Fatal(cmp.Diff(tc.expected, f.HTML))
			}
		})
	}
}

func Test_NewFragment_LinkRel(t *testing.T) {
	r := &gateway.Rendered{
		HTML: `<a href="https://example.com" target="_blank" rel="noopener noreferrer" class="notion-link">x</a>`,
	}

	f := NewFragment(r)
	if !strings.Contains(f.HTML, `rel="nofollow noreferrer noopener"`) {
		t.Fatalf("expected rewritten rel, got %s", f.HTML)
	}
	if !strings.Contains(f.HTML, `href="https://example.com"`) {
		t.Fatalf("expected link target to survive, got %s", f.HTML)
	}
}
