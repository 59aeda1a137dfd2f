package account

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "First National Bank",
			want:  "First National Bank",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "ampersand escaped",
			input: "Smith & Sons",
			want:  "Smith &amp; Sons",
		},
		{
			name:  "angle brackets escaped",
			input: "<script>alert(1)</script>",
			want:  "&lt;script&gt;alert(1)&lt;&#x2F;script&gt;",
		},
		{
			name:  "quotes escaped",
			input: `say "hi" and 'bye'`,
			want:  "say &quot;hi&quot; and &#x27;bye&#x27;",
		},
		{
			name:  "slash escaped",
			input: "either/or",
			want:  "either&#x2F;or",
		},
		{
			name:  "NUL byte removed",
			input: "abc\x00def",
			want:  "abcdef",
		},
		{
			name:  "control characters removed",
			input: "ab\x01\x02cd\x7fef",
			want:  "abcdef",
		},
		{
			name:  "newline tab and carriage return kept",
			input: "line1\nline2\tcol\r",
			want:  "line1\nline2\tcol",
		},
		{
			name:  "whitespace trimmed",
			input: "  padded  ",
			want:  "padded",
		},
		{
			name:  "not idempotent on escaped input",
			input: "&amp;",
			want:  "&amp;amp;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitizeText_NoUnescapedSpecials verifies that no dangerous
// character survives sanitization unescaped, for a range of inputs.
func TestSanitizeText_NoUnescapedSpecials(t *testing.T) {
	inputs := []string{
		"plain",
		"<b>&'\"/</b>",
		"a<b>c&d\"e'f/g",
		strings.Repeat("<>&\"'/", 50),
		"mixed \x00 control \x1f and <specials>",
	}

	for _, input := range inputs {
		out := SanitizeText(input)
		for _, c := range []string{"<", ">", `"`, "'", "/"} {
			if strings.Contains(out, c) {
				t.Errorf("SanitizeText(%q) left unescaped %q in %q", input, c, out)
			}
		}
		// Every & must be part of an entity we emitted.
		stripped := strings.NewReplacer(
			"&amp;", "", "&lt;", "", "&gt;", "", "&quot;", "", "&#x27;", "", "&#x2F;", "",
		).Replace(out)
		if strings.Contains(stripped, "&") {
			t.Errorf("SanitizeText(%q) left bare ampersand in %q", input, out)
		}
	}
}

func TestSanitizeSearchTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain term", "BankX", "BankX"},
		{"percent stripped", "%acc%", "acc"},
		{"underscore stripped", "acc_001", "acc001"},
		{"backslash stripped", `acc\001`, "acc001"},
		{"specials still escaped", "a&b%", "a&amp;b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSearchTerm(tt.input); got != tt.want {
				t.Errorf("SanitizeSearchTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeAccountNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"alphanumeric kept", "ACC001", "ACC001"},
		{"hyphen kept", "ACC-001", "ACC-001"},
		{"spaces removed", " ACC 001 ", "ACC001"},
		{"symbols removed", "ACC#001!@", "ACC001"},
		{"lowercase preserved", "acc001", "acc001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeAccountNumber(tt.input); got != tt.want {
				t.Errorf("SanitizeAccountNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"valid email unchanged", "alice@example.com", "alice@example.com"},
		{"plus and underscore kept", "a_b+tag@x.co", "a_b+tag@x.co"},
		{"angle brackets removed", "<alice@example.com>", "alice@example.com"},
		{"spaces removed", " alice @example.com ", "alice@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
