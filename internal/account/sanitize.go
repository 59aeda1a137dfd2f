package account

// sanitize.go normalizes free-text and search input before it enters the
// core. All four functions are pure and total: empty input yields empty
// output, and no input can produce an error.
//
// Sanitization is applied exactly once, at the boundary where a value
// enters the system (ingestion line parse, update payload application,
// search term handling). Stored values are never re-sanitized: SanitizeText
// is not idempotent, so running it twice would double-escape "&amp;" into
// "&amp;amp;".

import (
	"strings"
	"unicode"
)

// SanitizeText strips NUL and control characters (except newline, carriage
// return, and tab), HTML-escapes the characters & < > " ' /, and trims
// leading and trailing whitespace.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		case '/':
			b.WriteString("&#x2F;")
		case '\n', '\r', '\t':
			b.WriteRune(r)
		default:
			if unicode.IsControl(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeSearchTerm strips pattern-matching metacharacters (%, _, and
// backslash) before applying SanitizeText, so search input cannot widen or
// break a substring match.
func SanitizeSearchTerm(s string) string {
	if s == "" {
		return ""
	}
	replacer := strings.NewReplacer("%", "", "_", "", `\`, "")
	return SanitizeText(replacer.Replace(s))
}

// SanitizeAccountNumber retains only alphanumerics and hyphens.
func SanitizeAccountNumber(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeEmail retains only characters valid in an email address:
// alphanumerics and @ . - _ +.
func SanitizeEmail(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r == '@', r == '.', r == '-', r == '_', r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}
