package functions

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// builtins returns the stock case-mapping replace functions. Case
// mapping is Unicode-aware via x/text so non-ASCII scripts fold
// correctly.
func builtins() map[string]driven.ReplaceFunction {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	return map[string]driven.ReplaceFunction{
		"uppercase": New(func(m *domain.Match, _ string) string {
			return upper.String(m.Text())
		}),
		"lowercase": New(func(m *domain.Match, _ string) string {
			return lower.String(m.Text())
		}),
		"titlecase": New(func(m *domain.Match, _ string) string {
			return title.String(m.Text())
		}),
		"capitalize": New(func(m *domain.Match, _ string) string {
			return capitalize(m.Text())
		}),
		"swapcase": New(func(m *domain.Match, _ string) string {
			return strings.Map(swapRune, m.Text())
		}),
	}
}

// capitalize upper-cases the first letter and leaves the rest alone.
func capitalize(s string) string {
	for i, r := range s {
		return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

func swapRune(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}
