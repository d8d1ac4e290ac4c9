package naming

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is an optional casing convention enforced on filename stems.
type Style string

// Supported naming styles.
const (
	StyleNone        Style = ""
	StyleCapitalized Style = "capitalized"
	StyleTitlecase   Style = "titlecase"
	StyleLowercase   Style = "lowercase"
	StyleUppercase   Style = "uppercase"
)

// StyleNames lists the selectable styles for help text.
var StyleNames = []string{
	string(StyleCapitalized),
	string(StyleTitlecase),
	string(StyleLowercase),
	string(StyleUppercase),
}

// ErrUnknownStyle indicates an unrecognized style name.
var ErrUnknownStyle = errors.New("unknown naming style")

// ParseStyle parses a style name, case-insensitively. The empty string
// parses to StyleNone.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return StyleNone, nil
	case string(StyleCapitalized):
		return StyleCapitalized, nil
	case string(StyleTitlecase):
		return StyleTitlecase, nil
	case string(StyleLowercase):
		return StyleLowercase, nil
	case string(StyleUppercase):
		return StyleUppercase, nil
	default:
		return StyleNone, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
}

var titleCaser = cases.Title(language.Und)

// apply transforms a filename stem according to the style.
func (s Style) apply(name string) string {
	switch s {
	case StyleCapitalized:
		return capitalize(name)
	case StyleTitlecase:
		return titleCaser.String(name)
	case StyleLowercase:
		return strings.ToLower(name)
	case StyleUppercase:
		return strings.ToUpper(name)
	default:
		return name
	}
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
