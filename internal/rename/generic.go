// Package rename rewrites generated client sources: it normalizes the class
// header, renames remote functions, applies pattern renames and adds
// parameter doc annotations.
package rename

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultPrefix is the prefix every generated function name carries
const DefaultPrefix = "sheetsSpreadsheets"

// ErrMissingPrefix is returned when a generated name lacks the expected prefix.
var ErrMissingPrefix = errors.New("name does not start with the generated prefix")

// GenericName derives a name of the form <verb><Noun> from a generated
// <prefix><Noun><Verb> name. The part after the first interior capital is
// moved to the front with its first letter lower-cased; a name with no
// interior capital is returned without the prefix.
func GenericName(name, prefix string) (string, error) {
	if !strings.HasPrefix(name, prefix) {
		return "", fmt.Errorf("%w: %q does not start with %q", ErrMissingPrefix, name, prefix)
	}
	rest := name[len(prefix):]

	for i, r := range rest {
		if i == 0 || !unicode.IsUpper(r) {
			continue
		}
		verb := rest[i:]
		first, size := utf8.DecodeRuneInString(verb)
		return string(unicode.ToLower(first)) + verb[size:] + rest[:i], nil
	}

	return rest, nil
}
