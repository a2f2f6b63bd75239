package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// maxLangCodeLength bounds candidate codes; RFC 5646 recommends 35.
const maxLangCodeLength = 35

// NormalizeCode trims raw and reports whether it is a usable language code:
// non-empty, at most 35 bytes, free of path characters and a well-formed
// BCP 47 tag. The trimmed input is returned unchanged otherwise, since codes
// must match translation file names exactly.
func NormalizeCode(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	if code == "" || len(code) > maxLangCodeLength {
		return "", false
	}
	if strings.ContainsAny(code, `/\.:`) || strings.ContainsRune(code, 0) {
		return "", false
	}
	if _, err := language.Parse(code); err != nil {
		return "", false
	}
	return code, true
}
