package strings

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// WrapString - wraps the text by words. Words longer than maxLength are split.
func WrapString(v string, maxLength int) string {
	lines := strings.Split(wordwrap.WrapString(v, uint(maxLength)), "\n")
	res := make([]string, 0, len(lines))
	for _, s := range lines {
		for len(s) > maxLength {
			res = append(res, s[:maxLength])
			s = s[maxLength:]
		}
		res = append(res, s)
	}
	return strings.Join(res, "\n")
}

// WrapList - joins the items with ", " and wraps the result.
func WrapList(items []string, maxLength int) string {
	return WrapString(strings.Join(items, ", "), maxLength)
}
