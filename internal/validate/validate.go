package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// EAN-8 through GTIN-14; EAN-13 is what the scanners send
	reBarcode  = regexp.MustCompile(`^[0-9]{8,14}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)
	reKey      = regexp.MustCompile(`^([0-9]|Backspace|Enter|Ctrl\+P)$`)
)

// Barcode reports whether s looks like a scannable product code.
func Barcode(s string) bool {
	return reBarcode.MatchString(s)
}

// Username trims s and checks it against the allowed account name charset.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Digit parses a single keypad digit.
func Digit(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, false
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Key validates a keyboard shortcut name sent by the terminal page.
func Key(s string) (string, bool) {
	return s, reKey.MatchString(s)
}
