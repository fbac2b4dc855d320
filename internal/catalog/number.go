package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// CardNumber is a card number split into its series prefix and collection number.
type CardNumber struct {
	Prefix           string
	CollectionNumber int
}

// Canonical renders PREFIX-NNN.
func (n CardNumber) Canonical() string {
	return fmt.Sprintf("%s-%03d", n.Prefix, n.CollectionNumber)
}

// SplitCardNumber takes the trailing digit block as the collection number and the
// text before the first hyphen as the prefix, so "LOB-EN001" yields {LOB, 1}.
// ok is false when the number carries no digits.
func SplitCardNumber(number string) (CardNumber, bool) {
	number = strings.TrimSpace(number)

	end := strings.LastIndexFunc(number, isDigit)
	if end < 0 {
		prefix, _, _ := strings.Cut(number, "-")
		return CardNumber{Prefix: prefix}, false
	}
	start := strings.LastIndexFunc(number[:end+1], func(r rune) bool { return !isDigit(r) }) + 1

	value, err := strconv.Atoi(number[start : end+1])
	if err != nil {
		value = 0
	}
	prefix, _, _ := strings.Cut(number[:start], "-")

	return CardNumber{Prefix: prefix, CollectionNumber: value}, true
}

// CanonicalNumber returns the PREFIX-NNN form of number, or the trimmed number
// itself when it has no digit block.
func CanonicalNumber(number string) (string, int) {
	parts, ok := SplitCardNumber(number)
	if !ok {
		return strings.TrimSpace(number), 0
	}
	return parts.Canonical(), parts.CollectionNumber
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
