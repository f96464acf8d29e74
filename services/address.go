package services

import (
	"strings"
	"unicode"
)

// Address is the street/city/postcode split of a cafe's address line.
type Address struct {
	Street   string
	City     string
	Postcode string
}

// ParseAddress splits an address line of the form
// "<street parts>, <city and postcode>, <country>" into its parts.
//
// The trailing segment is the country and is dropped. The segment before it
// holds the city and the postcode in any order; tokens are told apart with
// ClassifyAddressTokens, which only works for locales where postcodes always
// contain a digit and city names never do (true for the UK). Everything before
// that segment is the street, with any leftover country marker or repeated
// city name removed.
//
// ok is false when the line has no ", " separated country suffix.
func ParseAddress(text, countryMarker string) (addr Address, ok bool) {
	segments := strings.Split(normaliseText(text), ", ")
	if len(segments) < 2 {
		return Address{}, false
	}
	segments = segments[:len(segments)-1]

	postcodeTokens, cityTokens := ClassifyAddressTokens(strings.Fields(segments[len(segments)-1]))
	addr.Postcode = FormatPostcode(postcodeTokens)
	addr.City = strings.Join(cityTokens, " ")

	street := stripWord(strings.Join(segments[:len(segments)-1], " "), countryMarker)
	if addr.City != "" {
		street = strings.ReplaceAll(street, addr.City, "")
	}
	addr.Street = normaliseText(street)

	return addr, true
}

// ClassifyAddressTokens sorts whitespace separated tokens into postcode tokens
// (any token containing a digit) and city tokens (everything else), keeping
// their relative order.
func ClassifyAddressTokens(tokens []string) (postcode, city []string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if containsDigit(tok) {
			postcode = append(postcode, tok)
		} else {
			city = append(city, tok)
		}
	}
	return postcode, city
}

// FormatPostcode concatenates the postcode tokens and inserts a single space
// before the last three characters, the fixed-width inward code of a UK
// postcode. Inputs of three characters or fewer are returned unchanged.
func FormatPostcode(tokens []string) string {
	joined := []rune(strings.TrimSpace(strings.Join(tokens, "")))
	if len(joined) <= 3 {
		return string(joined)
	}
	cut := len(joined) - 3
	return string(joined[:cut]) + " " + string(joined[cut:])
}

// stripWord removes every whitespace separated occurrence of word from s.
func stripWord(s, word string) string {
	if word == "" {
		return s
	}
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, w := range fields {
		if w != word {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
