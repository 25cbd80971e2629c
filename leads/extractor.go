// api/leads/extractor.go
package leads

import (
	"regexp"
	"strings"

	"cristalclean/api/models"
)

// Phone formats vary wildly across the customer base (Swiss national,
// French, international dialing prefixes), so the extractor tries a
// tier of patterns per message instead of one unified regex. A single
// general pattern both over- and under-matches prefixed numbers.
var phonePatterns = []*regexp.Regexp{
	// International: +41 79 123 45 67, +33 6 12 34 56 78
	regexp.MustCompile(`\+\d{1,3}[\s.\-]?\d(?:[\s.\-]?\d){7,12}`),
	// International with 00 prefix: 0041 79 123 45 67
	regexp.MustCompile(`00\d{1,3}[\s.\-]?\d(?:[\s.\-]?\d){7,12}`),
	// Swiss national: 079 123 45 67
	regexp.MustCompile(`0\d{2}[\s.\-]?\d{3}[\s.\-]?\d{2}[\s.\-]?\d{2}`),
	// Bare digit runs
	regexp.MustCompile(`\d{10,14}`),
	// Punctuated groups: 06.12.34.56.78
	regexp.MustCompile(`\d{2,4}(?:[\s.\-]\d{2,4}){2,5}`),
}

var (
	separators   = regexp.MustCompile(`[\s.\-]`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// ExtractPhone scans the visitor's messages in order. Within a message
// it collects every candidate across all patterns, strips separators,
// keeps candidates of plausible length and takes the longest survivor.
// The first message that yields a survivor wins; later messages are not
// considered even if they hold a longer number. Returns "" if nothing
// plausible is found.
func ExtractPhone(messages []models.ChatMessage) string {
	for _, m := range messages {
		if m.Sender != "user" {
			continue
		}
		var best string
		for _, re := range phonePatterns {
			for _, match := range re.FindAllString(m.Message, -1) {
				stripped := separators.ReplaceAllString(match, "")
				digits := strings.TrimPrefix(stripped, "+")
				if len(digits) < 9 || len(digits) > 15 {
					continue
				}
				if len(stripped) > len(best) {
					best = stripped
				}
			}
		}
		if best != "" {
			return best
		}
	}
	return ""
}

// ExtractEmail returns the first address found in the first user
// message carrying one, or "".
func ExtractEmail(messages []models.ChatMessage) string {
	for _, m := range messages {
		if m.Sender != "user" {
			continue
		}
		if match := emailPattern.FindString(m.Message); match != "" {
			return match
		}
	}
	return ""
}
