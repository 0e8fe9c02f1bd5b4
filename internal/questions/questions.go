// Package questions provides the curated bank of system-design interview questions.
package questions

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// bank is the curated question set. Order is stable; selection is uniform.
var bank = []string{
	"Designing a URL Shortening Service like TinyURL",
	"Designing Pastebin",
	"Designing Instagram",
	"Designing Dropbox",
	"Designing Facebook Messenger",
	"Designing Twitter",
	"Designing Youtube or Netflix",
	"Designing Typeahead Suggestion",
	"Designing an API Rate Limiter",
	"Designing Twitter Search",
	"Designing a Web Crawler",
	"Designing Facebook's Newsfeed",
	"Designing Yelp or Nearby Friends",
	"Designing Uber backend",
	"Designing Ticketmaster",
}

// Random returns one question from the bank, selected uniformly.
func Random() string {
	return bank[rand.IntN(len(bank))]
}

// All returns a copy of the question bank.
func All() []string {
	out := make([]string, len(bank))
	copy(out, bank)
	return out
}

// Custom validates a user-supplied question and returns it trimmed.
// Blank input is rejected; the question text is otherwise taken verbatim.
func Custom(question string) (string, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return "", fmt.Errorf("custom question is required")
	}
	return trimmed, nil
}
