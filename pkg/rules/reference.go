package rules

import (
	"regexp"
	"strconv"
)

// Follow-up phrasings that point back at an entry of the last list:
//
//	"tell me more about 2"
//	"details for 2"
//	"more about 2"
//	"info on 2"
var rankReferencePattern = regexp.MustCompile(`(?:tell me more about|details for|more about|info on)\s+(\d+)`)

// ParseRankReference extracts the 1-based rank from a follow-up reference.
// The query must already be lower-cased. Numbers too large for an int are
// treated as no reference.
func ParseRankReference(q string) (int, bool) {
	m := rankReferencePattern.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return rank, true
}
