// Package textutils provides text extraction helpers for bank statement descriptions.
package textutils

import (
	"regexp"
	"strings"
)

var (
	upiPattern = regexp.MustCompile(`(?i)^upi[/\-]([^/\-]+)`)
	posPattern = regexp.MustCompile(`(?i)^pos\s+(?:\d+\s+)?(.+)$`)
	atPattern  = regexp.MustCompile(`(?i)\b(?:at|chez)\s+(.+?)(?:\s+on\s+\S+)?$`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// ExtractMerchant attempts to extract a merchant name from a statement
// description such as "UPI/Swiggy/41234", "POS 4411 STARBUCKS" or
// "Card purchase at Migros on 2024-01-15". It returns "" when no known
// pattern matches.
func ExtractMerchant(description string) string {
	description = strings.TrimSpace(spaceRun.ReplaceAllString(description, " "))
	if description == "" {
		return ""
	}

	for _, re := range []*regexp.Regexp{upiPattern, posPattern, atPattern} {
		if matches := re.FindStringSubmatch(description); len(matches) > 1 {
			return strings.TrimSpace(matches[1])
		}
	}
	return ""
}
