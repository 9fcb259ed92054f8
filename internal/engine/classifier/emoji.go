package classifier

import "strings"

// Reaction emoji the scoring rules care about. The ballot emoji keep their
// variation selector because the platform delivers them that way.
const (
	emojiThumbsUp       = "\U0001F44D" // 👍
	emojiBallotBox      = "\U0001F5F3️"
	emojiBallotBoxCheck = "☑️"
)

// NormalizeReactionEmoji strips a trailing modifier codepoint (skin tone or
// variation selector) from a reaction emoji. The truncation is deliberately
// fixed-length: a two-rune reaction is treated as base emoji plus modifier.
func NormalizeReactionEmoji(emoji string) string {
	runes := []rune(emoji)
	if len(runes) == 2 {
		return string(runes[:1])
	}
	return emoji
}

// ParseSnowflakes extracts platform IDs from message content: any
// whitespace-delimited token that still has at least 16 characters after
// stripping non-digits is treated as an ID.
func ParseSnowflakes(content string) []string {
	var ids []string
	for _, token := range strings.Fields(content) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, token)
		if len(digits) >= 16 {
			ids = append(ids, digits)
		}
	}
	return ids
}

// hasToken reports whether content contains the word as a whitespace-delimited token.
func hasToken(content, word string) bool {
	for _, token := range strings.Fields(content) {
		if token == word {
			return true
		}
	}
	return false
}
