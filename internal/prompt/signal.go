package prompt

import "strings"

// ContinuationSignal is the consented reply to a request for the go-ahead.
const ContinuationSignal = "I give the word. Do it now."

const continuationTrigger = "if you give the word, i'll"

// Reply returns ContinuationSignal when message asks for the go-ahead.
func Reply(message string) (string, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(message, "’", "'"))
	if strings.Contains(normalized, continuationTrigger) {
		return ContinuationSignal, true
	}
	return "", false
}
