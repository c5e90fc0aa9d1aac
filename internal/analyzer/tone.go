package analyzer

import "strings"

// Tone classifies a feedback message for display
type Tone string

const (
	ToneGood    Tone = "good"
	ToneCaution Tone = "caution"
)

// ToneOf returns ToneGood for messages that start with "Good" or mention
// personalization, ToneCaution otherwise.
func ToneOf(message string) Tone {
	if strings.HasPrefix(message, "Good") || strings.Contains(message, "personalization") {
		return ToneGood
	}
	return ToneCaution
}
