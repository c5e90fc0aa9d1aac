package analyzer

import (
	"fmt"
	"strings"
)

// Rule names, in evaluation order
const (
	RuleLength          = "length"
	RuleEngagement      = "engagement"
	RuleSpam            = "spam"
	RuleAllCaps         = "all_caps"
	RuleSpecialChars    = "special_characters"
	RulePersonalization = "personalization"
	RuleCuriosity       = "curiosity"
	RuleUrgency         = "urgency"
)

// Feedback messages. Positive messages start with "Good" or mention
// personalization; ToneOf relies on that.
const (
	msgTooShort = "Subject line is too short. Aim for 20-60 characters. Try adding more descriptive words or a call to action."
	msgTooLong  = "Subject line is too long. Keep it under 60 characters. Try removing unnecessary words or simplifying your message."
	msgGoodLen  = "Good length! Your subject line is the optimal length for most email clients."

	msgEngagingFmt  = "Good use of engaging words: %s. These words can help increase open rates."
	msgNoEngagement = `Consider using some engaging words to increase open rates. Try incorporating words like "exclusive", "limited time", or "free" if appropriate.`

	msgSpamFmt = "Avoid spam trigger words: %s. These words can cause your email to be flagged as spam. Try rephrasing your subject line to avoid these terms."

	msgAllCaps = "Avoid using all caps as it may trigger spam filters and can come across as shouting. Try using sentence case instead."

	msgSpecialChars = "Too many special characters may trigger spam filters. Try limiting special characters to one or two for emphasis."

	msgPersonalized      = "Good use of personalization! Personalized subject lines can significantly increase open rates."
	msgNoPersonalization = "Consider adding personalization to your subject line. Using merge tags like {name} or {company} can increase engagement."

	msgCurious     = "Your subject line piques curiosity, which can boost open rates. Good job!"
	msgNoCuriosity = "Consider adding an element of curiosity to your subject line. Asking a question or hinting at valuable information can increase opens."

	msgUrgent    = "Your subject line creates a sense of urgency, which can motivate recipients to open the email."
	msgNoUrgency = `If appropriate, try adding a sense of urgency to your subject line. Words like "limited time" or "act now" can increase open rates.`
)

// rule is one named check. Evaluation order is the order of the rules table.
type rule struct {
	name string
	eval func(*Analyzer, subject) Check
}

var rules = []rule{
	{RuleLength, (*Analyzer).checkLength},
	{RuleEngagement, (*Analyzer).checkEngagement},
	{RuleSpam, (*Analyzer).checkSpam},
	{RuleAllCaps, (*Analyzer).checkAllCaps},
	{RuleSpecialChars, (*Analyzer).checkSpecialChars},
	{RulePersonalization, (*Analyzer).checkPersonalization},
	{RuleCuriosity, (*Analyzer).checkCuriosity},
	{RuleUrgency, (*Analyzer).checkUrgency},
}

// RuleNames returns the rule names in evaluation order
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

func (a *Analyzer) checkLength(s subject) Check {
	switch n := s.length(); {
	case n < MinLength:
		return Check{Delta: -10, Message: msgTooShort}
	case n > MaxLength:
		return Check{Delta: -10, Message: msgTooLong}
	default:
		return Check{Delta: 10, Message: msgGoodLen}
	}
}

func (a *Analyzer) checkEngagement(s subject) Check {
	if found := a.engagement.matches(s); len(found) > 0 {
		return Check{Delta: 5, Message: fmt.Sprintf(msgEngagingFmt, strings.Join(found, ", "))}
	}
	return Check{Delta: -5, Message: msgNoEngagement}
}

func (a *Analyzer) checkSpam(s subject) Check {
	if found := a.spam.matches(s); len(found) > 0 {
		return Check{Delta: -20, Message: fmt.Sprintf(msgSpamFmt, strings.Join(found, ", "))}
	}
	return Check{}
}

func (a *Analyzer) checkAllCaps(s subject) Check {
	if s.allCaps() {
		return Check{Delta: -10, Message: msgAllCaps}
	}
	return Check{}
}

func (a *Analyzer) checkSpecialChars(s subject) Check {
	if s.specialChars() > MaxSpecialChars {
		return Check{Delta: -5, Message: msgSpecialChars}
	}
	return Check{}
}

func (a *Analyzer) checkPersonalization(s subject) Check {
	if s.containsAny(mergeTags...) {
		return Check{Delta: 10, Message: msgPersonalized}
	}
	return Check{Message: msgNoPersonalization}
}

func (a *Analyzer) checkCuriosity(s subject) Check {
	if s.containsAny("?", "how", "why") {
		return Check{Delta: 5, Message: msgCurious}
	}
	return Check{Message: msgNoCuriosity}
}

func (a *Analyzer) checkUrgency(s subject) Check {
	if s.containsAny("limited", "soon", "now") {
		return Check{Delta: 5, Message: msgUrgent}
	}
	return Check{Message: msgNoUrgency}
}
