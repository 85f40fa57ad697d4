package scoring

import (
	"regexp"
	"strings"

	"lead_scoring_backend/internal/leads/domain"
)

// Classification is an intent with the explanation backing it.
type Classification struct {
	Intent      domain.Intent `json:"intent"`
	Explanation string        `json:"explanation"`
	Source      string        `json:"-"`
}

// intentRule matches when any of anyOf matches and none of noneOf does.
type intentRule struct {
	anyOf  []*regexp.Regexp
	noneOf []*regexp.Regexp
	intent domain.Intent
}

func (r intentRule) matches(text string) bool {
	for _, re := range r.noneOf {
		if re.MatchString(text) {
			return false
		}
	}
	for _, re := range r.anyOf {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	labelHigh   = regexp.MustCompile(`(?i)\bIntent\s*:\s*High\b`)
	labelMedium = regexp.MustCompile(`(?i)\bIntent\s*:\s*Medium\b`)
	labelLow    = regexp.MustCompile(`(?i)\bIntent\s*:\s*Low\b`)
	wordHigh    = regexp.MustCompile(`(?i)\bHigh\b`)
	wordMedium  = regexp.MustCompile(`(?i)\bMedium\b`)
	wordLow     = regexp.MustCompile(`(?i)\bLow\b`)

	explanationLine = regexp.MustCompile(`(?i)Explanation\s*:\s*([\s\S]*)`)
)

// intentRules is evaluated top to bottom; the first match wins. Text that
// mentions both High and Low skips the bare-High rule and lands on Medium or
// Low, which is the established behaviour.
var intentRules = []intentRule{
	{anyOf: []*regexp.Regexp{labelHigh}, intent: domain.IntentHigh},
	{anyOf: []*regexp.Regexp{wordHigh}, noneOf: []*regexp.Regexp{wordLow}, intent: domain.IntentHigh},
	{anyOf: []*regexp.Regexp{labelMedium, wordMedium}, intent: domain.IntentMedium},
	{anyOf: []*regexp.Regexp{labelLow, wordLow}, intent: domain.IntentLow},
}

// ParseResponse turns free classifier text into a Classification. It never
// fails: unrecognised or empty text yields Low.
func ParseResponse(text string) Classification {
	out := Classification{Intent: domain.IntentLow}
	if text == "" {
		return out
	}
	out.Intent = classifyText(text)
	out.Explanation = extractExplanation(text)
	return out
}

func classifyText(text string) domain.Intent {
	for _, rule := range intentRules {
		if rule.matches(text) {
			return rule.intent
		}
	}
	return domain.IntentLow
}

func extractExplanation(text string) string {
	if m := explanationLine.FindStringSubmatch(text); m != nil && m[1] != "" {
		rest := strings.TrimSpace(m[1])
		first, _, _ := strings.Cut(rest, "\n")
		return first
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	switch {
	case len(lines) > 1:
		return lines[1]
	case len(lines) == 1:
		return lines[0]
	default:
		return ""
	}
}
