package grading

// StrictnessProfile is a named grading standard. The Rules directives are
// injected verbatim into the system prompt.
type StrictnessProfile struct {
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

// DefaultStrictness is the level used when a request carries an unknown one.
const DefaultStrictness = 2

// The four standards form a gradient: level 1 rewards concepts and ignores
// presentation entirely, level 4 demands academic precision. Keep the
// ordering intact when editing rule text.
var strictnessProfiles = map[int]StrictnessProfile{
	1: {
		Level:       1,
		Name:        "Content Focus",
		Description: "Focus solely on content and understanding. Ignore spelling, grammar, and formatting issues.",
		Rules: []string{
			"Evaluate ONLY the core concepts and ideas",
			"COMPLETELY IGNORE all spelling mistakes",
			"COMPLETELY IGNORE all grammatical errors",
			"COMPLETELY IGNORE all formatting issues",
			"Give full credit for correct concepts even if poorly expressed",
			"If the core understanding is demonstrated, award full points",
			"Do not deduct points for any presentation issues",
		},
	},
	2: {
		Level:       2,
		Name:        "Standard",
		Description: "Balance between content and presentation. Minor errors have small impact.",
		Rules: []string{
			"Focus primarily on content accuracy (90% of score)",
			"Only deduct for spelling/grammar if it obscures meaning",
			"Consider clarity of expression but prioritize understanding",
			"Minor presentation issues should not affect score",
			"Be generous with partial credit",
		},
	},
	3: {
		Level:       3,
		Name:        "Strict",
		Description: "Thorough evaluation of both content and presentation.",
		Rules: []string{
			"Evaluate content accuracy rigorously",
			"Consider spelling of technical terms",
			"Consider grammar that affects clarity",
			"Expect proper formatting",
			"Deduct points for unclear explanations",
		},
	},
	4: {
		Level:       4,
		Name:        "Academic",
		Description: "Rigorous academic standard with high expectations for precision.",
		Rules: []string{
			"Demand complete and precise answers",
			"Require perfect spelling of technical terms",
			"Require proper grammar and punctuation",
			"Expect perfect formatting and structure",
			"Expect precise use of scientific notation/units",
			"Deduct points for any technical inaccuracies",
			"Require professional academic writing standards",
		},
	},
}

// Describe resolves a strictness level to its profile. Levels outside 1-4
// are not an error: they resolve to the Standard profile.
func Describe(level int) StrictnessProfile {
	if p, ok := strictnessProfiles[level]; ok {
		return p
	}
	return strictnessProfiles[DefaultStrictness]
}
