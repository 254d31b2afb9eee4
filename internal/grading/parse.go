package grading

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// ParseStrategy tags which step of the fallback chain produced a result, so
// callers can tell a clean grading from a degraded one.
type ParseStrategy int

const (
	ParseDirect   ParseStrategy = iota // whole reply was valid JSON
	ParseEmbedded                      // JSON object extracted from surrounding prose
	ParseScraped                       // fields regex-scraped from invalid JSON
	ParseFallback                      // nothing usable; half-credit default
)

func (s ParseStrategy) String() string {
	switch s {
	case ParseDirect:
		return "direct"
	case ParseEmbedded:
		return "embedded"
	case ParseScraped:
		return "scraped"
	case ParseFallback:
		return "fallback"
	}
	return "unknown"
}

// Result is the pipeline's sole output artifact.
type Result struct {
	Score           float64       `json:"score"`
	TotalPoints     int           `json:"total_points"`
	Feedback        string        `json:"feedback"`
	GradingStandard string        `json:"grading_standard,omitempty"`
	Strategy        ParseStrategy `json:"-"`
}

const (
	// fallbackScore is deliberately half credit, not zero: a failed parse
	// says nothing about the answer's quality.
	fallbackScore = 5

	feedbackNotFound = "Feedback not found"
	parseFailNote    = "Could not parse grader response; raw model output follows.\n"
)

var (
	scrapeScoreRe    = regexp.MustCompile(`"score"\s*:\s*(-?\d+(?:\.\d+)?)`)
	scrapeFeedbackRe = regexp.MustCompile(`"feedback"\s*:\s*"([^"]+)"`)
)

// ParseResponse turns the model's free-text reply into a Result. It never
// fails: direct JSON, then an embedded object, then field scraping, and as
// a last resort a half-credit default that keeps the raw reply verbatim in
// the feedback so a grader can still audit what the model said.
func ParseResponse(raw string, totalPoints int) Result {
	if res, ok := parseObject(raw, totalPoints); ok {
		res.Strategy = ParseDirect
		return res
	}

	if span, ok := braceSpan(raw); ok {
		if res, ok := parseObject(span, totalPoints); ok {
			res.Strategy = ParseEmbedded
			return res
		}
	}

	if res, ok := scrapeFields(raw, totalPoints); ok {
		res.Strategy = ParseScraped
		return res
	}

	return Result{
		Score:       fallbackScore,
		TotalPoints: totalPoints,
		Feedback:    parseFailNote + raw,
		Strategy:    ParseFallback,
	}
}

// parseObject succeeds when s is a JSON object containing a score key.
func parseObject(s string, totalPoints int) (Result, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &payload); err != nil {
		return Result{}, false
	}
	rawScore, ok := payload["score"]
	if !ok {
		return Result{}, false
	}

	res := Result{Score: coerceScore(rawScore), TotalPoints: totalPoints}
	if fb, ok := payload["feedback"]; ok {
		var text string
		if json.Unmarshal(fb, &text) == nil {
			res.Feedback = text
		}
	}
	if res.Feedback == "" {
		res.Feedback = feedbackNotFound
	}
	return res, true
}

// coerceScore accepts a JSON number or a numeric string; anything else gets
// the half-credit default.
func coerceScore(raw json.RawMessage) float64 {
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return fallbackScore
}

// braceSpan returns the outermost {...} span, covering replies that wrap the
// JSON in prose or a code fence.
func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// scrapeFields regex-extracts score and feedback independently of JSON
// validity. A score match is required; feedback is best effort.
func scrapeFields(raw string, totalPoints int) (Result, bool) {
	m := scrapeScoreRe.FindStringSubmatch(raw)
	if m == nil {
		return Result{}, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		score = fallbackScore
	}
	res := Result{Score: score, TotalPoints: totalPoints, Feedback: feedbackNotFound}
	if fm := scrapeFeedbackRe.FindStringSubmatch(raw); fm != nil {
		res.Feedback = fm[1]
	}
	return res, true
}
