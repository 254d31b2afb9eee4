package grading

import "strings"

// Normalize clamps the parsed result into the caller's scale before it
// leaves the pipeline. The model is not trusted as the source of truth for
// total_points: the caller-computed value always wins, and the score is
// clamped into [0, totalPoints].
func Normalize(res Result, totalPoints int) Result {
	if totalPoints <= 0 {
		totalPoints = DefaultTotalPoints
	}
	res.TotalPoints = totalPoints

	if res.Score < 0 {
		res.Score = 0
	}
	if max := float64(totalPoints); res.Score > max {
		res.Score = max
	}

	if strings.TrimSpace(res.Feedback) == "" {
		res.Feedback = feedbackNotFound
	}
	return res
}
