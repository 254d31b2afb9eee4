package grading

import (
	"regexp"
	"strconv"
)

// DefaultTotalPoints is assumed when a question carries no point annotation.
const DefaultTotalPoints = 10

// Matches parenthesized point annotations such as "(10 points)", "(5 pts)",
// "(20 marks)" or "(3 mks)".
var totalPointsRe = regexp.MustCompile(`(?i)\((\d+)[\s,]*(?:points|pts|marks|mks)\)`)

// ExtractTotalPoints pulls a point total out of free-form question or answer
// text. The first annotation wins; multiple annotations are not reconciled.
// Absence or a failed parse yields DefaultTotalPoints, never an error.
func ExtractTotalPoints(text string) int {
	m := totalPointsRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultTotalPoints
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultTotalPoints
	}
	return n
}
