package grading

import (
	"fmt"
	"strings"
)

// Request is a single grading call.
type Request struct {
	AnswerText      string `json:"answer_text"`
	RubricText      string `json:"rubric_text"`
	StrictnessLevel int    `json:"strictness_level"`
}

// Prompt is the system/user message pair sent to the model. Built, sent,
// discarded.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt assembles the grading prompt. The computed total is inlined in
// the expected JSON shape so the model cannot invent its own scale, and the
// standard's name appears in both messages to reduce drift.
func BuildPrompt(req Request, profile StrictnessProfile, totalPoints int) Prompt {
	var rules strings.Builder
	for _, r := range profile.Rules {
		fmt.Fprintf(&rules, "- %s\n", r)
	}

	system := fmt.Sprintf(`You are an expert exam grader using the %s grading standard. Your task is to:
1. Grade the student's answer based on the provided rubric
2. Provide a score out of %d points
3. Give detailed feedback explaining the grading
4. Be objective and consistent in your grading
5. Format your response as JSON with 'score', 'total_points', and 'feedback' fields

Grading Standard: %s

IMPORTANT GRADING RULES - YOU MUST FOLLOW THESE EXACTLY:
%s
Additional Notes:
- For Content Focus level, if the student demonstrates understanding, they should receive full points regardless of presentation
- Only Academic level should care about spelling/grammar
- Be willing to give 100%% scores when deserved
- Don't be unnecessarily harsh with grading`,
		profile.Name, totalPoints, profile.Description, rules.String())

	user := fmt.Sprintf(`Please grade this answer based on the rubric provided:

Rubric:
%s

Student's Answer:
%s

Remember to follow the %s grading standard as specified.

Provide your response in the following JSON format:
{
    "score": <numeric_score>,
    "total_points": %d,
    "feedback": "<detailed_feedback>"
}`,
		req.RubricText, req.AnswerText, profile.Name, totalPoints)

	return Prompt{System: system, User: user}
}
