package submission

// Submission is a stored grading request: the extracted rubric and answer
// text plus the requested strictness.
type Submission struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	RubricText string `json:"rubric_text"`
	AnswerText string `json:"answer_text"`
	Strictness int    `json:"strictness"`
	CreatedAt  int64  `json:"created_at"`
}

// ResultRecord is the persisted outcome of grading one submission.
type ResultRecord struct {
	ID              string  `json:"id"`
	SubmissionID    string  `json:"submission_id"`
	Score           float64 `json:"score"`
	TotalPoints     int     `json:"total_points"`
	Feedback        string  `json:"feedback"`
	GradingStandard string  `json:"grading_standard"`
	ParseStrategy   string  `json:"parse_strategy,omitempty"`
	GradedAt        int64   `json:"graded_at"`
}
