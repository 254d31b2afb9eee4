package submission

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutSubmission(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id,user_id,rubric_text,answer_text,strictness,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		sub.ID, sub.UserID, sub.RubricText, sub.AnswerText, sub.Strictness, sub.CreatedAt)
	return err
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,rubric_text,answer_text,strictness,created_at FROM submissions WHERE id=$1`, id)
	var sub Submission
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.RubricText, &sub.AnswerText, &sub.Strictness, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, opts ListOpts) ([]Submission, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT id,user_id,rubric_text,answer_text,strictness,created_at FROM submissions`
	args := []interface{}{}
	if opts.UserID != "" {
		q += ` WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, opts.UserID, limit, opts.Offset)
	} else {
		q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.RubricText, &sub.AnswerText, &sub.Strictness, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutResult(ctx context.Context, r ResultRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grading_results (id,submission_id,score,total_points,feedback,grading_standard,parse_strategy,graded_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.SubmissionID, r.Score, r.TotalPoints, r.Feedback, r.GradingStandard, r.ParseStrategy, r.GradedAt)
	return err
}

func (s *SQLStore) GetResult(ctx context.Context, submissionID string) (ResultRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,submission_id,score,total_points,feedback,grading_standard,parse_strategy,graded_at
		 FROM grading_results WHERE submission_id=$1`, submissionID)
	var r ResultRecord
	if err := row.Scan(&r.ID, &r.SubmissionID, &r.Score, &r.TotalPoints, &r.Feedback, &r.GradingStandard, &r.ParseStrategy, &r.GradedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResultRecord{}, ErrNotFound
		}
		return ResultRecord{}, err
	}
	return r, nil
}
