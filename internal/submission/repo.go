package submission

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("submission not found")

type ListOpts struct {
	UserID string
	Limit  int
	Offset int
}

type Store interface {
	PutSubmission(ctx context.Context, s Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)
	ListSubmissions(ctx context.Context, opts ListOpts) ([]Submission, error)

	PutResult(ctx context.Context, r ResultRecord) error
	// GetResult looks up the result by its submission id.
	GetResult(ctx context.Context, submissionID string) (ResultRecord, error)
}
