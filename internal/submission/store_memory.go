package submission

import (
	"context"
	"sort"
	"sync"
)

// memoryStore keeps everything in process memory. Useful for tests and for
// running without a database.
type memoryStore struct {
	mu          sync.RWMutex
	submissions map[string]Submission
	results     map[string]ResultRecord // keyed by submission id
}

func NewInMemoryStore() Store {
	return &memoryStore{
		submissions: map[string]Submission{},
		results:     map[string]ResultRecord{},
	}
}

func (m *memoryStore) PutSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = s
	return nil
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, opts ListOpts) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		if opts.UserID != "" && s.UserID != opts.UserID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) PutResult(_ context.Context, r ResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.SubmissionID] = r
	return nil
}

func (m *memoryStore) GetResult(_ context.Context, submissionID string) (ResultRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[submissionID]
	if !ok {
		return ResultRecord{}, ErrNotFound
	}
	return r, nil
}
