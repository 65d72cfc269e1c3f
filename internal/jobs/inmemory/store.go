package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/financehub/internal/jobs"
)

// Store keeps job state in memory. State is lost on restart; the API
// only needs it to answer status polls for recently enqueued exports.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.ExportUserJob
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*jobs.ExportUserJob)}
}

func (s *Store) SaveJob(ctx context.Context, job *jobs.ExportUserJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.ExportUserJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	jobCopy := *job
	return &jobCopy, nil
}

func (s *Store) ListJobs(ctx context.Context, filter jobs.Filter) ([]*jobs.ExportUserJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*jobs.ExportUserJob
	for _, job := range s.jobs {
		if filter.UserID != "" && job.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

var _ jobs.Store = (*Store)(nil)
