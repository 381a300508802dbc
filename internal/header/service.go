// Package header provides the header assembler: it runs skills selection, profile generation
// and grounding for one job, and renders the assembled header as markdown.
package header

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/cv-tailor/internal/store"
	"github.com/jonathan/cv-tailor/internal/types"
)

// RunStatus is the lifecycle state of one generation run
type RunStatus string

// Run statuses
const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord is the persisted state of one generation run
type RunRecord struct {
	ID         string     `json:"id"`
	JobID      string     `json:"job_id,omitempty"`
	Status     RunStatus  `json:"status"`
	Tier       string     `json:"tier,omitempty"`
	Error      string     `json:"error,omitempty"`
	HeaderKey  string     `json:"header_key,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Service assembles headers and records every run in a key-value store
type Service struct {
	assembler *Assembler
	kv        store.KV
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a service over an assembler and a store
func NewService(assembler *Assembler, kv store.KV, logger zerolog.Logger) *Service {
	return &Service{
		assembler: assembler,
		kv:        kv,
		logger:    logger.With().Str("component", "header_service").Logger(),
		now:       time.Now,
	}
}

// Generate assembles the header for req. The run is recorded as running before assembly
// and moved to completed or failed afterwards; a completed run's header is stored under
// the job ID, or the run ID when the job has none.
func (s *Service) Generate(ctx context.Context, req Request) (*types.HeaderOutput, *RunRecord, error) {
	jobID := req.JobID
	if jobID == "" && req.Job != nil {
		jobID = req.Job.JobID
	}
	run := &RunRecord{
		ID:        uuid.NewString(),
		JobID:     jobID,
		Status:    RunRunning,
		StartedAt: s.now().UTC(),
	}
	if err := s.put(ctx, store.RunKey(run.ID), run); err != nil {
		return nil, nil, fmt.Errorf("failed to record run: %w", err)
	}

	h, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, run, err), err
	}

	data, err := h.JSON()
	if err != nil {
		err = fmt.Errorf("failed to encode header: %w", err)
		return nil, s.fail(ctx, run, err), err
	}
	key := store.HeaderKey(jobID)
	if jobID == "" {
		key = store.HeaderKey(run.ID)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		err = fmt.Errorf("failed to store header: %w", err)
		return nil, s.fail(ctx, run, err), err
	}

	done, err := s.finish(ctx, run.ID, func(r *RunRecord) {
		r.Status = RunCompleted
		r.Tier = h.Ensemble.Tier
		r.HeaderKey = key
	})
	if err != nil {
		return h, run, fmt.Errorf("failed to record run completion: %w", err)
	}
	s.logger.Debug().Str("run_id", run.ID).Str("header_key", key).Msg("run completed")
	return h, done, nil
}

// Run returns the record of a run
func (s *Service) Run(ctx context.Context, id string) (*RunRecord, error) {
	data, err := s.kv.Get(ctx, store.RunKey(id))
	if err != nil {
		return nil, err
	}
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return &run, nil
}

// Header returns the stored header of a job
func (s *Service) Header(ctx context.Context, jobID string) (*types.HeaderOutput, error) {
	data, err := s.kv.Get(ctx, store.HeaderKey(jobID))
	if err != nil {
		return nil, err
	}
	var h types.HeaderOutput
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to decode header %s: %w", jobID, err)
	}
	return &h, nil
}

// fail moves run to failed with cause. When that write fails too, the running record is returned.
func (s *Service) fail(ctx context.Context, run *RunRecord, cause error) *RunRecord {
	failed, err := s.finish(ctx, run.ID, func(r *RunRecord) {
		r.Status = RunFailed
		r.Error = cause.Error()
	})
	if err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to record run failure")
		return run
	}
	return failed
}

// finish moves a running record to a terminal status
func (s *Service) finish(ctx context.Context, id string, apply func(*RunRecord)) (*RunRecord, error) {
	var updated RunRecord
	err := s.kv.Update(ctx, store.RunKey(id), func(current []byte, exists bool) ([]byte, error) {
		if !exists {
			return nil, store.ErrNotFound
		}
		var run RunRecord
		if err := json.Unmarshal(current, &run); err != nil {
			return nil, err
		}
		if run.Status != RunRunning {
			return nil, fmt.Errorf("run %s is already %s", id, run.Status)
		}
		apply(&run)
		finished := s.now().UTC()
		run.FinishedAt = &finished
		updated = run
		return json.Marshal(run)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("run %s vanished: %w", id, err)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, data)
}
