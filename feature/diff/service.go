package diff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"symdiff/core/metrics"
	"symdiff/core/source"
	"symdiff/core/symdiff"

	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest is returned for requests that cannot be evaluated.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrLoad wraps failures to read a source.
	ErrLoad = errors.New("failed to load records")
)

// Service computes symmetric differences for the HTTP feature.
type Service struct {
	loader  *source.Loader
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new diff service. loader and m may be nil; requests
// naming a source then fail with source.ErrNotConfigured.
func NewService(loader *source.Loader, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:  loader,
		metrics: m,
		logger:  logger,
	}
}

// Diff resolves both sides of req and computes their symmetric difference.
func (s *Service) Diff(ctx context.Context, req Request) (*Report, error) {
	report, err := s.diff(ctx, req)
	if err != nil {
		s.metrics.ObserveComputation(outcome(err), 0, 0)
		return nil, err
	}
	return report, nil
}

func (s *Service) diff(ctx context.Context, req Request) (*Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	left, right, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveInputs(len(left), len(right))

	start := time.Now()
	entries, err := symdiff.ComputeEntries(req.Keys, left, right)
	if err != nil {
		return nil, err
	}
	took := time.Since(start)

	report := &Report{
		Keys:    req.Keys,
		Results: make([]symdiff.Record, len(entries)),
		Summary: Summary{
			LeftTotal:   len(left),
			RightTotal:  len(right),
			ResultTotal: len(entries),
		},
	}
	for i, e := range entries {
		report.Results[i] = e.Record
		if e.Side == symdiff.SideA {
			report.Summary.LeftOnly++
		} else {
			report.Summary.RightOnly++
		}
	}
	if req.Detailed {
		report.Entries = entries
	}

	s.metrics.ObserveComputation(metrics.OutcomeSuccess, took, len(entries))
	s.logger.Info("Symmetric difference computed",
		zap.Strings("keys", req.Keys),
		zap.Int("left", len(left)),
		zap.Int("right", len(right)),
		zap.Int("results", len(entries)),
		zap.Duration("took", took),
	)
	return report, nil
}

func validate(req Request) error {
	if req.Left != nil && req.LeftSource != "" {
		return fmt.Errorf("%w: left is given both inline and as a source", ErrInvalidRequest)
	}
	if req.Right != nil && req.RightSource != "" {
		return fmt.Errorf("%w: right is given both inline and as a source", ErrInvalidRequest)
	}
	for _, raw := range []string{req.LeftSource, req.RightSource} {
		if raw == "" {
			continue
		}
		loc, err := source.ParseLocation(raw)
		if err != nil {
			return err
		}
		// Local files are only readable from the CLI.
		if loc.Scheme == source.SchemeFile {
			return fmt.Errorf("%w: local file sources are not allowed: %s", ErrInvalidRequest, raw)
		}
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, req Request) ([]symdiff.Record, []symdiff.Record, error) {
	left, right := req.Left, req.Right
	if req.LeftSource == "" && req.RightSource == "" {
		return left, right, nil
	}
	if s.loader == nil {
		return nil, nil, source.ErrNotConfigured
	}

	var err error
	switch {
	case req.LeftSource != "" && req.RightSource != "":
		left, right, err = s.loader.LoadPair(ctx, req.LeftSource, req.RightSource, req.Keys)
	case req.LeftSource != "":
		left, err = s.loader.Load(ctx, req.LeftSource, req.Keys)
	default:
		right, err = s.loader.Load(ctx, req.RightSource, req.Keys)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return left, right, nil
}

func outcome(err error) string {
	if isInvalid(err) {
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func isInvalid(err error) bool {
	for _, target := range []error{
		ErrInvalidRequest,
		symdiff.ErrMissingField,
		symdiff.ErrUnsupportedValue,
		symdiff.ErrMixedKinds,
		source.ErrInvalidLocation,
		source.ErrUnsupportedFormat,
		source.ErrMalformed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
