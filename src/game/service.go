package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"512b.it/drawday/src/judge"
	"512b.it/drawday/src/models"
	"512b.it/drawday/src/targets"
	"512b.it/drawday/src/utils"
)

// Failure messages returned to clients
const (
	MsgNoTarget     = "No target found"
	MsgMissingImage = "Missing image or invalid target"
)

const defaultAttempt = 1

// Submission is a single drawing sent for judging
type Submission struct {
	ImageBase64 string
	Attempt     int
}

// Service selects the daily target and relays submissions to the judge
type Service struct {
	catalog *targets.Catalog
	judge   judge.Judge
	now     func() time.Time
	logger  *zap.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithClock overrides the time source used to pick the current target
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service over an immutable catalog
func NewService(catalog *targets.Catalog, j judge.Judge, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		judge:   j,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentTarget resolves the target for date, or for today (UTC) when date is nil
func (s *Service) CurrentTarget(date *time.Time) (string, targets.Target, bool) {
	day := s.now().UTC()
	if date != nil {
		day = date.UTC()
	}
	id := s.catalog.SelectID(day)
	t, ok := s.catalog.Lookup(id)
	return id, t, ok
}

// Target returns the public view of the target for date
func (s *Service) Target(date *time.Time) (models.TargetResponse, error) {
	id, t, ok := s.CurrentTarget(date)
	if !ok {
		return models.TargetResponse{}, notFound(MsgNoTarget)
	}
	return models.TargetResponse{
		TargetID:   id,
		PublicName: t.PublicName,
		Colour:     t.Colour,
		Category:   t.Category,
	}, nil
}

// Submit judges a drawing against today's target
func (s *Service) Submit(ctx context.Context, sub Submission) (models.SubmitResponse, error) {
	id, target, ok := s.CurrentTarget(nil)
	if sub.ImageBase64 == "" || !ok {
		return models.SubmitResponse{}, invalidRequest(MsgMissingImage)
	}

	image := utils.StripDataURIPrefix(sub.ImageBase64)
	req := judge.NewRequest(target.Prompt, target.Colour, target.Category, image)

	s.logger.Info("judging submission",
		zap.String("target_id", id),
		zap.Int("attempt", sub.Attempt),
		zap.Int("image_bytes", len(image)))

	text, err := s.judge.Complete(ctx, req)
	if err != nil {
		return models.SubmitResponse{}, internal(err)
	}

	fields := judge.ExtractJSON(text)
	if len(fields) == 0 {
		s.logger.Warn("judge returned no usable JSON", zap.String("target_id", id))
	}
	result, err := judge.Normalize(fields)
	if err != nil {
		return models.SubmitResponse{}, internal(fmt.Errorf("normalize judgment: %w", err))
	}

	return models.SubmitResponse{
		Success:          result.Correct,
		Score:            result.Score,
		Guess:            result.Guess,
		Category:         result.Category,
		ColorMatch:       result.ColorMatch,
		ShapeMatch:       result.ShapeMatch,
		StyleScore:       result.StyleScore,
		ExpectedCategory: target.Category,
		ExpectedColour:   target.Colour,
		TargetID:         id,
	}, nil
}

// ParseAttempt coerces the optional attempt field. Absent means the first attempt.
func ParseAttempt(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return defaultAttempt, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, internal(fmt.Errorf("decode attempt: %w", err))
	}
	if v == nil {
		return 0, internal(errors.New("attempt must be an integer, got null"))
	}
	n, err := utils.ToInt(v)
	if err != nil {
		return 0, internal(fmt.Errorf("attempt: %w", err))
	}
	return n, nil
}
