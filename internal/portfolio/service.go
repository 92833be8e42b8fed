package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/gradestore"
	"github.com/portfolio-cards/gradecard/internal/journal"
)

// ErrIncomplete is returned when a form is submitted with a required field empty
var ErrIncomplete = errors.New("missing required field")

// Store is the grade store the service talks to
type Store interface {
	List(ctx context.Context) (grades.Set, error)
	Add(ctx context.Context, req gradestore.AddRequest) (grades.Set, error)
	Update(ctx context.Context, req gradestore.UpdateRequest) (grades.Set, error)
	Delete(ctx context.Context, req gradestore.DeleteRequest) error
}

// Recorder keeps a log of attempted mutations
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// AddInput is the raw content of the add form
type AddInput struct {
	Category string
	Subject  string
	Value    string
}

// EditInput is the raw content of the edit form
type EditInput struct {
	Category string
	Subject  string
	OldValue string
	NewValue string
}

// DeleteInput is the raw content of the delete form
type DeleteInput struct {
	Category string
	Subject  string
	Value    string
}

// Request validates the form and builds the store request
func (in AddInput) Request() (gradestore.AddRequest, error) {
	c, subject, err := parseTarget(in.Category, in.Subject)
	if err != nil {
		return gradestore.AddRequest{}, err
	}
	v, err := parseValue("valor", in.Value)
	if err != nil {
		return gradestore.AddRequest{}, err
	}
	return gradestore.AddRequest{Category: c, Subject: subject, Value: v}, nil
}

// Request validates the form and builds the store request
func (in EditInput) Request() (gradestore.UpdateRequest, error) {
	c, subject, err := parseTarget(in.Category, in.Subject)
	if err != nil {
		return gradestore.UpdateRequest{}, err
	}
	oldValue, err := parseValue("valorAntigo", in.OldValue)
	if err != nil {
		return gradestore.UpdateRequest{}, err
	}
	newValue, err := parseValue("novoValor", in.NewValue)
	if err != nil {
		return gradestore.UpdateRequest{}, err
	}
	return gradestore.UpdateRequest{Category: c, Subject: subject, OldValue: oldValue, NewValue: newValue}, nil
}

// Request validates the form and builds the store request
func (in DeleteInput) Request() (gradestore.DeleteRequest, error) {
	c, subject, err := parseTarget(in.Category, in.Subject)
	if err != nil {
		return gradestore.DeleteRequest{}, err
	}
	v, err := parseValue("valor", in.Value)
	if err != nil {
		return gradestore.DeleteRequest{}, err
	}
	return gradestore.DeleteRequest{Category: c, Subject: subject, Value: v}, nil
}

func parseTarget(category, subject string) (grades.Category, string, error) {
	if strings.TrimSpace(category) == "" {
		return "", "", fmt.Errorf("%w: tipo", ErrIncomplete)
	}
	if strings.TrimSpace(subject) == "" {
		return "", "", fmt.Errorf("%w: disciplina", ErrIncomplete)
	}
	c, err := grades.ParseCategory(category)
	if err != nil {
		return "", "", err
	}
	return c, subject, nil
}

func parseValue(field, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: %s", ErrIncomplete, field)
	}
	v, err := grades.ParseScore(text)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// Service runs the card operations against a store. Failures are logged;
// callers decide what, if anything, the user sees.
type Service struct {
	store   Store
	journal Recorder
	logger  *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithRecorder journals every mutation attempt that reaches the store
func WithRecorder(r Recorder) ServiceOption {
	return func(s *Service) {
		s.journal = r
	}
}

// NewService creates a service. A nil logger disables logging.
func NewService(store Store, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the grade set
func (s *Service) Load(ctx context.Context) (grades.Set, error) {
	set, err := s.store.List(ctx)
	if err != nil {
		s.logFailure("failed to load grades", err)
		return grades.Set{}, err
	}
	return set, nil
}

// Add validates the form and appends the score. The returned set is the full
// grade set after the change. Invalid input never reaches the store.
func (s *Service) Add(ctx context.Context, in AddInput) (grades.Set, error) {
	req, err := in.Request()
	if err != nil {
		s.logger.Warn("invalid add form", zap.Error(err))
		return grades.Set{}, err
	}

	set, err := s.store.Add(ctx, req)
	s.record(ctx, journal.Entry{
		Op:       journal.OpAdd,
		Category: req.Category,
		Subject:  req.Subject,
		Value:    req.Value,
	}, err)
	if err != nil {
		s.logFailure("failed to add grade", err)
		return grades.Set{}, err
	}
	return set, nil
}

// Edit validates the form and replaces the score. The returned set is the
// full grade set after the change.
func (s *Service) Edit(ctx context.Context, in EditInput) (grades.Set, error) {
	req, err := in.Request()
	if err != nil {
		s.logger.Warn("invalid edit form", zap.Error(err))
		return grades.Set{}, err
	}

	set, err := s.store.Update(ctx, req)
	newValue := req.NewValue
	s.record(ctx, journal.Entry{
		Op:       journal.OpEdit,
		Category: req.Category,
		Subject:  req.Subject,
		Value:    req.OldValue,
		NewValue: &newValue,
	}, err)
	if err != nil {
		s.logFailure("failed to edit grade", err)
		return grades.Set{}, err
	}
	return set, nil
}

// Delete validates the form and removes the score server-side. On success the
// request is returned so the caller can filter its local copy.
func (s *Service) Delete(ctx context.Context, in DeleteInput) (gradestore.DeleteRequest, error) {
	req, err := in.Request()
	if err != nil {
		s.logger.Warn("invalid delete form", zap.Error(err))
		return gradestore.DeleteRequest{}, err
	}

	err = s.store.Delete(ctx, req)
	s.record(ctx, journal.Entry{
		Op:       journal.OpDelete,
		Category: req.Category,
		Subject:  req.Subject,
		Value:    req.Value,
	}, err)
	if err != nil {
		s.logFailure("failed to delete grade", err)
		return gradestore.DeleteRequest{}, err
	}
	return req, nil
}

func (s *Service) record(ctx context.Context, e journal.Entry, opErr error) {
	if s.journal == nil {
		return
	}
	e.OK = opErr == nil
	if opErr != nil {
		e.Error = opErr.Error()
	}
	if err := s.journal.Record(ctx, e); err != nil {
		s.logger.Warn("failed to journal mutation", zap.String("op", string(e.Op)), zap.Error(err))
	}
}

func (s *Service) logFailure(msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	var statusErr *gradestore.StatusError
	if errors.As(err, &statusErr) {
		fields = append(fields,
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", statusErr.Body),
		)
	}
	s.logger.Error(msg, fields...)
}
