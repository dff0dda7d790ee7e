package build

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pcbuild/internal/llm"
	"pcbuild/internal/normalize"
)

const (
	msgPreferencesRequired = "Invalid request. User preferences are required."
	msgBudgetPositive      = "Budget must be greater than zero."
	msgCurrentBuild        = "A current build description is required."
	msgGoalsRequired       = "Improvement goals are required."
)

// Renderer converts an HTML document to PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type Service struct {
	client   llm.Client
	renderer Renderer
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(client llm.Client, renderer Renderer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		client:   client,
		renderer: renderer,
		logger:   logger,
		validate: newValidator(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateRequest checks the boundary invariants of a build request.
func (s *Service) ValidateRequest(req *BuildRequest) error {
	if req == nil {
		return &ValidationError{Field: "preferences", Msg: msgPreferencesRequired}
	}
	return s.check(req)
}

func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error()}
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Preferences":
		return &ValidationError{Field: "preferences", Msg: msgPreferencesRequired}
	case "Budget":
		return &ValidationError{Field: "budget", Msg: msgBudgetPositive}
	case "ImprovementGoals":
		return &ValidationError{Field: "improvementGoals", Msg: msgGoalsRequired}
	default:
		return &ValidationError{Field: fe.Field(), Msg: fe.Field() + " is invalid"}
	}
}

// backendBuild is the decode target for backend output. Identity and
// timestamp are assigned here, so whatever the backend put in those members
// is captured and discarded rather than allowed to fail the decode.
type backendBuild struct {
	BuildResponse
	GeneratedAt json.RawMessage `json:"generatedAt"`
	BuildID     json.RawMessage `json:"buildId"`
}

// GenerateBuild asks the backend for a build and normalizes the answer.
func (s *Service) GenerateBuild(ctx context.Context, req *BuildRequest) (*BuildResponse, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info("generating build",
		zap.String("purpose", req.Preferences.Purpose),
		zap.String("budget", req.Preferences.Budget.String()),
		zap.String("currency", req.Preferences.currency()),
	)

	raw, err := s.client.GenerateText(ctx, BuildPrompt(req))
	if err != nil {
		s.logger.Error("backend call failed", zap.String("provider", s.client.Provider()), zap.Error(err))
		return nil, err
	}

	parsed, err := normalize.Parse[backendBuild](raw, ResponseSchema)
	if err != nil {
		s.logParseFailure("build", err)
		return nil, err
	}

	resp := parsed.BuildResponse
	resp.BuildID = s.newID()
	resp.GeneratedAt = s.now().UTC()
	resp.Currency = req.Preferences.currency()

	s.logger.Info("generated build",
		zap.String("build_id", resp.BuildID),
		zap.Int("components", len(resp.Components)),
	)
	return &resp, nil
}

// SuggestUpgrades asks the backend for upgrades to an existing build.
func (s *Service) SuggestUpgrades(ctx context.Context, req *UpgradeRequest) (*UpgradeResponse, error) {
	if req == nil {
		return nil, &ValidationError{Field: "currentBuild", Msg: msgCurrentBuild}
	}

	current := strings.TrimSpace(req.CurrentBuild)
	if current == "" && req.Build != nil {
		current = ToText(req.Build)
	}
	if current == "" {
		return nil, &ValidationError{Field: "currentBuild", Msg: msgCurrentBuild}
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateText(ctx, UpgradePrompt(current, req.ImprovementGoals))
	if err != nil {
		s.logger.Error("backend call failed", zap.String("provider", s.client.Provider()), zap.Error(err))
		return nil, err
	}

	resp, err := normalize.Parse[UpgradeResponse](raw, UpgradeSchema)
	if err != nil {
		s.logParseFailure("upgrade", err)
		return nil, err
	}

	resp.UpgradeID = s.newID()
	resp.GeneratedAt = s.now().UTC()
	return resp, nil
}

func (s *Service) logParseFailure(what string, err error) {
	fields := []zap.Field{zap.String("target", what), zap.Error(err)}

	var rerr *normalize.ResponseError
	if errors.As(err, &rerr) {
		fields = append(fields,
			zap.String("kind", string(rerr.Kind)),
			zap.String("raw_prefix", rerr.Raw),
		)
	}
	s.logger.Error("backend response could not be normalized", fields...)
}

// RenderText renders the plain-text report.
func (s *Service) RenderText(r *BuildResponse) string {
	return ToText(r)
}

// RenderPDF renders the HTML report and converts it to PDF.
func (s *Service) RenderPDF(ctx context.Context, r *BuildResponse) ([]byte, error) {
	if s.renderer == nil {
		return nil, &RenderError{Format: "pdf", Err: errors.New("pdf renderer not configured")}
	}

	pdf, err := s.renderer.RenderPDF(ctx, ToHTML(r))
	if err != nil {
		s.logger.Error("pdf render failed", zap.String("build_id", r.BuildID), zap.Error(err))
		return nil, &RenderError{Format: "pdf", Err: err}
	}
	return pdf, nil
}
