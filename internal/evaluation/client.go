package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/logger"
)

// Result is a validated evaluate_photo answer. Pass is reported by the
// service and never recomputed from Rating.
type Result struct {
	Rating       int      `json:"rating"`
	Pass         bool     `json:"pass"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

// Config tunes the evaluation request.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the request settings used when none are configured.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.2}
}

// Client grades photos through an llm.Provider. Every Evaluate call makes
// at most one provider call.
type Client struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewClient creates a Client. Zero config fields take their defaults.
func NewClient(provider llm.Provider, cfg Config, log *logger.Logger) *Client {
	def := DefaultConfig()
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = def.Temperature
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{provider: provider, cfg: cfg, log: log}
}

// Evaluate grades photo (a data URI) against the lesson. Failures are
// always *Error.
func (c *Client) Evaluate(ctx context.Context, photo string, lc LessonContext) (*Result, error) {
	return c.EvaluateWithID(ctx, uuid.NewString(), photo, lc)
}

// EvaluateWithID is Evaluate with a caller-supplied request id used for
// log correlation.
func (c *Client) EvaluateWithID(ctx context.Context, requestID, photo string, lc LessonContext) (*Result, error) {
	log := c.log.With("request_id", requestID, "lesson", lc.Title)

	p, err := ParsePhoto(photo)
	if err != nil {
		log.Warn("photo rejected", "error", err)
		return nil, err
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: buildUserPrompt(lc),
			Images:  []llm.Image{p.Image()},
		}},
		Schema:      evaluatePhotoSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluation)
	ctx = llm.WithRequestID(ctx, requestID)

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		evalErr := classify(err)
		c.report(log, evalErr)
		return nil, evalErr
	}

	result, derr := decodeResult(resp.Content)
	if derr != nil {
		c.report(log, derr)
		return nil, derr
	}

	log.Info("photo evaluated",
		"rating", result.Rating, "pass", result.Pass, "model", resp.Model,
		"input_tokens", resp.Usage.InputTokens, "output_tokens", resp.Usage.OutputTokens)
	return result, nil
}

func (c *Client) report(log *logger.Logger, err *Error) {
	if err.Kind == KindProtocolError {
		log.Error("malformed evaluation response", "kind", err.Kind, "error", err.Err, "payload", string(err.Payload))
		return
	}
	log.Warn("evaluation failed", "kind", err.Kind, "error", err.Err)
}

// wireResult mirrors Result with pointers so absent fields are detectable.
type wireResult struct {
	Rating       *int     `json:"rating"`
	Pass         *bool    `json:"pass"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      *string  `json:"summary"`
}

// decodeResult parses the structured payload strictly. Unknown fields,
// missing fields and out-of-range values are protocol errors.
func decodeResult(raw json.RawMessage) (*Result, *Error) {
	protocol := func(err error) *Error {
		return &Error{Kind: KindProtocolError, Err: err, Payload: raw}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return nil, protocol(fmt.Errorf("decode %s: %w", ToolName, err))
	}

	switch {
	case w.Rating == nil, w.Pass == nil, w.Summary == nil, w.Strengths == nil, w.Improvements == nil:
		return nil, protocol(fmt.Errorf("%s: missing required field", ToolName))
	case *w.Rating < 1 || *w.Rating > 5:
		return nil, protocol(fmt.Errorf("rating %d out of range", *w.Rating))
	case len(w.Strengths) < 2 || len(w.Strengths) > 3:
		return nil, protocol(fmt.Errorf("expected 2-3 strengths, got %d", len(w.Strengths)))
	case len(w.Improvements) < 2 || len(w.Improvements) > 3:
		return nil, protocol(fmt.Errorf("expected 2-3 improvements, got %d", len(w.Improvements)))
	}

	return &Result{
		Rating:       *w.Rating,
		Pass:         *w.Pass,
		Strengths:    w.Strengths,
		Improvements: w.Improvements,
		Summary:      *w.Summary,
	}, nil
}
