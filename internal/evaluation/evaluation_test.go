package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/aperture/internal/catalog"
	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/logger"
)

const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func sampleLesson() LessonContext {
	return LessonContext{
		Title:      "Rule of Thirds",
		Category:   "Composition",
		Assignment: "Photograph a subject placed on a third line.",
		Criteria:   []string{"Subject sits on a third line", "Horizon is not centered"},
	}
}

func validResult() json.RawMessage {
	return json.RawMessage(`{"rating":4,"pass":true,"strengths":["a","b"],"improvements":["c","d"],"summary":"Nice."}`)
}

func TestParsePhoto(t *testing.T) {
	p, err := ParsePhoto(tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", p.MediaType)
	assert.Greater(t, p.Size, 0)
	assert.Equal(t, tinyPNG, p.Image().DataURI())

	jpg, err := ParsePhoto("data:image/jpg;base64,/9j/4AAQ")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", jpg.MediaType)
}

func TestParsePhoto_Invalid(t *testing.T) {
	tests := map[string]string{
		"plain text":       "not-an-image",
		"non-image type":   "data:text/plain;base64,aGVsbG8=",
		"unsupported type": "data:image/bmp;base64,Qk0=",
		"empty payload":    "data:image/png;base64,",
		"bad base64":       "data:image/png;base64,***",
		"missing base64":   "data:image/png,iVBORw0KGgo=",
		"empty string":     "",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePhoto(in)
			require.Error(t, err)
			assert.Equal(t, KindInvalidInput, KindOf(err))
		})
	}
}

func TestEncodeFile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "shot.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	uri, err := EncodeFile(png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	_, err = ParsePhoto(uri)
	require.NoError(t, err)

	heic := filepath.Join(dir, "shot.HEIC")
	require.NoError(t, os.WriteFile(heic, []byte("\x00\x00\x00\x18ftypheic\x00\x00\x00\x00"), 0o644))
	uri, err = EncodeFile(heic)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/heic;base64,"))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just some notes"), 0o644))
	_, err = EncodeFile(txt)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	empty := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = EncodeFile(empty)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	_, err = EncodeFile(filepath.Join(dir, "missing.jpg"))
	assert.Equal(t, KindInvalidInput, KindOf(err))

	_, err = EncodeFile(dir)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestBuildUserPrompt(t *testing.T) {
	want := "Lesson: \"Rule of Thirds\" (Composition)\n" +
		"Assignment: Photograph a subject placed on a third line.\n\n" +
		"Grading criteria:\n" +
		"1. Subject sits on a third line\n" +
		"2. Horizon is not centered\n" +
		"\nPlease evaluate this student's photo submission against these criteria."
	assert.Equal(t, want, buildUserPrompt(sampleLesson()))
}

func TestContextFor(t *testing.T) {
	l, ok := catalog.Default().Get("rule-of-thirds")
	require.True(t, ok)

	lc := ContextFor(l)
	assert.Equal(t, l.Title, lc.Title)
	assert.Equal(t, "Composition", lc.Category)
	assert.Equal(t, l.Criteria, lc.Criteria)

	lc.Criteria[0] = "changed"
	assert.NotEqual(t, "changed", l.Criteria[0])
}

func TestClient_Evaluate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validResult()})
	c := NewClient(mock, Config{}, nil)

	res, err := c.Evaluate(context.Background(), tinyPNG, sampleLesson())
	require.NoError(t, err)
	assert.Equal(t, &Result{
		Rating:       4,
		Pass:         true,
		Strengths:    []string{"a", "b"},
		Improvements: []string{"c", "d"},
		Summary:      "Nice.",
	}, res)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Contains(t, req.System, "3 stars: Meets the basic requirements (passing grade)")
	require.NotNil(t, req.Schema)
	assert.Equal(t, "evaluate_photo", req.Schema.Name)
	require.Len(t, req.Messages, 1)
	require.Len(t, req.Messages[0].Images, 1)
	assert.Equal(t, "image/png", req.Messages[0].Images[0].MediaType)
	assert.Equal(t, 1024, req.MaxTokens)
}

func TestClient_SuccessReturnsNilError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validResult()},
		llm.MockResponse{Content: json.RawMessage(`{"rating":4}`)},
	)
	c := NewClient(mock, Config{}, logger.FromZap(zap.New(core)))

	res, err := c.Evaluate(context.Background(), tinyPNG, sampleLesson())
	assert.True(t, err == nil, "expected an untyped nil error, got %#v", err)
	require.NotNil(t, res)
	assert.Equal(t, 1, logs.FilterMessage("photo evaluated").Len())
	assert.Zero(t, logs.FilterMessage("malformed evaluation response").Len())

	res, err = c.Evaluate(context.Background(), tinyPNG, sampleLesson())
	assert.Nil(t, res)
	var evalErr *Error
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, KindProtocolError, evalErr.Kind)
}

func TestClient_PassIsTrustedFromService(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rating":2,"pass":true,"strengths":["a","b"],"improvements":["c","d"],"summary":"s"}`),
	})
	res, err := NewClient(mock, Config{}, nil).Evaluate(context.Background(), tinyPNG, sampleLesson())
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, 2, res.Rating)
}

func TestClient_InvalidInputMakesNoCall(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validResult()})
	_, err := NewClient(mock, Config{}, nil).Evaluate(context.Background(), "not-an-image", sampleLesson())

	var evalErr *Error
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, KindInvalidInput, evalErr.Kind)
	assert.Equal(t, 0, mock.CallCount())
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{"rate limited", &llm.ErrRateLimit{}, KindRateLimited, "Rate limit exceeded. Please try again in a moment."},
		{"quota", &llm.ErrQuotaExhausted{}, KindQuotaExhausted, "AI credits exhausted. Please add more credits."},
		{"protocol", &llm.ErrInvalidResponse{Err: errors.New("no tool call")}, KindProtocolError, msgGeneric},
		{"truncated", &llm.ErrMaxTokensExceeded{}, KindProtocolError, msgGeneric},
		{"service", &llm.ErrProviderUnavailable{StatusCode: 500}, KindServiceError, msgGeneric},
		{"transport", context.DeadlineExceeded, KindServiceError, msgGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: tt.err})
			_, err := NewClient(mock, Config{}, nil).Evaluate(context.Background(), tinyPNG, sampleLesson())
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, tt.message, UserMessage(err))
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestDecodeResult_Rejects(t *testing.T) {
	tests := map[string]string{
		"extra field":       `{"rating":4,"pass":true,"strengths":["a","b"],"improvements":["c","d"],"summary":"s","mood":"x"}`,
		"missing pass":      `{"rating":4,"strengths":["a","b"],"improvements":["c","d"],"summary":"s"}`,
		"missing summary":   `{"rating":4,"pass":true,"strengths":["a","b"],"improvements":["c","d"]}`,
		"rating too low":    `{"rating":0,"pass":false,"strengths":["a","b"],"improvements":["c","d"],"summary":"s"}`,
		"rating too high":   `{"rating":6,"pass":true,"strengths":["a","b"],"improvements":["c","d"],"summary":"s"}`,
		"one strength":      `{"rating":4,"pass":true,"strengths":["a"],"improvements":["c","d"],"summary":"s"}`,
		"four improvements": `{"rating":4,"pass":true,"strengths":["a","b"],"improvements":["c","d","e","f"],"summary":"s"}`,
		"not json":          `nope`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeResult(json.RawMessage(raw))
			require.NotNil(t, err)
			assert.Equal(t, KindProtocolError, err.Kind)
			assert.Equal(t, raw, string(err.Payload))
		})
	}
}

func TestClient_LogsProtocolErrorsAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"rating":9}`)},
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
	)
	c := NewClient(mock, Config{}, logger.FromZap(zap.New(core)))

	_, err := c.Evaluate(context.Background(), tinyPNG, sampleLesson())
	require.Error(t, err)
	_, err = c.Evaluate(context.Background(), tinyPNG, sampleLesson())
	require.Error(t, err)

	protocol := logs.FilterMessage("malformed evaluation response").All()
	require.Len(t, protocol, 1)
	assert.Equal(t, zapcore.ErrorLevel, protocol[0].Level)
	assert.Equal(t, `{"rating":9}`, protocol[0].ContextMap()["payload"])

	failed := logs.FilterMessage("evaluation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestOfflineResponse(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = OfflineResponse
	res, err := NewClient(mock, Config{}, nil).Evaluate(context.Background(), tinyPNG, sampleLesson())
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, 4, res.Rating)
}
