// Package recommender implements the auto order recommender on top of an OpenAI-compatible
// chat completions endpoint, guarded by a circuit breaker.
package recommender

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tastebud/config"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/service"
	"tastebud/internal/infra/metrics"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	breakerName = "recommender"

	defaultTimeout             = 30 * time.Second
	defaultConsecutiveFailures = 5
	defaultOpenTimeout         = 30 * time.Second
	maxResponseBytes           = 1 << 20
)

const systemPrompt = `You are a food ordering assistant.
You receive a user profile with per-dimension preference scores (positive means liked, negative or zero means not preferred)
and a list of candidate restaurants with their menus.
Choose exactly one restaurant from the list and one or more items from that restaurant's menu that best fit the user.
Respect allergens and the free-text memo. Only use ids that appear in the input.
Respond with a single JSON object and nothing else:
{"restaurant_id": <id>, "items": [{"item_id": <id>, "quantity": <positive integer>}], "comment": "<one short sentence explaining the choice>"}`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return "recommender http " + http.StatusText(e.StatusCode) + ": " + e.Body
}

// Client calls the chat completions endpoint once per recommendation. It never retries:
// a failed call surfaces to the caller and counts against the breaker.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	cb          *gobreaker.CircuitBreaker[[]byte]
	logger      *slog.Logger
}

var _ service.Recommender = (*Client)(nil)

// New builds the recommender client from the recommender config section.
func New(cfg *config.Config, logger *slog.Logger) (service.Recommender, error) {
	return NewClient(cfg.Recommender, logger)
}

// NewClient builds a Client from explicit settings.
func NewClient(cfg *config.RecommenderConfig, logger *slog.Logger) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("recommender baseUrl must be configured")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("recommender model must be configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = defaultConsecutiveFailures
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}

	metrics.RecommenderBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Recommender circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.RecommenderBreakerState.Set(stateToFloat(to))
		},
	})

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		cb:          cb,
		logger:      logger,
	}, nil
}

// Recommend sends the bundled context and catalog to the model and parses its proposal.
func (c *Client) Recommend(ctx context.Context, req *entity.RecommendationRequest) (*entity.Proposal, error) {
	start := time.Now()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode recommendation request")
	}

	raw, err := c.cb.Execute(func() ([]byte, error) {
		return c.complete(ctx, string(payload))
	})
	if err != nil {
		metrics.RecordRecommenderCall("unavailable", time.Since(start))
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domainerrors.ErrRecommenderUnavailable.WithDetails("circuit breaker is open")
		}

		return nil, domainerrors.ErrRecommenderUnavailable.WrapMessage(err.Error())
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Choices) == 0 {
		metrics.RecordRecommenderCall("malformed", time.Since(start))

		return nil, domainerrors.ErrRecommenderMalformed.WithDetails("response has no choices")
	}

	proposal, err := ParseProposal(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RecordRecommenderCall("malformed", time.Since(start))

		return nil, err
	}

	metrics.RecordRecommenderCall("ok", time.Since(start))

	return proposal, nil
}

func (c *Client) complete(ctx context.Context, userContent string) ([]byte, error) {
	temperature := c.temperature
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature:    &temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "recommender request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recommender response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpStatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 256)}
	}

	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
