package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PlazzaA/entrename/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	oneHour             = 60 * 60
	responseCacheExpire = oneHour * 1

	maxNewTokens = 200
	temperature  = 0.7
)

var ErrEmptyPrompt = errors.New("empty prompt")

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Client talks to the external text-generation service. It is constructed
// once at startup and injected where needed.
type Client struct {
	cache      *freecache.Cache
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Client{
		cache:      freecache.NewCache(cacheSize),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Generate sends the prompt to the inference service and returns the
// generated continuation, with the echoed prompt stripped from the output.
func (c *Client) Generate(ctx context.Context, prompt string) (generated string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chatClient.generate")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "generated")
		}
	}()

	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	cacheKey := []byte(prompt)
	if cachedBytes, err := c.cache.Get(cacheKey); err == nil {
		log.Tracef("found generated response in cache for prompt len %d", len(prompt))
		return string(cachedBytes), nil
	}

	reqBytes, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: maxNewTokens,
			Temperature:  temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, "POST",
		c.baseURL+"/generate",
		bytes.NewReader(reqBytes),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate response status %d: %s", resp.StatusCode, respBytes)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal generate response: %w", err)
	}

	// the model echoes the prompt before the continuation
	generated = strings.TrimPrefix(genResp.GeneratedText, prompt)
	generated = strings.TrimSpace(generated)

	if err := c.cache.Set(cacheKey, []byte(generated), responseCacheExpire); err != nil {
		log.Errorf("failed to cache generated response: %s", err)
	}

	return generated, nil
}
