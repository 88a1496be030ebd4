package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

// sharedHTTPClient is used by all providers; a 5-minute timeout covers slow LLM responses.
var sharedHTTPClient = &http.Client{
	Timeout: 5 * time.Minute,
}

// defaultMaxTokens is the fallback when Request.MaxTokens is not set.
const defaultMaxTokens = 4096

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB

// Request holds the parameters for an LLM completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	// Model overrides the provider's configured model when non-empty.
	Model string
}

// Response holds the result of an LLM completion call.
type Response struct {
	Content string
	Model   string // actual model used, echoed back for meta
}

// Provider is the interface for LLM completion backends.
type Provider interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// StatusError is a non-200 reply from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Type       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: HTTP %d: %s: %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= 500:
		return true
	}
	return false
}

// IsTransient reports whether err is a network-class or retryable HTTP
// failure. Caller cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var te interface{ Transient() bool }
	if errors.As(err, &te) {
		return te.Transient()
	}
	return false
}

// post sends body as JSON to url and returns the raw response bytes on 200.
// Non-200 replies become *StatusError using errMsg to extract the provider's
// structured error, if any.
func post(ctx context.Context, provider, url string, headers map[string]string, body any, errMsg func([]byte) (string, string)) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := sharedHTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Provider: provider, StatusCode: resp.StatusCode}
		if typ, msg := errMsg(respBytes); msg != "" {
			se.Type, se.Message = typ, msg
		} else {
			se.Message = truncate(string(respBytes), 200)
		}
		return nil, se
	}
	return respBytes, nil
}

// NewProvider parses a "provider:model" string and returns the appropriate Provider.
// The API key is read from the environment at construction time and validated immediately.
// Example: "anthropic:claude-sonnet-4-6" or "openai:gpt-4o".
func NewProvider(providerModel string) (Provider, error) {
	parts := strings.SplitN(providerModel, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid model format %q: expected provider:model (e.g. anthropic:claude-sonnet-4-6)", providerModel)
	}
	switch parts[0] {
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return &anthropicProvider{model: parts[1], apiKey: apiKey}, nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return &openaiProvider{model: parts[1], apiKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: supported providers are anthropic, openai", parts[0])
	}
}

// truncate limits a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
