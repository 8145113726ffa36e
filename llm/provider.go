package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/h2non/filetype"

	"infogen/common"
	"infogen/misc"
)

const (
	// callTimeout bounds a single provider round trip.
	callTimeout = 15 * time.Second
	// maxTries is the per model attempt cap, backoff doubles between tries.
	maxTries = 3
	// maxResponseBytes caps how much of a provider response we read.
	maxResponseBytes = 8 << 20
)

// Sentinels classifying provider failures. Rate limits retry the same model,
// everything else moves down the chain.
var (
	errRateLimited = errors.New("rate limited")
	errUnavailable = errors.New("service unavailable")
)

// Chat completions wire format. Every provider in the table accepts it.
type (
	chatRequest struct {
		Model          string          `json:"model"`
		Messages       []chatMessage   `json:"messages"`
		Temperature    float64         `json:"temperature"`
		MaxTokens      int             `json:"max_tokens,omitempty"`
		ResponseFormat *responseFormat `json:"response_format,omitempty"`
		PromptCacheKey string          `json:"prompt_cache_key,omitempty"`
	}
	chatMessage struct {
		Role string `json:"role"`
		// Content is a string for text only turns and []contentPart when
		// images are attached.
		Content any `json:"content"`
	}
	contentPart struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *imageURL `json:"image_url,omitempty"`
	}
	imageURL struct {
		URL string `json:"url"`
	}
	responseFormat struct {
		Type string `json:"type"`
	}
	chatResponse struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int64 `json:"prompt_tokens"`
			CompletionTokens int64 `json:"completion_tokens"`
		} `json:"usage"`
	}
)

// call performs one provider round trip and prices the result.
func (g *Gateway) call(ctx context.Context, m Model, req *Request) (*Response, error) {
	key := g.getenv(m.KeyEnv)
	if key == "" {
		return nil, fmt.Errorf("model %s: %s is not set", m.ID, m.KeyEnv)
	}

	body, err := json.Marshal(buildChat(m, req))
	if err != nil {
		return nil, fmt.Errorf("model %s: encoding request: %w", m.ID, err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.ID, err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Authorization", "Bearer "+key)
	hreq.Header.Set("User-Agent", misc.GetAppName()+"/"+misc.GetVersion())

	started := time.Now()
	hres, err := g.client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.ID, err)
	}
	defer hres.Body.Close()

	switch {
	case hres.StatusCode == http.StatusTooManyRequests:
		drain(hres.Body)
		return nil, fmt.Errorf("model %s: %w", m.ID, errRateLimited)
	case hres.StatusCode >= 500:
		drain(hres.Body)
		return nil, fmt.Errorf("model %s: status %d: %w", m.ID, hres.StatusCode, errUnavailable)
	case hres.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(hres.Body, 512))
		return nil, fmt.Errorf("model %s: status %d: %s", m.ID, hres.StatusCode, bytes.TrimSpace(msg))
	}

	var cres chatResponse
	if err := json.NewDecoder(io.LimitReader(hres.Body, maxResponseBytes)).Decode(&cres); err != nil {
		return nil, fmt.Errorf("model %s: decoding response: %w", m.ID, err)
	}
	if len(cres.Choices) == 0 || cres.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("model %s: empty completion", m.ID)
	}

	resp := &Response{
		Content:      cres.Choices[0].Message.Content,
		Model:        m.ID,
		InputTokens:  cres.Usage.PromptTokens,
		OutputTokens: cres.Usage.CompletionTokens,
		CostUSD:      m.Cost(cres.Usage.PromptTokens, cres.Usage.CompletionTokens),
		LatencyMS:    time.Since(started).Milliseconds(),
	}
	if !m.PromptCache && req.System != "" {
		resp.Warnings.Add(common.WarnPromptCacheUnavailable,
			"model %s does not cache the shared system prefix", m.ID)
	}
	return resp, nil
}

// buildChat lowers a Request onto the wire format for one model.
func buildChat(m Model, req *Request) chatRequest {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	if len(req.Images) == 0 {
		messages = append(messages, chatMessage{Role: "user", Content: req.User})
	} else {
		parts := make([]contentPart, 0, len(req.Images)+1)
		parts = append(parts, contentPart{Type: "text", Text: req.User})
		for _, img := range req.Images {
			parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: dataURI(img)}})
		}
		messages = append(messages, chatMessage{Role: "user", Content: parts})
	}

	creq := chatRequest{
		Model:       m.Name(),
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		creq.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if m.PromptCache && req.System != "" {
		creq.PromptCacheKey = systemPrefixKey(req.System)
	}
	return creq
}

// systemPrefixKey derives a stable cache routing key from the system prompt
// so every request sharing the prefix lands on the provider's prompt cache.
func systemPrefixKey(system string) string {
	sum := sha256.Sum256([]byte(system))
	return "sys-" + hex.EncodeToString(sum[:8])
}

// dataURI encodes image bytes for the vision content part, sniffing the MIME
// type from the payload.
func dataURI(img []byte) string {
	mime := "image/png"
	if kind, err := filetype.Match(img); err == nil && kind != filetype.Unknown && kind.MIME.Value != "" {
		mime = kind.MIME.Value
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, maxResponseBytes))
}
