// Package llm holds the clients for the external text-generation services.
// Everything here sits strictly downstream of retrieval: nothing in this
// package influences relevance, refusal, or confidence.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultParaphraseTimeout = 10 * time.Second
	maxPromptPassages        = 5
	maxOutputTokens          = 200
)

// Passage is one retrieved excerpt handed to the paraphrase prompt.
type Passage struct {
	Title     string
	Paragraph string
}

// SummariseRequest carries the inputs of one paraphrase attempt.
type SummariseRequest struct {
	Question string
	Passages []Passage
	// Fallback is the deterministic summary returned whenever the paraphrase
	// cannot run or fails.
	Fallback string
}

// SummariseResult is the outcome of a paraphrase attempt. Note is empty when
// the paraphrase succeeded cleanly; otherwise it explains why the fallback
// summary was used (or what was skipped).
type SummariseResult struct {
	Summary string
	Note    string
}

// Client paraphrases already-retrieved text through an OpenAI-style
// responses API. All failure modes resolve inside Summarise: transport
// errors, bad statuses and timeouts degrade to the fallback summary with an
// explanatory note, never an error.
type Client struct {
	BaseURL string
	APIKey  string
	// Models are tried in order until one answers; the list length bounds the
	// retry budget.
	Models  []string
	Timeout time.Duration
	client  *http.Client
}

// NewClient creates a paraphrase client. An empty model list or non-positive
// timeout falls back to sane defaults.
func NewClient(baseURL, apiKey string, models []string, timeout time.Duration) *Client {
	if len(models) == 0 {
		models = []string{"gpt-5.1-mini"}
	}
	if timeout <= 0 {
		timeout = defaultParaphraseTimeout
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Models:  models,
		Timeout: timeout,
		client:  http.DefaultClient,
	}
}

// Summarise attempts a paraphrase of the retrieved passages. The returned
// summary is either model output or the request's fallback; it is never
// empty when the fallback is non-empty.
func (c *Client) Summarise(ctx context.Context, req SummariseRequest) SummariseResult {
	if c.APIKey == "" {
		return SummariseResult{
			Summary: req.Fallback,
			Note:    "paraphrase skipped: missing API key",
		}
	}
	if len(req.Passages) == 0 {
		return SummariseResult{Summary: req.Fallback}
	}

	prompt := buildPrompt(req.Question, req.Passages)
	var lastErr error
	for _, model := range c.Models {
		summary, err := c.respond(ctx, model, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		if summary != "" {
			return SummariseResult{Summary: summary}
		}
	}

	note := "paraphrase failed; deterministic summary used"
	if lastErr != nil {
		note = fmt.Sprintf("%s: %v", note, lastErr)
	}
	return SummariseResult{Summary: req.Fallback, Note: note}
}

// responsesRequest is the payload for the responses API.
type responsesRequest struct {
	Model           string `json:"model"`
	Input           string `json:"input"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// responsesResponse covers the two places the API exposes generated text.
type responsesResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// respond runs a single time-bounded attempt against one model.
func (c *Client) respond(ctx context.Context, model, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	payload := responsesRequest{
		Model:           model,
		Input:           prompt,
		MaxOutputTokens: maxOutputTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/responses", c.BaseURL)
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return extractText(parsed), nil
}

// buildPrompt frames the paraphrase as strict re-statement of retrieved
// passages: no advice, no new facts.
func buildPrompt(question string, passages []Passage) string {
	var sb strings.Builder
	sb.WriteString("You are a cautious summariser working in a regulated domain. ")
	sb.WriteString("Only use the provided passages to paraphrase succinctly. ")
	sb.WriteString("Do not add advice, recommendations, or new facts. ")
	sb.WriteString("If the passages do not answer the question, state that the provided passages do not contain an answer.")
	if question != "" {
		fmt.Fprintf(&sb, "\n\nQuestion: %s", question)
	}
	sb.WriteString("\n\nPassages:\n")

	count := 0
	for _, passage := range passages {
		if count >= maxPromptPassages {
			break
		}
		if passage.Paragraph == "" {
			continue
		}
		if count > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Title: %s\nParagraph: %s", passage.Title, passage.Paragraph)
		count++
	}
	return sb.String()
}

// extractText pulls generated text from either response shape.
func extractText(parsed responsesResponse) string {
	if text := strings.TrimSpace(parsed.OutputText); text != "" {
		return text
	}
	for _, item := range parsed.Output {
		for _, content := range item.Content {
			if text := strings.TrimSpace(content.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
