package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/learnloop/tutor-gateway/src/webclient"
)

// Client talks to the remote tutoring agents, one webhook per agent.
// Every call goes through the same retry/backoff/timeout policy and comes
// back as a Result; nothing at this boundary raises past it.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   webclient.RetryPolicy
}

func New(baseURL string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    webclient.NewDefault(timeout),
		Retry:   webclient.RetryPolicy{Attempts: maxRetries, Backoff: time.Second},
	}
}

// ResolveDoubt calls the direct doubt resolver.
func (c *Client) ResolveDoubt(ctx context.Context, q DoubtQuery) (Solution, Result) {
	var out Solution
	res := c.call(ctx, "/webhook/agent1/submit-doubt", "Direct Doubt Resolver", q, &out)
	return out, res
}

// Hint calls the hint strategy agent at the requested level.
func (c *Client) Hint(ctx context.Context, q HintQuery) (Hint, Result) {
	var out Hint
	res := c.call(ctx, "/webhook/agent2/get-hint", "Hint Strategy Agent", q, &out)
	return out, res
}

// DetectHesitation calls the hesitation detector.
func (c *Client) DetectHesitation(ctx context.Context, q HesitationQuery) (Hesitation, Result) {
	var out Hesitation
	res := c.call(ctx, "/webhook/agent3/hesitation", "Hesitation Detector", q, &out)
	return out, res
}

// StuckScore calls the stuck score calculator.
func (c *Client) StuckScore(ctx context.Context, q StuckQuery) (Stuck, Result) {
	var out Stuck
	res := c.call(ctx, "/webhook/agent4/stuck-score", "Stuck Score Calculator", q, &out)
	return out, res
}

// MistakePattern calls the mistake pattern learner.
func (c *Client) MistakePattern(ctx context.Context, q MistakeQuery) (Mistake, Result) {
	var out Mistake
	res := c.call(ctx, "/webhook/agent5/mistake-pattern", "Mistake Pattern Learner", q, &out)
	return out, res
}

// TrackProgress calls the progress tracker.
func (c *Client) TrackProgress(ctx context.Context, q ProgressQuery) (Progress, Result) {
	var out Progress
	res := c.call(ctx, "/webhook/agent6/progress", "Progress Tracker", q, &out)
	return out, res
}

// Flashcards calls the flashcard recommender.
func (c *Client) Flashcards(ctx context.Context, q FlashcardQuery) (Flashcards, Result) {
	var out Flashcards
	res := c.call(ctx, "/webhook/agent7/flashcards", "Flashcard Recommender", q, &out)
	return out, res
}

// VideoIntelligence calls the video intelligence agent.
func (c *Client) VideoIntelligence(ctx context.Context, q VideoQuery) (Video, Result) {
	var out Video
	res := c.call(ctx, "/webhook/agent8/video-intelligence", "Video Intelligence Agent", q, &out)
	return out, res
}

// call posts the payload to one webhook and decodes a 200 body into out.
// Non-200 statuses, transport errors, per-attempt timeouts and malformed
// bodies all count as retryable attempts; the error text of the final
// attempt ends up on the Result.
func (c *Client) call(ctx context.Context, path, agent string, payload, out any) Result {
	start := time.Now()
	res := Result{Agent: agent}

	body, err := json.Marshal(payload)
	if err != nil {
		res.Error = fmt.Sprintf("Connection error: %v", err)
		res.Elapsed = time.Since(start)
		return res
	}

	_, _, err = c.Retry.Do(ctx, func() (int, []byte, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if reqErr != nil {
			return 0, nil, fmt.Errorf("Connection error: %v", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.HTTP.Do(req)
		if doErr != nil {
			var ne net.Error
			if errors.As(doErr, &ne) && ne.Timeout() {
				return 0, nil, errors.New("Request timeout")
			}
			return 0, nil, fmt.Errorf("Connection error: %v", doErr)
		}
		defer resp.Body.Close()

		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return resp.StatusCode, nil, fmt.Errorf("Connection error: %v", readErr)
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, b, fmt.Errorf("HTTP %d: %s", resp.StatusCode, b)
		}
		if out != nil {
			if decErr := json.Unmarshal(b, out); decErr != nil {
				return resp.StatusCode, b, fmt.Errorf("Connection error: %v", decErr)
			}
		}
		return resp.StatusCode, b, nil
	})

	res.Elapsed = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}
