// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package anthropic implements remote.ChatClient against the Anthropic
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/patchpal/pkg/remote"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	requestTimeout = 60 * time.Second
)

// ⚙️ Options configures a Client
type Options struct {
	APIKey      string
	BaseURL     string // defaults to the public API endpoint
	Model       string
	MaxTokens   int
	Temperature float64
	System      string        // system prompt sent with every request
	Tools       []remote.Tool // tool definitions offered to the model
	HTTPClient  *http.Client  // optional; a 60s-timeout client is used otherwise
}

// 🌐 Client talks to the Anthropic Messages API
type Client struct {
	opts Options
	http *http.Client
}

// 🏭 New creates a Messages API client
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.Errorf("api key is required")
	}
	if opts.Model == "" {
		return nil, errors.Errorf("model is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{opts: opts, http: httpClient}, nil
}

// messagesRequest is the wire shape of a Messages API call.
type messagesRequest struct {
	Model       string           `json:"model"`
	System      string           `json:"system,omitempty"`
	Messages    []remote.Message `json:"messages"`
	Tools       []remote.Tool    `json:"tools,omitempty"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

// apiError is the wire shape of a Messages API error body.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send implements remote.ChatClient.
func (c *Client) Send(ctx context.Context, messages []remote.Message) (*remote.Response, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("model", c.opts.Model).Int("messages", len(messages)).Msg("sending messages request")

	body, err := json.Marshal(messagesRequest{
		Model:       c.opts.Model,
		System:      c.opts.System,
		Messages:    messages,
		Tools:       c.opts.Tools,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return nil, errors.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.opts.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return nil, errors.Errorf("messages API returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, errors.Errorf("messages API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out remote.Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, errors.Errorf("decoding response: %w", err)
	}

	logger.Debug().Str("stop_reason", out.StopReason).Int("blocks", len(out.Content)).Msg("messages response received")
	return &out, nil
}
