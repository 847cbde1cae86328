package echonest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// status represents the status block present in every Echo Nest response.
type status struct {
	Version string `json:"version"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// envelope represents the root JSON object returned by the Echo Nest API.
type envelope struct {
	Response json.RawMessage `json:"response"`
}

// call makes an HTTP request to the Echo Nest API.
//
// It handles:
// - Request construction (API key, response format, caller parameters)
// - Response envelope parsing (JSON)
// - Service error detection via the status block
// - Context cancellation
//
// Each call makes exactly one HTTP request. Retry policy belongs to the
// caller.
//
// On success it returns the raw "response" object; callers navigate the
// attribute-specific shape themselves.
func (c *Client) call(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	reqParams := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			reqParams.Add(k, v)
		}
	}
	reqParams.Set("api_key", c.apiKey)
	reqParams.Set("format", "json")

	base := c.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	reqURL := base + path + "?" + reqParams.Encode()

	c.logDebugf("echonest: calling %s", path)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ennest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// The Echo Nest reports errors inside the response envelope, often
	// alongside a non-200 HTTP status. Prefer the structured error when
	// the body parses.
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var st struct {
		Status status `json:"status"`
	}
	if err := json.Unmarshal(env.Response, &st); err != nil {
		return nil, fmt.Errorf("failed to parse response status: %w", err)
	}

	if st.Status.Code != StatusSuccess {
		return nil, &Error{
			Code:    st.Status.Code,
			Message: st.Status.Message,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	c.logDebugf("echonest: %s succeeded", path)
	return env.Response, nil
}
