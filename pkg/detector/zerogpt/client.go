package zerogpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artem13815/jobboard/pkg/detector"
)

// Client is a minimal ZeroGPT text-detection client.
type Client struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.zerogpt.com"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type detectRequest struct {
	InputText string `json:"input_text"`
}

type detectResponse struct {
	Success bool `json:"success"`
	Data    struct {
		FakePercentage float64 `json:"fakePercentage"`
	} `json:"data"`
}

// DetectText posts the text to the detection endpoint and returns the parsed
// verdict together with the raw body. The provider is untrusted: any
// transport or decode failure is an error, and Success=false responses are
// returned as-is for the caller to record.
func (c *Client) DetectText(ctx context.Context, text string) (detector.Result, error) {
	if c.APIKey == "" {
		return detector.Result{}, errors.New("zerogpt api key is empty")
	}
	payload, err := json.Marshal(detectRequest{InputText: text})
	if err != nil {
		return detector.Result{}, err
	}

	endpoint := fmt.Sprintf("%s/api/detect/detectText", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return detector.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ApiKey", c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return detector.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return detector.Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return detector.Result{}, fmt.Errorf("zerogpt http %d: %s", resp.StatusCode, body)
	}
	var out detectResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return detector.Result{}, fmt.Errorf("zerogpt response not decodable: %w", err)
	}
	return detector.Result{
		Raw:            json.RawMessage(body),
		Success:        out.Success,
		FakePercentage: out.Data.FakePercentage,
	}, nil
}
