package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OllamaRequest is sent to the language-model collaborator's /api/generate
// endpoint. Streaming is always disabled — the caller wants one plain-text
// answer per request.
type OllamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options OllamaOptions `json:"options"`
}

// OllamaOptions keeps answers short and deterministic: low temperature for
// precise analysis, bounded prediction length so a runaway generation cannot
// hold the request open indefinitely.
type OllamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// OllamaResponse is the non-streaming generate response.
type OllamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaClient is an HTTP client for an Ollama-compatible language-model
// service. It holds no storage-layer resources: a slow or dead model server
// can never block a DB transaction.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	return &OllamaClient{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generar sends the prompt and returns the model's plain-text answer.
func (c *OllamaClient) Generar(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(OllamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: OllamaOptions{
			Temperature: 0.3,
			NumPredict:  500,
		},
	})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: servidor inalcanzable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: respuesta %d", resp.StatusCode)
	}

	var result OllamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	return result.Response, nil
}
