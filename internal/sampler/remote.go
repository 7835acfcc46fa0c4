package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/prompt"
)

const (
	defaultRemoteURL     = "http://localhost:8188"
	defaultRemoteTimeout = 120 * time.Second
)

// RemoteConfig configures the HTTP sampling backend.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Remote calls a diffusion server over HTTP. One POST per frame; the
// server owns the model, this client only moves tensors.
type Remote struct {
	config RemoteConfig
	client *http.Client
}

func NewRemote(config RemoteConfig) *Remote {
	if config.BaseURL == "" {
		config.BaseURL = defaultRemoteURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultRemoteTimeout
	}
	return &Remote{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (r *Remote) Name() string {
	return "remote"
}

// Available probes the server health endpoint.
func (r *Remote) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type wireTensor struct {
	Shape   []int     `json:"shape"`
	Samples []float64 `json:"samples"`
}

type sampleRequest struct {
	Model        string             `json:"model"`
	Seed         uint64             `json:"seed"`
	Steps        int                `json:"steps"`
	CFG          float64            `json:"cfg"`
	SamplerName  string             `json:"sampler_name"`
	Scheduler    string             `json:"scheduler"`
	Positive     []prompt.Embedding `json:"positive"`
	PositivePool prompt.Embedding   `json:"positive_pool,omitempty"`
	Negative     []prompt.Embedding `json:"negative"`
	NegativePool prompt.Embedding   `json:"negative_pool,omitempty"`
	Latent       wireTensor         `json:"latent"`
	Denoise      float64            `json:"denoise"`
}

type sampleResponse struct {
	Shape   []int     `json:"shape"`
	Samples []float64 `json:"samples"`
	Error   string    `json:"error,omitempty"`
}

func (r *Remote) Sample(ctx context.Context, req Request) (latent.Tensor, error) {
	payload := sampleRequest{
		Model:        req.Model,
		Seed:         req.Seed,
		Steps:        req.Steps,
		CFG:          req.CFG,
		SamplerName:  req.SamplerName,
		Scheduler:    req.Scheduler,
		Positive:     req.Positive.Tokens,
		PositivePool: req.Positive.Pooled,
		Negative:     req.Negative.Tokens,
		NegativePool: req.Negative.Pooled,
		Latent: wireTensor{
			Shape:   req.Latent.Shape,
			Samples: req.Latent.Data,
		},
		Denoise: req.Denoise,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return latent.Tensor{}, fmt.Errorf("sampler: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.BaseURL+"/sample", bytes.NewReader(body))
	if err != nil {
		return latent.Tensor{}, fmt.Errorf("sampler: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return latent.Tensor{}, fmt.Errorf("sampler: remote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return latent.Tensor{}, fmt.Errorf("sampler: remote returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out sampleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return latent.Tensor{}, fmt.Errorf("sampler: failed to decode response: %w", err)
	}
	if out.Error != "" {
		return latent.Tensor{}, fmt.Errorf("sampler: remote error: %s", out.Error)
	}

	t := latent.Tensor{Shape: out.Shape, Data: out.Samples}
	if !t.IsValid() {
		return latent.Tensor{}, fmt.Errorf("sampler: remote returned malformed tensor (shape %v, %d values)", out.Shape, len(out.Samples))
	}
	return t, nil
}
