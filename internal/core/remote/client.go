// internal/core/remote/client.go

// Package remote talks to the authoritative rule validation service. The
// engine's local validators and sandboxes are best-effort previews; this
// client is the only path to a binding verdict on expression and template
// semantics. Network or service failures are reported as indeterminate
// (types.ErrRemoteIndeterminate), never as "invalid".
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/routegate/routegate/internal/core/config"
	"github.com/routegate/routegate/internal/types"
)

// Client calls the remote validation API.
type Client struct {
	http   *resty.Client
	signer *Signer // nil = unsigned requests (local development service)
	log    zerolog.Logger
}

// NewClient builds a client from configuration.
// signer may be nil when no signing secret is configured.
func NewClient(cfg *config.Config, signer *Signer, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.RemoteBaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.MaxRetries).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		signer: signer,
		log:    log.With().Str("component", "remote").Logger(),
	}
}

// validateRequest is the wire form of an expression/template validation call.
type validateRequest struct {
	Source  string              `json:"source"`
	Context types.SampleContext `json:"context,omitempty"`
}

// ValidateExpression asks the authoritative service to validate an expression,
// optionally rendering a preview against the sample context.
func (c *Client) ValidateExpression(ctx context.Context, src string, sample types.SampleContext) (*types.RemoteResult, error) {
	return c.post(ctx, "/v1/validate/expression", src, sample)
}

// ValidateTemplate asks the authoritative service to validate a template.
func (c *Client) ValidateTemplate(ctx context.Context, src string, sample types.SampleContext) (*types.RemoteResult, error) {
	return c.post(ctx, "/v1/validate/template", src, sample)
}

func (c *Client) post(ctx context.Context, path, src string, sample types.SampleContext) (*types.RemoteResult, error) {
	body, err := json.Marshal(validateRequest{Source: src, Context: sample})
	if err != nil {
		return nil, fmt.Errorf("marshal validation request: %w", err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&types.RemoteResult{})
	if c.signer != nil {
		req.SetHeader(SignatureHeader, c.signer.Sign(body))
	}

	resp, err := req.Post(path)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("authoritative check unreachable")
		return nil, fmt.Errorf("%w: %v", types.ErrRemoteIndeterminate, err)
	}
	if resp.IsError() {
		c.log.Debug().Int("status", resp.StatusCode()).Str("path", path).Msg("authoritative check failed")
		return nil, fmt.Errorf("%w: status %d", types.ErrRemoteIndeterminate, resp.StatusCode())
	}

	result, ok := resp.Result().(*types.RemoteResult)
	if !ok || result == nil {
		return nil, fmt.Errorf("%w: malformed response", types.ErrRemoteIndeterminate)
	}
	return result, nil
}
