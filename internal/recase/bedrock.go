// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recase

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/pdiddy/docx-recase/pkg/types"
)

// anthropicVersion is the Messages API version Bedrock expects in the body.
const anthropicVersion = "bedrock-2023-05-31"

// InvokeModelAPI is the subset of the Bedrock runtime client used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// NewBedrockClient builds a Bedrock runtime client from cfg. Credentials
// come from the default AWS chain (environment, shared config, SSO, IMDS),
// optionally pinned to cfg.Profile. An empty cfg.Region leaves the region
// to AWS_REGION or the shared config, falling back to types.DefaultRegion.
// The SDK retries in adaptive mode on top of the throttling retries done
// by Processor.
func NewBedrockClient(ctx context.Context, cfg types.BedrockConfig) (*bedrockruntime.Client, error) {
	httpClient := awshttp.NewBuildableClient().
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = cfg.ConnectTimeout
		}).
		WithTransportOptions(func(tr *http.Transport) {
			tr.ResponseHeaderTimeout = cfg.ReadTimeout
		})

	opts := []func(*config.LoadOptions) error{
		config.WithHTTPClient(httpClient),
		config.WithRetryMode(aws.RetryModeAdaptive),
		config.WithRetryMaxAttempts(cfg.SDKMaxAttempts),
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = types.DefaultRegion
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}

// BedrockBackend recases text with an Anthropic model hosted on Bedrock.
type BedrockBackend struct {
	Client      InvokeModelAPI
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// NewBedrockBackend returns a backend for client using the model settings in cfg.
func NewBedrockBackend(client InvokeModelAPI, cfg types.BedrockConfig) *BedrockBackend {
	return &BedrockBackend{
		Client:      client,
		ModelID:     cfg.ModelID,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}
}

// anthropicRequest is the InvokeModel body for Anthropic models.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	Messages         []anthropicMessage `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the InvokeModel response body for Anthropic models.
type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Recase sends one paragraph to the model and returns the first content
// block of the reply. Throttling errors are wrapped with ErrThrottled.
func (b *BedrockBackend) Recase(ctx context.Context, text string) (string, error) {
	prompt, err := renderPrompt(text)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	maxTokens := b.MaxTokens
	if maxTokens <= 0 {
		maxTokens = types.DefaultMaxTokens
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
		MaxTokens:        maxTokens,
		Temperature:      b.Temperature,
		TopP:             b.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	out, err := b.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.ModelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		if IsThrottling(err) {
			return "", fmt.Errorf("%w: %w", ErrThrottled, err)
		}
		return "", fmt.Errorf("invoking model %s: %w", b.ModelID, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("model %s returned empty content", b.ModelID)
	}
	return resp.Content[0].Text, nil
}
