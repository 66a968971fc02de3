// Package story produces the narrative for a book, from a remote chat model
// when one is configured and from a local template otherwise.
package story

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/config"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/prompt"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/metrics"
)

const systemPrompt = "You are a children's book author. Write engaging, age-appropriate stories that are magical, heartwarming, and feature the child as the hero. Include positive messages about friendship, bravery, and discovery."

var (
	ErrRemoteDisabled  = errors.New("remote story generation not configured")
	ErrEmptyCompletion = errors.New("empty completion")
)

// Source tells where a story's text came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Story struct {
	Text   string
	Source Source
}

// Generator turns a profile into story text. It never fails: every remote
// problem ends in the local fallback.
type Generator struct {
	client      *openai.Client
	prompts     *prompt.Builder
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewGenerator builds a Generator. Without a usable API key the remote client
// is left nil and every call uses the fallback.
func NewGenerator(cfg config.StoryConfig, prompts *prompt.Builder) *Generator {
	if prompts == nil {
		prompts = prompt.NewBuilder()
	}
	g := &Generator{
		prompts:     prompts,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if !cfg.RemoteEnabled() {
		logger.Infof("story: no API key configured, using local stories only")
		return g
	}

	oc := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": cfg.AppURL,
				"X-Title":      cfg.AppTitle,
			},
		},
	}
	g.client = openai.NewClientWithConfig(oc)
	return g
}

// Enabled reports whether remote generation will be attempted.
func (g *Generator) Enabled() bool {
	return g != nil && g.client != nil
}

// Generate returns the story for p.
func (g *Generator) Generate(ctx context.Context, p *models.Profile) Story {
	text, err := g.remote(ctx, p)
	if err == nil {
		return Story{Text: text, Source: SourceRemote}
	}
	if errors.Is(err, ErrRemoteDisabled) {
		logger.Debugf("story: remote disabled, writing local story for %s", p.ChildName)
	} else {
		logger.Warnf("story: remote generation failed, using local story: %v", err)
	}
	return Story{Text: Fallback(p), Source: SourceFallback}
}

func (g *Generator) remote(ctx context.Context, p *models.Profile) (string, error) {
	if !g.Enabled() {
		return "", ErrRemoteDisabled
	}
	userPrompt, err := g.prompts.Build(p)
	if err != nil {
		return "", err
	}
	logger.Debugf("story: prompt %q", preview(userPrompt, 100))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	metrics.StoryRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoryRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.StoryRequests.WithLabelValues("empty").Inc()
		return "", ErrEmptyCompletion
	}
	metrics.StoryRequests.WithLabelValues("success").Inc()
	logger.Infof("story: remote story received in %v (%d tokens)", time.Since(start), resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

// headerTransport adds fixed attribution headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
