// Package assistant drafts product copy and answers shopper questions with a
// hosted text-generation model. Failures never reach the caller: they are
// logged by kind and replaced with a fixed fallback reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	applog "storefront/internal/log"
	"storefront/internal/metrics"
)

const DefaultModel = "gemini-2.5-flash"

const (
	FallbackDescriptionEmpty = "Could not generate description."
	FallbackDescriptionError = "Error generating description. Please try again."
	FallbackChatEmpty        = "I'm having trouble thinking right now."
	FallbackChatError        = "Sorry, I am currently offline."
)

const descriptionPrompt = `Write a compelling, short marketing description (max 2 sentences) for an e-commerce product.
Product Name: %s
Category: %s

Tone: Professional yet exciting.`

const chatInstruction = `You are a helpful shopping assistant for DITO Home Wifi.
Help users find products, answer questions about shipping (we ship worldwide), and return policies (30 days).
Keep answers concise and friendly.`

// Request is one prompt/response exchange.
type Request struct {
	Model             string
	Prompt            string
	SystemInstruction string
}

// Generator sends a single request to a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var errEmpty = errors.New("empty response")

type Assistant struct {
	gen     Generator // nil means offline
	model   string
	timeout time.Duration
	metrics *metrics.Metrics
}

// New builds an Assistant. gen may be nil, in which case every call returns
// its fallback. A zero timeout leaves calls bounded only by ctx.
func New(gen Generator, model string, timeout time.Duration, m *metrics.Metrics) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	return &Assistant{gen: gen, model: model, timeout: timeout, metrics: m}
}

func (a *Assistant) Online() bool { return a.gen != nil }

func (a *Assistant) GenerateDescription(ctx context.Context, name, category string) string {
	text, err := a.call(ctx, "describe", Request{
		Model:  a.model,
		Prompt: fmt.Sprintf(descriptionPrompt, name, category),
	})
	switch {
	case errors.Is(err, errEmpty):
		return FallbackDescriptionEmpty
	case err != nil:
		return FallbackDescriptionError
	}
	return text
}

// Chat answers message. pageContext, when set, tells the model which page the
// shopper is looking at.
func (a *Assistant) Chat(ctx context.Context, message, pageContext string) string {
	sys := chatInstruction
	if pageContext != "" {
		sys += "\nCurrent page context: " + pageContext
	}
	text, err := a.call(ctx, "chat", Request{Model: a.model, Prompt: message, SystemInstruction: sys})
	switch {
	case errors.Is(err, errEmpty):
		return FallbackChatEmpty
	case err != nil:
		return FallbackChatError
	}
	return text
}

func (a *Assistant) call(ctx context.Context, op string, req Request) (string, error) {
	if a.gen == nil {
		a.record(op, "unavailable", errors.New("no generator configured"))
		return "", errors.New("offline")
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	text, err := a.gen.Generate(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmpty
	}
	if err != nil {
		a.record(op, Classify(err), err)
		return "", err
	}
	a.metrics.Assistant(op, "ok")
	return text, nil
}

func (a *Assistant) record(op, kind string, err error) {
	a.metrics.Assistant(op, kind)
	applog.Warn("assistant."+op+".fail", err, map[string]any{"kind": kind, "model": a.model})
}

// Classify names the kind of failure for logs and metrics.
func Classify(err error) string {
	var netErr net.Error
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errEmpty):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return "timeout"
		}
		return "transport"
	default:
		return "api"
	}
}
