// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jonathan/cv-tailor/internal/llm"

// RetryPolicy bounds the exponential backoff around Invoke
type RetryPolicy struct {
	InitialInterval time.Duration `json:"initial_interval"`
	MaxInterval     time.Duration `json:"max_interval"`
	MaxAttempts     int           `json:"max_attempts"`
}

// DefaultRetryPolicy waits 2s then up to 10s between attempts, three attempts total
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 2 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxAttempts:     3,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// RetryingClient decorates a Client with retries, a span per call and a warning per failed attempt
type RetryingClient struct {
	inner  Client
	policy RetryPolicy
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewRetryingClient wraps inner with policy
func NewRetryingClient(inner Client, policy RetryPolicy, logger zerolog.Logger) *RetryingClient {
	return &RetryingClient{
		inner:  inner,
		policy: policy,
		logger: logger.With().Str("component", "llm").Logger(),
		tracer: otel.Tracer(tracerName),
	}
}

// Invoke runs req until it succeeds, fails permanently, or attempts run out
func (c *RetryingClient) Invoke(ctx context.Context, req Request) (*Response, error) {
	model := c.inner.Model(req.Purpose)
	ctx, span := c.tracer.Start(ctx, "llm.invoke", trace.WithAttributes(
		attribute.String("llm.purpose", string(req.Purpose)),
		attribute.String("llm.model", model),
		attribute.Bool("llm.structured", req.Schema != nil),
	))
	defer span.End()

	var resp *Response
	attempt := 0
	operation := func() error {
		attempt++
		r, err := c.inner.Invoke(ctx, req)
		if err == nil {
			resp = r
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		var invokeErr *InvokeError
		if errors.As(err, &invokeErr) && !invokeErr.Retryable() {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn().
			Err(err).
			Str("purpose", string(req.Purpose)).
			Str("model", model).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("llm invocation failed, retrying")
	}

	err := backoff.RetryNotify(operation, c.policy.backOff(ctx), notify)
	span.SetAttributes(attribute.Int("llm.attempts", attempt))
	if err != nil {
		err = asInvokeError(err, model)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// Model returns the model name of the wrapped client
func (c *RetryingClient) Model(p Purpose) string {
	return c.inner.Model(p)
}

// Close closes the wrapped client
func (c *RetryingClient) Close() error {
	return c.inner.Close()
}

func asInvokeError(err error, model string) error {
	var invokeErr *InvokeError
	if errors.As(err, &invokeErr) {
		return err
	}
	return &InvokeError{Kind: KindTransport, Model: model, Cause: err}
}
