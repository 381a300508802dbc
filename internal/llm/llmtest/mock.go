// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/cv-tailor/internal/llm"
)

// MockLLMClient is a mock implementation of llm.Client.
// Structured calls are finished the way providers finish them, so schema violations surface as *llm.InvokeError.
type MockLLMClient struct {
	InvokeFunc func(ctx context.Context, req llm.Request) (string, error)
	ModelFunc  func(p llm.Purpose) string
	CloseFunc  func() error

	mu    sync.Mutex
	calls []llm.Request
}

// Invoke records req and returns the scripted text
func (m *MockLLMClient) Invoke(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.InvokeFunc == nil {
		return nil, &llm.InvokeError{Kind: llm.KindTransport, Message: "mock has no InvokeFunc"}
	}
	text, err := m.InvokeFunc(ctx, req)
	if err != nil {
		return nil, err
	}
	return llm.FinishResponse(m.Model(req.Purpose), text, req.Schema)
}

// Model returns the scripted model name, "mock-<purpose>" by default
func (m *MockLLMClient) Model(p llm.Purpose) string {
	if m.ModelFunc != nil {
		return m.ModelFunc(p)
	}
	return "mock-" + string(p)
}

// Close closes the mock
func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of the recorded requests
func (m *MockLLMClient) Calls() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.calls...)
}

// CallsFor returns the recorded requests of one purpose
func (m *MockLLMClient) CallsFor(p llm.Purpose) []llm.Request {
	var out []llm.Request
	for _, req := range m.Calls() {
		if req.Purpose == p {
			out = append(out, req)
		}
	}
	return out
}

// Failing returns a mock whose every call fails with a transport error
func Failing() *MockLLMClient {
	return &MockLLMClient{
		InvokeFunc: func(_ context.Context, _ llm.Request) (string, error) {
			return "", &llm.InvokeError{Kind: llm.KindTransport, Message: "provider unavailable"}
		},
	}
}
