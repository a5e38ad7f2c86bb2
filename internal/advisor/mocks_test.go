package advisor_test

import (
	"context"
	"sync"

	"issuewiz.app/advisor/common/llm"
)

type mockLLMClient struct {
	mu         sync.Mutex
	completeFn func(ctx context.Context, req llm.Request) (*llm.Response, error)
	callCount  int
	lastReq    llm.Request
}

func (m *mockLLMClient) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	m.callCount++
	m.lastReq = req
	m.mu.Unlock()
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	return &llm.Response{Content: "{}"}, nil
}

func (m *mockLLMClient) Model() string { return "mock-model" }

func replyWith(content string) func(context.Context, llm.Request) (*llm.Response, error) {
	return func(context.Context, llm.Request) (*llm.Response, error) {
		return &llm.Response{Content: content, Model: "mock-model"}, nil
	}
}

type mockProvider struct {
	client llm.Client
	err    error
}

func (m *mockProvider) Client() (llm.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

type mockFetcher struct {
	mu      sync.Mutex
	fetchFn func(ctx context.Context, url string) (string, error)
	urls    []string
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return "content of " + url, nil
}

func (m *mockFetcher) fetched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}
