package llmclient

import (
	"context"
	"sync"
)

// FakeClient returns a canned completion for offline runs and tests.
type FakeClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func NewFakeClient(response string) *FakeClient {
	if response == "" {
		response = "```json\n" +
			`{"summary": "Fake summary.", "trends": "Fake trends.", "actions": "Fake actions."}` +
			"\n```"
	}
	return &FakeClient{response: response}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Fail makes every subsequent Complete call return err.
func (f *FakeClient) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Prompts returns the prompts received so far.
func (f *FakeClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

func (f *FakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
