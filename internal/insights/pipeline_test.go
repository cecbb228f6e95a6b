package insights

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"stocklens/internal/llmclient"
	productrepo "stocklens/internal/repository/product"
	reportrepo "stocklens/internal/repository/report"
)

type seed struct {
	id       string
	category string
	qty      int
}

func newTestPipeline(t *testing.T, fake *llmclient.FakeClient, records ...seed) (*Pipeline, *reportrepo.MemoryStore) {
	t.Helper()
	store := productrepo.NewMemoryStore()
	for _, r := range records {
		if err := store.Put(context.Background(), rec(r.id, r.category, r.qty, 1999)); err != nil {
			t.Fatalf("seed %s: %v", r.id, err)
		}
	}
	archive := reportrepo.NewMemoryStore()
	return New(store, fake, archive, NewEventBroker()), archive
}

func TestPipelineSuccess(t *testing.T) {
	fake := llmclient.NewFakeClient("```json\n" +
		`{"summary": "S", "trends": "T", "actions": "A"}` + "\n```")
	p, archive := newTestPipeline(t, fake,
		seed{"P1", "CPU", 5},
		seed{"P2", "GPU", 20},
		seed{"P3", "GPU", 0},
	)

	res, err := p.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Summary != "S" || res.Trends != "T" || res.Actions != "A" {
		t.Fatalf("result = %+v", res)
	}

	// Non-empty set with a zero-quantity item: the prompt must list it
	// under out-of-stock, not trigger the placeholder path.
	prompts := fake.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected one completion call, got %d", len(prompts))
	}
	if !strings.Contains(prompts[0], "Out of stock items: Item P3") {
		t.Fatalf("prompt missing out-of-stock listing:\n%s", prompts[0])
	}
	if !strings.Contains(prompts[0], "Low stock items (0 < qty < 10): Item P1 (5)") {
		t.Fatalf("prompt missing low-stock listing:\n%s", prompts[0])
	}
	if !strings.Contains(prompts[0], "Categories: CPU, GPU") {
		t.Fatalf("prompt missing categories:\n%s", prompts[0])
	}

	// Diagnostics were archived for the run.
	names := archivedNames(t, archive)
	if len(names) != 2 || names[0] != "completion.txt" || names[1] != "prompt.txt" {
		t.Fatalf("archived docs = %v", names)
	}
}

func archivedNames(t *testing.T, archive *reportrepo.MemoryStore) []string {
	t.Helper()
	// The run ID is generated inside the pipeline; walk every run.
	all := []string{}
	for _, runID := range archive.Runs() {
		names, err := archive.List(context.Background(), runID)
		if err != nil {
			t.Fatalf("list archive: %v", err)
		}
		all = append(all, names...)
	}
	return all
}

func TestPipelineEmptyInventoryPlaceholder(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	p, _ := newTestPipeline(t, fake)

	res, err := p.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res != PlaceholderResult {
		t.Fatalf("result = %+v", res)
	}
	if res.Summary == "" || res.Trends == "" || res.Actions == "" {
		t.Fatalf("placeholder must populate all three fields")
	}
	if len(fake.Prompts()) != 0 {
		t.Fatalf("completion client must not be invoked for empty inventory")
	}
}

func TestPipelineUpstreamStatusPropagated(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	fake.Fail(&llmclient.StatusError{StatusCode: http.StatusInternalServerError, Body: "upstream exploded"})
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	_, err := p.Generate(context.Background(), "u1")
	if err == nil || err.Kind != KindUpstreamUnavailable {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("status = %d, want upstream 500", err.HTTPStatus())
	}
}

func TestPipelineTransportFailure(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	fake.Fail(errors.New("dial tcp: connection refused"))
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	_, err := p.Generate(context.Background(), "u1")
	if err == nil || err.Kind != KindUpstreamUnavailable {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
	if err.HTTPStatus() != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", err.HTTPStatus())
	}
}

func TestPipelineMalformedEnvelope(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	fake.Fail(llmclient.ErrEmptyCompletion)
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	_, err := p.Generate(context.Background(), "u1")
	if err == nil || err.Kind != KindMalformedEnvelope {
		t.Fatalf("expected malformed envelope, got %v", err)
	}
}

func TestPipelineInvalidJSONInFence(t *testing.T) {
	fake := llmclient.NewFakeClient("```json\n" +
		`{"summary": "s", "trends": "t", "actions": "a",}` + "\n```")
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	_, err := p.Generate(context.Background(), "u1")
	if err == nil || err.Kind != KindParseFailed {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestPipelineMissingActionsKey(t *testing.T) {
	fake := llmclient.NewFakeClient("```json\n" +
		`{"summary": "s", "trends": "t"}` + "\n```")
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	_, err := p.Generate(context.Background(), "u1")
	if err == nil || err.Kind != KindIncompleteResult {
		t.Fatalf("expected incomplete result, got %v", err)
	}
}

func TestPipelineUnfencedJSONAccepted(t *testing.T) {
	fake := llmclient.NewFakeClient(`{"summary": "S", "trends": "T", "actions": "A"}`)
	p, _ := newTestPipeline(t, fake, seed{"P1", "CPU", 5})

	res, err := p.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Summary != "S" {
		t.Fatalf("result = %+v", res)
	}
}

func TestPipelinePublishesStageEvents(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	store := productrepo.NewMemoryStore()
	_ = store.Put(context.Background(), rec("P1", "CPU", 5, 100))
	broker := NewEventBroker()
	p := New(store, fake, reportrepo.NewMemoryStore(), broker)

	ch, cancel := broker.Subscribe()
	defer cancel()

	if _, err := p.Generate(context.Background(), "u1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	stages := map[string]bool{}
	for len(ch) > 0 {
		ev := <-ch
		stages[ev.Stage] = true
	}
	for _, want := range []string{StageStarted, StageAggregated, StageCalling, StageDone} {
		if !stages[want] {
			t.Fatalf("missing stage %s in %v", want, stages)
		}
	}
}
