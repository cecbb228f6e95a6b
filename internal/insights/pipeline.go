package insights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"stocklens/internal/llmclient"
	productrepo "stocklens/internal/repository/product"
	reportrepo "stocklens/internal/repository/report"
)

// PlaceholderResult is returned when the owner has no inventory records.
// This is a defined terminal state, not an error; the completion service
// is never invoked for it.
var PlaceholderResult = Result{
	Summary: "No inventory data is available yet. Add products to generate an inventory summary.",
	Trends:  "Trend analysis will appear once inventory records exist.",
	Actions: "Add your first products to receive restock recommendations and optimization suggestions.",
}

// Pipeline sequences aggregation, prompting, the completion call,
// extraction and validation. It is stateless across requests: every
// invocation is an independent single pass.
type Pipeline struct {
	store   productrepo.Store
	client  llmclient.Client
	archive reportrepo.Store
	events  *EventBroker
}

func New(store productrepo.Store, client llmclient.Client, archive reportrepo.Store, events *EventBroker) *Pipeline {
	return &Pipeline{
		store:   store,
		client:  client,
		archive: archive,
		events:  events,
	}
}

// Generate runs the pipeline for one owner. It returns either a validated
// result (or the placeholder) or a classified *Error; no other error type
// escapes.
func (p *Pipeline) Generate(ctx context.Context, userID string) (res Result, rerr *Error) {
	runID := uuid.NewString()

	// Outermost guard: the caller always receives a well-formed reply.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("insights: run %s panicked: %v", runID, r)
			rerr = newError(KindInternal, "internal error")
		}
		if rerr != nil {
			p.publish(runID, userID, StageFailed, string(rerr.Kind))
		}
	}()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		e := newError(KindInternal, "owner identity is required")
		e.Status = http.StatusBadRequest
		return Result{}, e
	}
	p.publish(runID, userID, StageStarted, "")

	records, err := p.store.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("insights: run %s list products: %v", runID, err)
		e := newError(KindInternal, "failed to load inventory")
		e.Err = err
		return Result{}, e
	}

	summary := Aggregate(records)
	p.publish(runID, userID, StageAggregated, "")
	if summary.IsEmpty() {
		p.publish(runID, userID, StagePlaceholder, "")
		return PlaceholderResult, nil
	}

	prompt := BuildPrompt(summary)
	p.publish(runID, userID, StagePrompted, "")
	p.archivePut(ctx, runID, "prompt.txt", []byte(prompt))

	p.publish(runID, userID, StageCalling, "")
	completion, err := p.client.Complete(ctx, prompt)
	if err != nil {
		return Result{}, p.classifyCompletionError(runID, err)
	}
	p.archivePut(ctx, runID, "completion.txt", []byte(completion))

	p.publish(runID, userID, StageExtracting, "")
	candidate, err := ExtractCandidate(completion)
	if err != nil {
		log.Printf("insights: run %s extraction failed, completion: %q", runID, truncate(completion, 2048))
		e := newError(KindExtractionFailed, "could not locate insights in completion")
		e.Err = err
		return Result{}, e
	}

	p.publish(runID, userID, StageValidating, "")
	result, verr := ValidateCandidate(candidate)
	if verr != nil {
		log.Printf("insights: run %s %s: %s", runID, verr.Kind, truncate(verr.Detail, 2048))
		return Result{}, verr
	}

	p.publish(runID, userID, StageDone, "")
	return result, nil
}

func (p *Pipeline) classifyCompletionError(runID string, err error) *Error {
	var se *llmclient.StatusError
	switch {
	case errors.As(err, &se):
		log.Printf("insights: run %s upstream status %d: %s", runID, se.StatusCode, truncate(se.Body, 2048))
		e := newError(KindUpstreamUnavailable, fmt.Sprintf("completion service returned status %d", se.StatusCode))
		e.Status = se.StatusCode
		e.Detail = se.Body
		e.Err = err
		return e
	case errors.Is(err, llmclient.ErrEmptyCompletion):
		log.Printf("insights: run %s malformed completion envelope", runID)
		e := newError(KindMalformedEnvelope, "completion service returned an unexpected response")
		e.Err = err
		return e
	default:
		log.Printf("insights: run %s completion call failed: %v", runID, err)
		e := newError(KindUpstreamUnavailable, "completion service is unavailable")
		e.Err = err
		return e
	}
}

// archivePut is best-effort: diagnostics must never fail a request.
func (p *Pipeline) archivePut(ctx context.Context, runID, name string, content []byte) {
	if p.archive == nil {
		return
	}
	if err := p.archive.Put(ctx, runID, name, content); err != nil {
		log.Printf("insights: run %s archive %s: %v", runID, name, err)
	}
}

func (p *Pipeline) publish(runID, userID, stage, kind string) {
	if p.events == nil {
		return
	}
	p.events.Publish(StageEvent{RunID: runID, UserID: userID, Stage: stage, Kind: kind})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
