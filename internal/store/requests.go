package store

import (
	"context"
	"sync"
	"time"

	"metagift-api/internal/docstore"
	"metagift-api/internal/model"
	"metagift-api/pkg/uid"
)

// Requests stores payment and top-up requests. Status transitions follow a
// strict state machine: only pending requests may move, and approved or
// rejected are terminal.
type Requests struct {
	docs docstore.Store
	mu   sync.Mutex
}

// NewRequests creates a request store over the given document store.
func NewRequests(docs docstore.Store) *Requests {
	return &Requests{docs: docs}
}

func (r *Requests) all(ctx context.Context) []model.PaymentRequest {
	var requests []model.PaymentRequest
	if !readDoc(ctx, r.docs, docstore.DocPaymentRequests, &requests) {
		return nil
	}
	return requests
}

// Append records a new pending request, assigning its id and date.
// Returns the stored request.
func (r *Requests) Append(ctx context.Context, req model.PaymentRequest) model.PaymentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = uid.NewRequestID()
	req.Status = model.RequestStatusPending
	req.Date = time.Now().UTC().Format(time.RFC3339)

	requests := append(r.all(ctx), req)
	writeDoc(ctx, r.docs, docstore.DocPaymentRequests, requests)
	return req
}

// Pending returns requests still awaiting an admin decision.
func (r *Requests) Pending(ctx context.Context) []model.PaymentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]model.PaymentRequest, 0)
	for _, req := range r.all(ctx) {
		if req.Status == model.RequestStatusPending {
			pending = append(pending, req)
		}
	}
	return pending
}

// Get returns a request by id, or ErrNotFound.
func (r *Requests) Get(ctx context.Context, id string) (*model.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.all(ctx) {
		if req.ID == id {
			return &req, nil
		}
	}
	return nil, ErrNotFound
}

// MarkStatus moves a pending request to a terminal status and returns the
// updated request. Unknown ids fail with ErrNotFound; requests already in
// a terminal state fail with ErrAlreadyProcessed.
func (r *Requests) MarkStatus(ctx context.Context, id, status string) (*model.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := r.all(ctx)
	for i, req := range requests {
		if req.ID != id {
			continue
		}
		if req.Status != model.RequestStatusPending {
			return nil, ErrAlreadyProcessed
		}
		requests[i].Status = status
		writeDoc(ctx, r.docs, docstore.DocPaymentRequests, requests)
		updated := requests[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}
