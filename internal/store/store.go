// Package store provides typed access to the durable JSON documents.
// Each store owns exactly one document and guards its read-modify-write
// cycles with its own mutex, so concurrent mutations of the same document
// cannot lose updates.
package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"metagift-api/internal/docstore"
	"metagift-api/internal/logger"
)

// readDoc decodes a document into v. A missing document leaves v at its
// zero value. Read failures and corrupt payloads are logged and reported
// as false; the caller must discard v and fall back to an empty default.
// Corrupt documents are set aside for forensic recovery when the backend
// supports it.
func readDoc(ctx context.Context, docs docstore.Store, name string, v interface{}) bool {
	data, err := docs.Get(ctx, name)
	if err != nil {
		logger.Error("document read failed", zap.String("document", name), zap.Error(err))
		return false
	}
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("corrupt document, substituting empty default",
			zap.String("document", name), zap.Error(err))
		if q, ok := docs.(docstore.Quarantiner); ok {
			if qerr := q.Quarantine(name); qerr != nil {
				logger.Error("failed to quarantine corrupt document",
					zap.String("document", name), zap.Error(qerr))
			}
		}
		return false
	}
	return true
}

// writeDoc fully rewrites a document. Write failures are logged, not
// propagated: callers of store functions never see a raw storage failure.
func writeDoc(ctx context.Context, docs docstore.Store, name string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("document encode failed", zap.String("document", name), zap.Error(err))
		return
	}
	if err := docs.Put(ctx, name, data); err != nil {
		logger.Error("document write failed", zap.String("document", name), zap.Error(err))
	}
}
