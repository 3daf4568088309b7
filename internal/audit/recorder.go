// internal/audit/recorder.go
package audit

import (
	"context"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultWriteTimeout = 5 * time.Second

// Recorder writes audit entries off the request path. A failed write is
// logged and dropped; it never blocks or fails the primary operation.
type Recorder struct {
	repo    repository.AuditRepository
	timeout time.Duration
}

func NewRecorder(repo repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo, timeout: defaultWriteTimeout}
}

// Record persists the entry asynchronously.
func (r *Recorder) Record(entry domain.AuditEntry) {
	if r == nil || r.repo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.repo.Insert(ctx, &entry); err != nil {
			log.Warn().Err(err).
				Str("entity_type", entry.EntityType).
				Str("entity_id", entry.EntityID).
				Str("action", entry.Action).
				Msg("audit: failed to record entry")
		}
	}()
}
