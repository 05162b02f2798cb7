package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

// OverdueSweepHandler persists the overdue status on open loans whose due
// date has passed. The sweep is an optimization for reads; the overdue
// listing never depends on it having run.
type OverdueSweepHandler struct {
	service service.ServiceInterface
}

// NewOverdueSweepHandler creates a new overdue sweep handler.
func NewOverdueSweepHandler(service service.ServiceInterface) *OverdueSweepHandler {
	return &OverdueSweepHandler{
		service: service,
	}
}

// ProcessTask handles shared.TypeOverdueSweep tasks.
func (h *OverdueSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p shared.OverdueSweepPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return asynq.SkipRetry // malformed payload, retrying cannot help
	}

	asOf := p.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	changed, err := h.service.MarkOverdue(ctx, asOf)
	if err != nil {
		logger.Error("overdue sweep failed", err)
		return err
	}

	logger.Info("overdue sweep completed", map[string]interface{}{
		"as_of":   asOf.Format(time.RFC3339),
		"changed": changed,
	})
	return nil
}
