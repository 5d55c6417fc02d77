package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchpoint-app/backend/internal/entity"
	"go.mongodb.org/mongo-driver/mongo"
)

// WrapErr classifies a document-store driver failure. Timeouts and network
// failures surface as the storage-unavailable kind; everything else keeps
// its original identity wrapped with the failing operation.
func WrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, entity.ErrStorageUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
