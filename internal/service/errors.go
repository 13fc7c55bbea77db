package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/teiki-network/teiki-backend/pkg/apperrors"
)

// storeErr classifies a repository failure. Deadline and cancellation
// failures become the retriable ErrStoreUnavailable; everything else
// passes through unchanged, including ErrNotFound.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s", apperrors.ErrStoreUnavailable, err)
	}
	return err
}
