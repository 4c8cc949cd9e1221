package testutil

import (
	"context"

	"github.com/streamnova/streamnova/internal/models"
)

// Collect consumes a stream and returns its values, stopping at the first error.
// This is a test helper and should not be used in production code.
func Collect[T any](ctx context.Context, stream <-chan models.StreamResult[T]) ([]T, error) {
	var values []T
	for {
		select {
		case result, ok := <-stream:
			if !ok {
				return values, nil
			}
			if result.Err != nil {
				return nil, result.Err
			}
			values = append(values, result.Value)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// CollectAll drains a stream, keeping values and errors apart.
// This is a test helper and should not be used in production code.
func CollectAll[T any](ctx context.Context, stream <-chan models.StreamResult[T]) ([]T, []error) {
	var (
		values []T
		errs   []error
	)
	for {
		select {
		case result, ok := <-stream:
			if !ok {
				return values, errs
			}
			if result.Err != nil {
				errs = append(errs, result.Err)
				continue
			}
			values = append(values, result.Value)
		case <-ctx.Done():
			return values, append(errs, ctx.Err())
		}
	}
}
