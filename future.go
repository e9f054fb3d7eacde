package s3upload

import (
	"context"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Future is the handle to a submitted upload.
type Future struct {
	requestID string
	done      chan struct{}
	outcome   *uploadtypes.UploadOutcome
	err       error
}

func newFuture(requestID string) *Future {
	return &Future{
		requestID: requestID,
		done:      make(chan struct{}),
	}
}

func (f *Future) complete(outcome *uploadtypes.UploadOutcome, err error) {
	f.outcome = outcome
	f.err = err
	close(f.done)
}

// RequestID identifies the upload in logs and events.
func (f *Future) RequestID() string {
	return f.requestID
}

// Done is closed once the upload is terminal.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the upload is terminal or ctx is done. Giving up on the
// wait does not stop the upload; cancel the context passed to Submit for that.
//
// The outcome is non-nil whenever the source was enumerated, including when
// the error reports a failed transfer.
func (f *Future) Wait(ctx context.Context) (*uploadtypes.UploadOutcome, error) {
	select {
	case <-f.done:
		return f.outcome, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Outcome returns the outcome without blocking, or nil while running.
func (f *Future) Outcome() *uploadtypes.UploadOutcome {
	select {
	case <-f.done:
		return f.outcome
	default:
		return nil
	}
}

// Err returns the terminal error without blocking, or nil while running or
// on success.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
