package s3upload

import (
	"sync"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// aggregate tracks the items of one request. Transfers finish concurrently,
// so every state change goes through mu.
type aggregate struct {
	mu        sync.Mutex
	requestID string
	bucket    string
	items     []*uploadtypes.TransferItem
	results   []uploadtypes.ItemResult
	succeeded int
	failed    int
	firstErr  error
	listener  uploadtypes.Listener
}

func newAggregate(
	requestID, bucket string,
	items []*uploadtypes.TransferItem,
	listener uploadtypes.Listener,
) *aggregate {
	results := make([]uploadtypes.ItemResult, len(items))
	for i, item := range items {
		results[i] = uploadtypes.ItemResult{
			ItemID:    item.ID,
			LocalPath: item.LocalPath,
			RemoteKey: item.RemoteKey,
			State:     item.State,
		}
	}

	return &aggregate{
		requestID: requestID,
		bucket:    bucket,
		items:     items,
		results:   results,
		listener:  listener,
	}
}

// OnEvent forwards transport events to the configured listener.
func (a *aggregate) OnEvent(e uploadtypes.Event) {
	if a.listener != nil {
		a.listener.OnEvent(e)
	}
}

// start marks item i in flight and returns a snapshot of it.
func (a *aggregate) start(i int) uploadtypes.TransferItem {
	a.mu.Lock()
	defer a.mu.Unlock()

	item := a.items[i]
	if !item.State.Terminal() {
		item.State = uploadtypes.ItemInFlight
		a.results[i].State = uploadtypes.ItemInFlight
	}
	return *item
}

// finish records the terminal state of item i. A transport error is wrapped
// as ErrTransferFailed. Only the first call per item counts; it returns the
// recorded error.
func (a *aggregate) finish(i int, res *transport.Result, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	item := a.items[i]
	if item.State.Terminal() {
		return a.results[i].Err
	}

	if err != nil {
		wrapped := errors.TransferFailed(a.bucket, item.RemoteKey, err)
		item.State = uploadtypes.ItemFailed
		a.results[i].State = uploadtypes.ItemFailed
		a.results[i].Err = wrapped
		a.failed++
		if a.firstErr == nil {
			a.firstErr = wrapped
		}
		return wrapped
	}

	item.State = uploadtypes.ItemCompleted
	a.results[i].State = uploadtypes.ItemCompleted
	if res != nil {
		a.results[i].ETag = res.ETag
		a.results[i].VersionID = res.VersionID
		a.results[i].Location = res.Location
		a.results[i].Size = res.Size
	}
	a.succeeded++
	return nil
}

// outcome snapshots the aggregate. Call it once every item is terminal.
func (a *aggregate) outcome(duration time.Duration) *uploadtypes.UploadOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]uploadtypes.ItemResult, len(a.results))
	copy(items, a.results)

	return &uploadtypes.UploadOutcome{
		RequestID:      a.requestID,
		SucceededCount: a.succeeded,
		FailedCount:    a.failed,
		FirstError:     a.firstErr,
		Items:          items,
		Duration:       duration,
	}
}
