// Package uploadtypes provides shared type definitions for the upload coordinator and its transports.
package uploadtypes

import (
	"log/slog"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// UploadRequest describes one upload: a local file or directory and where it goes.
type UploadRequest struct {
	// SourcePath is the local file or directory, relative to the workspace or absolute
	SourcePath string

	// Bucket is the destination bucket
	Bucket string

	// KeyPrefix is the object key for a file, or the key prefix for a directory
	KeyPrefix string
}

// ItemState is the lifecycle state of a single transfer.
type ItemState int

const (
	// ItemPending means the item was enumerated but not yet handed to the transport.
	ItemPending ItemState = iota

	// ItemInFlight means the transport is sending the item.
	ItemInFlight

	// ItemCompleted means the transport reported success. Terminal.
	ItemCompleted

	// ItemFailed means the transport reported failure or the item never started. Terminal.
	ItemFailed
)

// String returns the lowercase name of the state.
func (s ItemState) String() string {
	switch s {
	case ItemPending:
		return "pending"
	case ItemInFlight:
		return "in_flight"
	case ItemCompleted:
		return "completed"
	case ItemFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s ItemState) Terminal() bool {
	return s == ItemCompleted || s == ItemFailed
}

// TransferItem is one local file mapped to one remote key.
type TransferItem struct {
	// ID tags every progress event for this item
	ID string

	// LocalPath is the absolute path on the source filesystem
	LocalPath string

	// RemoteKey is the destination object key
	RemoteKey string

	// Size is the file size in bytes at enumeration time
	Size int64

	// State is the current lifecycle state
	State ItemState
}

// ItemResult is the terminal record of one transfer.
type ItemResult struct {
	ItemID    string
	LocalPath string
	RemoteKey string
	State     ItemState

	// ETag, VersionID and Location are set on success when the transport reports them
	ETag      string
	VersionID string
	Location  string

	// Size is the number of bytes the transport reported as sent
	Size int64

	// Err is the failure cause; nil on success
	Err error
}

// UploadOutcome is the aggregate result of an upload request.
// It is computed once every item is terminal.
type UploadOutcome struct {
	// RequestID identifies the submission in logs
	RequestID string

	// SucceededCount is the number of completed items
	SucceededCount int

	// FailedCount is the number of failed items
	FailedCount int

	// FirstError is the first failure observed, nil when all items succeeded
	FirstError error

	// Items holds per-item results in enumeration order
	Items []ItemResult

	// Duration is the wall time from submission to the last terminal item
	Duration time.Duration
}

// Succeeded reports whether every item completed.
func (o *UploadOutcome) Succeeded() bool {
	return o.FirstError == nil
}

// EventType identifies a progress event.
type EventType int

const (
	// EventStarted is emitted once before the first byte is sent.
	EventStarted EventType = iota

	// EventProgress is emitted as bytes are read by the transport.
	EventProgress

	// EventCompleted is emitted once when the transport reports success.
	EventCompleted

	// EventFailed is emitted once when the transport reports failure.
	EventFailed
)

// String returns the lowercase name of the event type.
func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a progress notification for a single item.
type Event struct {
	// ItemID is the TransferItem the event belongs to
	ItemID string

	// Type is the kind of event
	Type EventType

	// Bucket and Key identify the destination object
	Bucket string
	Key    string

	// BytesTransferred is the running total of bytes sent
	BytesTransferred int64

	// TotalBytes is the item size, or -1 when unknown
	TotalBytes int64

	// Err is set on EventFailed
	Err error
}

// Listener receives progress events. Implementations must be safe for
// concurrent use because items transfer in parallel.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Environment carries opaque settings from the host to the transport factory,
// for example region, endpoint or static credentials.
type Environment map[string]string

// Get returns the value for key, or def when it is unset or empty.
func (e Environment) Get(key, def string) string {
	if v, ok := e[key]; ok && v != "" {
		return v
	}
	return def
}

// Configuration types for functional options

// CoordinatorConfig holds configuration for the upload coordinator.
type CoordinatorConfig struct {
	Concurrency      int
	Logger           *slog.Logger
	Filesystem       fs.Filesystem
	Workspace        string
	Environment      Environment
	ProgressListener Listener
	IncludePatterns  []string
	ExcludePatterns  []string
}

// Option is a functional option for configuring the upload coordinator.
type Option func(*CoordinatorConfig)
