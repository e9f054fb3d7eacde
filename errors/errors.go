package errors

import (
	"errors"
	"fmt"
)

// Error represents an upload error with context about the operation that failed.
type Error struct {
	// Op is the operation that failed (e.g., "submit", "upload", "enumerate")
	Op string

	// Bucket is the destination bucket name (if applicable)
	Bucket string

	// Key is the destination object key (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3upload.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3upload.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3upload.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3upload.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// TransferFailed wraps a transport error for a single object so that it
// matches ErrTransferFailed while keeping the transport cause reachable.
func TransferFailed(bucket, key string, cause error) *Error {
	return NewObjectError("upload", bucket, key, fmt.Errorf("%w: %w", ErrTransferFailed, cause))
}

// Sentinel errors. These can be used with errors.Is() for error checking.
var (
	// ErrInvalidArgument indicates a request was rejected before any work started
	ErrInvalidArgument = errors.New("s3upload: invalid argument")

	// ErrNotFound indicates the local source path does not exist
	ErrNotFound = errors.New("s3upload: source not found")

	// ErrTransferFailed indicates the transport reported a failure for an object
	ErrTransferFailed = errors.New("s3upload: transfer failed")

	// ErrInvalidConfig indicates a transport could not be configured from its environment
	ErrInvalidConfig = errors.New("s3upload: invalid configuration")

	// ErrBucketNotFound indicates the destination bucket does not exist
	ErrBucketNotFound = errors.New("s3upload: bucket not found")

	// ErrAccessDenied indicates the destination rejected the credentials
	ErrAccessDenied = errors.New("s3upload: access denied")

	// ErrTimeout indicates the operation timed out
	ErrTimeout = errors.New("s3upload: operation timeout")
)

// IsInvalidArgument checks if an error indicates a rejected request.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound checks if an error indicates a missing source path.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransferFailed checks if an error indicates a failed object transfer.
func IsTransferFailed(err error) bool {
	return errors.Is(err, ErrTransferFailed)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
