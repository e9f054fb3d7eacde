// Package transport defines the byte-level upload contract the coordinator
// hands items to, together with helpers shared by transport implementations.
//
// A Transport owns chunking, retries and the wire protocol. The coordinator
// acquires one Transport per request through a Factory, hands it every item
// and closes it once every item is terminal.
package transport

import (
	"context"
	"fmt"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// File is one object to upload.
type File struct {
	// ItemID tags every event emitted for this file
	ItemID string

	// LocalPath is the source path, for logs and content-type fallback
	LocalPath string

	Bucket string
	Key    string

	// Size is the size at enumeration time, or -1 when unknown
	Size int64

	// Open returns a fresh handle on the source. The transport closes it.
	Open func() (fs.File, error)
}

// Description returns the human-readable label used in completion logs.
func (f *File) Description() string {
	return fmt.Sprintf("Uploading to %s/%s", f.Bucket, f.Key)
}

// Result is what a transport reports for a completed upload.
type Result struct {
	ETag      string
	VersionID string
	Location  string
	UploadID  string
	Size      int64
}

// Transport uploads single files to object storage.
// Upload must be safe for concurrent use.
type Transport interface {
	// Upload sends f and blocks until the transfer is terminal. Implementations
	// emit Started, Progress and exactly one of Completed or Failed to l.
	Upload(ctx context.Context, f *File, l uploadtypes.Listener) (*Result, error)

	// Close releases the transport's resources.
	Close() error
}

// Factory creates a Transport for one upload request.
type Factory interface {
	Open(ctx context.Context, env uploadtypes.Environment) (Transport, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, env uploadtypes.Environment) (Transport, error)

// Open implements Factory.
//
//nolint:ireturn // Factory.Open returns the Transport interface.
func (f FactoryFunc) Open(ctx context.Context, env uploadtypes.Environment) (Transport, error) {
	return f(ctx, env)
}

// Static returns a Factory that always hands out t. The coordinator's Close
// is not forwarded, so t stays usable across requests and the caller keeps
// ownership.
func Static(t Transport) Factory {
	return FactoryFunc(func(context.Context, uploadtypes.Environment) (Transport, error) {
		return shared{t}, nil
	})
}

type shared struct {
	Transport
}

func (shared) Close() error { return nil }
