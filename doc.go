// Package s3upload uploads a local file or directory tree to an object store
// bucket and reports per-object completion and an overall outcome.
//
// The Coordinator decides between single-file and directory uploads, maps
// local paths to object keys and tracks every object until it is terminal.
// Byte transfer (chunking, retries, the wire protocol) is delegated to a
// transport.Transport obtained from a transport.Factory for each request.
//
// Key features:
//   - Synchronous validation; the upload itself runs in the background
//   - Directory uploads keyed by forward-slash relative paths under a prefix
//   - Bounded concurrency across objects
//   - Per-object results and progress events tagged with an item ID
//   - Failures collected per object; the first one is surfaced
//
// Example usage:
//
//	coord, err := s3upload.New(s3.NewFactory(),
//	    s3upload.WithWorkspace("/build"),
//	    s3upload.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    return err
//	}
//
//	future, err := coord.Submit(ctx, uploadtypes.UploadRequest{
//	    SourcePath: "dist",
//	    Bucket:     "artifacts",
//	    KeyPrefix:  "releases/v1.2.0",
//	})
//	if err != nil {
//	    return err // invalid request, nothing was started
//	}
//
//	outcome, err := future.Wait(ctx)
package s3upload
