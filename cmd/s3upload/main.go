// Command s3upload uploads a file or directory tree to an S3 bucket.
//
// Usage:
//
//	s3upload <file> <bucket> <path>
//
// A file is stored under <path> verbatim. A directory is stored with every
// file under <path>/<relative path>. Transport, concurrency, logging and
// filters are configured through S3UPLOAD_* variables; AWS_* and MINIO_*
// variables configure the transport itself.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport/minio"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport/s3"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = "usage: s3upload <file> <bucket> <path>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	cfg, err := loadSettings()
	if err != nil {
		fmt.Fprintf(stderr, "s3upload: %v\n", err)
		return exitUsage
	}

	logger := cfg.logger(stderr)

	coord, err := s3upload.New(newFactory(cfg),
		s3upload.WithLogger(logger),
		s3upload.WithConcurrency(cfg.Concurrency),
		s3upload.WithWorkspace(cfg.Workspace),
		s3upload.WithEnvironment(environ()),
		s3upload.WithIncludePatterns(cfg.Include...),
		s3upload.WithExcludePatterns(cfg.Exclude...),
	)
	if err != nil {
		fmt.Fprintf(stderr, "s3upload: %v\n", err)
		return exitUsage
	}

	outcome, err := coord.Upload(ctx, uploadtypes.UploadRequest{
		SourcePath: args[0],
		Bucket:     args[1],
		KeyPrefix:  args[2],
	})
	if err != nil {
		fmt.Fprintf(stderr, "s3upload: [%s] %v\n", errors.Code(err), err)
		if errors.IsInvalidArgument(err) {
			fmt.Fprintln(stderr, usage)
			return exitUsage
		}
		return exitFailure
	}

	logger.Debug("uploaded objects", "count", outcome.SucceededCount)
	return exitOK
}

//nolint:ireturn // Factory is selected at runtime.
func newFactory(cfg *settings) transport.Factory {
	if cfg.Transport == transportMinIO {
		var opts []minio.Option
		if cfg.PartSize > 0 {
			opts = append(opts, minio.WithPartSize(uint64(cfg.PartSize)))
		}
		return minio.NewFactory(opts...)
	}
	return s3.NewFactory(s3.WithPartSize(cfg.PartSize))
}

// environ returns the process environment as a transport Environment.
func environ() uploadtypes.Environment {
	env := make(uploadtypes.Environment)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
