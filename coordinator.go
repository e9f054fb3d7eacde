package s3upload

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/executor"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/scanner"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/workspace"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Coordinator uploads files and directory trees through a transport.
// It is safe for concurrent use; every Submit gets its own items, transport
// and outcome.
type Coordinator struct {
	factory  transport.Factory
	config   uploadtypes.CoordinatorConfig
	resolver *workspace.Resolver
	scanner  *scanner.Scanner
	logger   *slog.Logger
}

// New creates a coordinator that opens transports through factory.
//
// Example:
//
//	coord, err := s3upload.New(s3.NewFactory(),
//	    s3upload.WithConcurrency(8),
//	    s3upload.WithExcludePatterns("*.tmp"),
//	)
func New(factory transport.Factory, opts ...uploadtypes.Option) (*Coordinator, error) {
	if factory == nil {
		return nil, errors.NewError("new", errors.ErrInvalidArgument).
			WithMessage("transport factory must not be nil")
	}

	cfg := uploadtypes.CoordinatorConfig{
		Concurrency: executor.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Filesystem == nil {
		cfg.Filesystem = billy.NewBaseOSFS()
	}

	if cfg.Workspace == "" {
		root, err := fs.GetAbs(".")
		if err != nil {
			return nil, errors.NewError("new", err).WithMessage("resolve working directory")
		}
		cfg.Workspace = root
	}

	matcher := scanner.NewPatternMatcher()
	patterns := append(append([]string{}, cfg.IncludePatterns...), cfg.ExcludePatterns...)
	if errs := matcher.ValidatePatterns(patterns); len(errs) > 0 {
		return nil, errors.NewError("new", fmt.Errorf("%w: %w", errors.ErrInvalidArgument, stderrors.Join(errs...)))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	resolver := workspace.NewResolver(cfg.Filesystem, cfg.Workspace)

	return &Coordinator{
		factory:  factory,
		config:   cfg,
		resolver: resolver,
		scanner:  scanner.NewScanner(resolver.Filesystem(), cfg.IncludePatterns, cfg.ExcludePatterns),
		logger:   logger,
	}, nil
}

// Submit validates req and starts the upload in the background.
//
// An empty bucket or key prefix fails here with ErrInvalidArgument and
// nothing is started. Every later failure, including a missing source
// (ErrNotFound) or a failed object (ErrTransferFailed), is reported through
// the returned Future. Cancelling ctx aborts in-flight transfers and fails
// the objects that have not started.
func (c *Coordinator) Submit(ctx context.Context, req uploadtypes.UploadRequest) (*Future, error) {
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}

	future := newFuture(uuid.NewString())
	go c.run(ctx, req, future)

	return future, nil
}

// Upload submits req and waits until every object is terminal.
func (c *Coordinator) Upload(
	ctx context.Context,
	req uploadtypes.UploadRequest,
) (*uploadtypes.UploadOutcome, error) {
	future, err := c.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	// The run drains on cancellation, so waiting on Done cannot hang.
	<-future.Done()
	return future.outcome, future.err
}

func (c *Coordinator) run(ctx context.Context, req uploadtypes.UploadRequest, future *Future) {
	start := time.Now()
	logger := c.logger.With("request_id", future.RequestID(), "bucket", req.Bucket)

	localPath := c.resolver.Resolve(req.SourcePath)
	logger.InfoContext(ctx, fmt.Sprintf("Uploading %s to s3://%s/%s",
		workspace.URI(localPath), req.Bucket, req.KeyPrefix))

	kind, items, err := c.scanner.Scan(ctx, localPath, req.KeyPrefix)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.ErrorContext(ctx, "Upload failed due to missing source file", "path", localPath)
		} else {
			logger.ErrorContext(ctx, "Upload failed", "error", err)
		}
		future.complete(nil, err)
		return
	}

	logger.DebugContext(ctx, "source enumerated",
		"workspace", c.resolver.Root(),
		"kind", kind.String(),
		"items", len(items),
	)

	agg := newAggregate(future.RequestID(), req.Bucket, items, c.config.ProgressListener)
	if len(items) > 0 {
		c.transfer(ctx, logger, agg, req.Bucket)
	}

	outcome := agg.outcome(time.Since(start))
	if outcome.FirstError != nil {
		logger.ErrorContext(ctx, "Upload failed",
			"error", outcome.FirstError,
			"succeeded", outcome.SucceededCount,
			"failed", outcome.FailedCount,
		)
		future.complete(outcome, outcome.FirstError)
		return
	}

	logger.InfoContext(ctx, "Upload complete",
		"objects", outcome.SucceededCount,
		"duration", outcome.Duration,
	)
	future.complete(outcome, nil)
}

// transfer opens one transport for the request, hands it every item and
// closes it once all of them are terminal.
func (c *Coordinator) transfer(ctx context.Context, logger *slog.Logger, agg *aggregate, bucket string) {
	tr, err := c.factory.Open(ctx, c.config.Environment)
	if err != nil {
		logger.ErrorContext(ctx, "failed to open transport", "error", err)
		for i := range agg.items {
			agg.finish(i, nil, err)
		}
		return
	}
	defer func() {
		if err := tr.Close(); err != nil {
			logger.WarnContext(ctx, "failed to close transport", "error", err)
		}
	}()

	executor.NewExecutor(c.config.Concurrency).Run(ctx, len(agg.items),
		func(ctx context.Context, i int) {
			item := agg.start(i)
			file := &transport.File{
				ItemID:    item.ID,
				LocalPath: item.LocalPath,
				Bucket:    bucket,
				Key:       item.RemoteKey,
				Size:      item.Size,
				Open: func() (fs.File, error) {
					return c.resolver.Filesystem().Open(item.LocalPath)
				},
			}

			res, err := tr.Upload(ctx, file, agg)
			if err := agg.finish(i, res, err); err != nil {
				logger.WarnContext(ctx, "Failed: "+file.Description(), "item_id", item.ID, "error", err)
				return
			}
			logger.InfoContext(ctx, "Finished: "+file.Description(), "item_id", item.ID)
		},
		func(i int, err error) {
			agg.finish(i, nil, err)
		},
	)
}
