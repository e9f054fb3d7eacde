package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Transport uploads files with minio-go. It is safe for concurrent use.
type Transport struct {
	client *minio.Client
	config Config
}

// New creates a transport from options alone.
func New(opts ...Option) (*Transport, error) {
	cfg := Config{Region: DefaultRegion}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Endpoint == "" {
		return nil, errors.NewError("transport", errors.ErrInvalidConfig).
			WithMessage("endpoint must be set")
	}
	return newTransport(cfg)
}

func newTransport(cfg Config) (*Transport, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		Secure:    cfg.Secure,
		Region:    cfg.Region,
		Transport: cfg.HTTPTransport,
	})
	if err != nil {
		return nil, errors.NewError("transport", fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)).
			WithMessage("create minio client")
	}

	return &Transport{client: client, config: cfg}, nil
}

// NewFactory returns a factory that builds one client per upload request.
// Options set defaults; the request environment overrides them.
func NewFactory(opts ...Option) transport.Factory {
	return transport.FactoryFunc(func(_ context.Context, env uploadtypes.Environment) (transport.Transport, error) {
		cfg := Config{Region: DefaultRegion}
		for _, opt := range opts {
			opt(&cfg)
		}
		if err := applyEnvironment(&cfg, env); err != nil {
			return nil, err
		}
		return newTransport(cfg)
	})
}

// Upload sends f with PutObject. minio-go switches to a multipart upload on
// its own for large objects and reports sent bytes through the progress hook.
func (t *Transport) Upload(ctx context.Context, f *transport.File, l uploadtypes.Listener) (*transport.Result, error) {
	events := transport.NewEmitter(f, l)

	file, err := f.Open()
	if err != nil {
		err = fmt.Errorf("open %s: %w", f.LocalPath, err)
		events.Failed(0, err)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	size := f.Size
	if info, statErr := file.Stat(); statErr == nil {
		size = info.Size()
	}

	progress := transport.NewProgressHook(events.Progress)

	events.Started()
	info, err := t.client.PutObject(ctx, f.Bucket, f.Key, file, size, minio.PutObjectOptions{
		ContentType: transport.DetectContentType(file, f.LocalPath),
		Progress:    progress,
		PartSize:    t.config.PartSize,
		NumThreads:  t.config.NumThreads,
	})
	if err != nil {
		err = classifyError(err)
		events.Failed(progress.BytesRead(), err)
		return nil, err
	}

	result := &transport.Result{
		ETag:      info.ETag,
		VersionID: info.VersionID,
		Location:  info.Location,
		Size:      info.Size,
	}
	events.Completed(result.Size)

	return result, nil
}

// Close releases idle connections held by the client.
func (t *Transport) Close() error {
	if closer, ok := t.config.HTTPTransport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
	return nil
}

var _ transport.Transport = (*Transport)(nil)
