package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/transport"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Transport uploads files through the S3 upload manager.
// It is safe for concurrent use.
type Transport struct {
	uploader *manager.Uploader
	config   Config
}

// New creates a transport over an existing S3 API client.
func New(client UploadAPI, opts ...Option) *Transport {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newTransport(client, cfg)
}

func newTransport(client UploadAPI, cfg Config) *Transport {
	cfg.normalize()

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})

	return &Transport{
		uploader: uploader,
		config:   cfg,
	}
}

// NewFactory returns a factory that builds one S3 client per upload request.
// Options set defaults; the request environment overrides them.
func NewFactory(opts ...Option) transport.Factory {
	return transport.FactoryFunc(func(ctx context.Context, env uploadtypes.Environment) (transport.Transport, error) {
		cfg := defaultConfig()
		for _, opt := range opts {
			opt(&cfg)
		}
		if err := applyEnvironment(&cfg, env); err != nil {
			return nil, err
		}

		client, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return newTransport(client, cfg), nil
	})
}

// newClient builds an S3 client, loading credentials through the default
// chain unless static keys or a custom AWS config are supplied.
func newClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	var awsCfg aws.Config

	if cfg.CustomAWSConfig != nil {
		awsCfg = cfg.CustomAWSConfig.Copy()
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
		}
		if cfg.Profile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
		}
		if cfg.AccessKeyID != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
			))
		}
		if cfg.MaxRetries > 0 {
			loadOpts = append(loadOpts, config.WithRetryMaxAttempts(cfg.MaxRetries))
		}

		var err error
		awsCfg, err = config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.NewError("transport", fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)).
				WithMessage("load aws config")
		}
	}

	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}

	var s3Opts []func(*s3.Options)
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

// Upload sends f to S3. The body is streamed through the upload manager, so
// objects larger than the part size are sent as a concurrent multipart upload.
func (t *Transport) Upload(ctx context.Context, f *transport.File, l uploadtypes.Listener) (*transport.Result, error) {
	events := transport.NewEmitter(f, l)

	file, err := f.Open()
	if err != nil {
		err = fmt.Errorf("open %s: %w", f.LocalPath, err)
		events.Failed(0, err)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	contentType := transport.DetectContentType(file, f.LocalPath)

	// Hide Seek and ReadAt so the manager reads sequentially through the
	// progress counter.
	body := transport.NewProgressReader(file, events.Progress)

	events.Started()
	out, err := t.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.Bucket),
		Key:         aws.String(f.Key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		err = classifyError(err)
		events.Failed(body.BytesRead(), err)
		return nil, err
	}

	result := &transport.Result{
		ETag:      strings.Trim(aws.ToString(out.ETag), `"`),
		VersionID: aws.ToString(out.VersionID),
		Location:  out.Location,
		UploadID:  out.UploadID,
		Size:      body.BytesRead(),
	}
	events.Completed(result.Size)

	return result, nil
}

// Close releases the transport. SDK clients hold no resources that need
// explicit release, so this only exists to satisfy transport.Transport.
func (t *Transport) Close() error {
	return nil
}

var _ transport.Transport = (*Transport)(nil)
