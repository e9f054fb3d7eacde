package s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

const (
	// DefaultPartSize is the multipart chunk size.
	DefaultPartSize = 8 * 1024 * 1024

	// DefaultConcurrency is the number of parts sent in parallel per object.
	DefaultConcurrency = 5

	// DefaultMaxRetries is the SDK retry attempt count.
	DefaultMaxRetries = 3

	// DefaultRegion is used when neither options nor environment name one.
	DefaultRegion = "us-east-1"
)

// Config holds configuration for the S3 transport.
type Config struct {
	Region          string
	Profile         string
	Endpoint        string
	ForcePathStyle  bool
	MaxRetries      int
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	PartSize          int64
	Concurrency       int
	LeavePartsOnError bool

	// CustomAWSConfig bypasses config loading when set.
	CustomAWSConfig *aws.Config
}

// Option is a functional option for configuring the S3 transport.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		MaxRetries:  DefaultMaxRetries,
		PartSize:    DefaultPartSize,
		Concurrency: DefaultConcurrency,
	}
}

func (c *Config) normalize() {
	if c.PartSize < manager.MinUploadPartSize {
		c.PartSize = manager.MinUploadPartSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// WithRegion sets the AWS region.
// Environment settings handed to the factory take precedence.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *Config) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithMaxRetries sets the maximum number of SDK attempts per request.
// Default is 3.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		if maxRetries > 0 {
			c.MaxRetries = maxRetries
		}
	}
}

// WithPartSize sets the part size for multipart uploads.
// Default is 8MB. Values below the 5MB S3 minimum are raised to it.
func WithPartSize(partSize int64) Option {
	return func(c *Config) {
		if partSize > 0 {
			c.PartSize = partSize
		}
	}
}

// WithConcurrency sets how many parts of one object are sent in parallel.
// Default is 5.
func WithConcurrency(concurrency int) Option {
	return func(c *Config) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithLeavePartsOnError keeps uploaded parts when a multipart upload fails
// instead of aborting it.
func WithLeavePartsOnError(leave bool) Option {
	return func(c *Config) {
		c.LeavePartsOnError = leave
	}
}

// WithAWSConfig supplies a ready AWS configuration, skipping credential and
// region loading. Endpoint and path-style settings still apply.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(c *Config) {
		c.CustomAWSConfig = cfg
	}
}
