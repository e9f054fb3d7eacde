package minio

import "net/http"

// DefaultRegion is used when neither options nor environment name one.
// Setting a region up front stops minio-go from probing the bucket location.
const DefaultRegion = "us-east-1"

// Config holds configuration for the MinIO transport.
type Config struct {
	Endpoint     string
	Secure       bool
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string

	// PartSize is the multipart chunk size; zero lets minio-go choose.
	PartSize uint64

	// NumThreads is the number of parts sent in parallel; zero lets minio-go choose.
	NumThreads uint

	// HTTPTransport overrides the HTTP round tripper.
	HTTPTransport http.RoundTripper
}

// Option is a functional option for configuring the MinIO transport.
type Option func(*Config)

// WithEndpoint sets the host[:port] of the object store.
func WithEndpoint(endpoint string, secure bool) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
		c.Secure = secure
	}
}

// WithRegion sets the region.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithCredentials sets static credentials.
func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Config) {
		c.AccessKey = accessKey
		c.SecretKey = secretKey
	}
}

// WithPartSize sets the multipart chunk size.
func WithPartSize(partSize uint64) Option {
	return func(c *Config) {
		c.PartSize = partSize
	}
}

// WithNumThreads sets how many parts of one object are sent in parallel.
func WithNumThreads(n uint) Option {
	return func(c *Config) {
		c.NumThreads = n
	}
}

// WithHTTPTransport overrides the HTTP round tripper.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Config) {
		c.HTTPTransport = rt
	}
}
