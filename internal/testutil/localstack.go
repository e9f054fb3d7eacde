package testutil

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

const (
	localStackRegion = "us-east-1"
	localStackKey    = "test"
)

// LocalStack wraps a LocalStack container for integration tests.
type LocalStack struct {
	container *localstack.LocalStackContainer
	endpoint  string
	client    *s3.Client
}

// StartLocalStack starts a LocalStack container and returns it with a cleanup
// function. The test is skipped in short mode.
func StartLocalStack(t *testing.T) (*LocalStack, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := localstack.Run(ctx,
		"localstack/localstack:latest",
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort("4566").
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start LocalStack container: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate LocalStack container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		cleanup()
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "4566")
	if err != nil {
		cleanup()
		t.Fatalf("Failed to get container port: %v", err)
	}

	ls := &LocalStack{
		container: container,
		endpoint:  fmt.Sprintf("http://%s:%s", host, port.Port()),
	}

	ls.client, err = ls.newClient(ctx)
	if err != nil {
		cleanup()
		t.Fatalf("Failed to create S3 client: %v", err)
	}

	return ls, cleanup
}

func (l *LocalStack) newClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(localStackRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(localStackKey, localStackKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(l.endpoint)
	}), nil
}

// Client returns an S3 client pointed at the container.
func (l *LocalStack) Client() *s3.Client {
	return l.client
}

// Environment returns the transport environment that targets the container.
func (l *LocalStack) Environment() uploadtypes.Environment {
	return uploadtypes.Environment{
		"AWS_REGION":              localStackRegion,
		"AWS_ENDPOINT_URL_S3":     l.endpoint,
		"AWS_ACCESS_KEY_ID":       localStackKey,
		"AWS_SECRET_ACCESS_KEY":   localStackKey,
		"AWS_S3_FORCE_PATH_STYLE": "true",
	}
}

// CreateBucket creates a bucket in the container.
func (l *LocalStack) CreateBucket(ctx context.Context, bucket string) error {
	_, err := l.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// GetObject returns the content of bucket/key.
func (l *LocalStack) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return b, nil
}
