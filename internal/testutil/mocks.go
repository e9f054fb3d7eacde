// Package testutil provides test utilities and mocks for the uploader.
// This package is internal and should only be used for testing within this module.
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MockUploadAPI is a mock implementation of the S3 upload API for testing.
// It allows customization of each S3 operation through function fields.
type MockUploadAPI struct {
	PutObjectFunc               func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	UploadPartFunc              func(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CreateMultipartUploadFunc   func(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	CompleteMultipartUploadFunc func(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUploadFunc    func(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
}

// PutObject mocks the S3 PutObject operation.
func (m *MockUploadAPI) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	if params.Body != nil {
		_, _ = io.Copy(io.Discard, params.Body)
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"mock-etag"`)}, nil
}

// UploadPart mocks the S3 UploadPart operation.
func (m *MockUploadAPI) UploadPart(
	ctx context.Context,
	params *s3.UploadPartInput,
	optFns ...func(*s3.Options),
) (*s3.UploadPartOutput, error) {
	if m.UploadPartFunc != nil {
		return m.UploadPartFunc(ctx, params, optFns...)
	}
	if params.Body != nil {
		_, _ = io.Copy(io.Discard, params.Body)
	}
	return &s3.UploadPartOutput{ETag: aws.String(`"mock-part-etag"`)}, nil
}

// CreateMultipartUpload mocks the S3 CreateMultipartUpload operation.
func (m *MockUploadAPI) CreateMultipartUpload(
	ctx context.Context,
	params *s3.CreateMultipartUploadInput,
	optFns ...func(*s3.Options),
) (*s3.CreateMultipartUploadOutput, error) {
	if m.CreateMultipartUploadFunc != nil {
		return m.CreateMultipartUploadFunc(ctx, params, optFns...)
	}
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String("mock-upload-id")}, nil
}

// CompleteMultipartUpload mocks the S3 CompleteMultipartUpload operation.
func (m *MockUploadAPI) CompleteMultipartUpload(
	ctx context.Context,
	params *s3.CompleteMultipartUploadInput,
	optFns ...func(*s3.Options),
) (*s3.CompleteMultipartUploadOutput, error) {
	if m.CompleteMultipartUploadFunc != nil {
		return m.CompleteMultipartUploadFunc(ctx, params, optFns...)
	}
	return &s3.CompleteMultipartUploadOutput{ETag: aws.String(`"mock-multipart-etag"`)}, nil
}

// AbortMultipartUpload mocks the S3 AbortMultipartUpload operation.
func (m *MockUploadAPI) AbortMultipartUpload(
	ctx context.Context,
	params *s3.AbortMultipartUploadInput,
	optFns ...func(*s3.Options),
) (*s3.AbortMultipartUploadOutput, error) {
	if m.AbortMultipartUploadFunc != nil {
		return m.AbortMultipartUploadFunc(ctx, params, optFns...)
	}
	return &s3.AbortMultipartUploadOutput{}, nil
}

// PutRecorder collects the objects a MockUploadAPI receives through PutObject.
type PutRecorder struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

// NewPutRecorder creates an empty recorder.
func NewPutRecorder() *PutRecorder {
	return &PutRecorder{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

// PutObject records the body and content type under bucket/key.
func (r *PutRecorder) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	var body []byte
	if params.Body != nil {
		b, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}

	name := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Objects[name] = body
	r.Types[name] = aws.ToString(params.ContentType)

	return &s3.PutObjectOutput{ETag: aws.String(`"` + name + `"`)}, nil
}

// Get returns the recorded body for bucket/key.
func (r *PutRecorder) Get(name string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.Objects[name]
	return b, ok
}
