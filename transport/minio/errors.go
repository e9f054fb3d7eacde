package minio

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
)

// classifyError tags minio-go errors with the matching sentinel.
func classifyError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", errors.ErrBucketNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %w", errors.ErrAccessDenied, err)
	case "RequestTimeout":
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}

	return err
}
