package s3

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
)

// classifyError tags SDK errors with the matching sentinel so callers can use
// errors.Is without depending on the SDK. The original error stays wrapped.
func classifyError(err error) error {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("%w: %w", errors.ErrBucketNotFound, err)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return fmt.Errorf("%w: %w", errors.ErrAccessDenied, err)
		case "RequestTimeout":
			return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}

	return err
}
