package validation

import (
	"strings"
	"unicode"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// MaxKeyLength is the longest object key S3 accepts, in bytes.
const MaxKeyLength = 1024

// ValidateRequest checks that a request names a bucket and a key prefix.
// Bucket is checked first, so a request missing both reports the bucket.
func ValidateRequest(req uploadtypes.UploadRequest) error {
	if strings.TrimSpace(req.Bucket) == "" {
		return errors.NewError("submit", errors.ErrInvalidArgument).
			WithMessage("bucket must not be empty")
	}

	if hasControlCharacters(req.Bucket) {
		return errors.NewError("submit", errors.ErrInvalidArgument).
			WithBucket(req.Bucket).
			WithMessage("bucket cannot contain control characters")
	}

	if strings.TrimSpace(req.KeyPrefix) == "" {
		return errors.NewError("submit", errors.ErrInvalidArgument).
			WithBucket(req.Bucket).
			WithMessage("path must not be empty")
	}

	return ValidateObjectKey(req.KeyPrefix)
}

// ValidateObjectKey validates that an object key is valid according to S3 rules.
// This includes preventing path traversal segments and control characters.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidArgument).
			WithMessage("object key cannot be empty")
	}

	if hasPathTraversal(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidArgument).
			WithKey(key).
			WithMessage("object key cannot contain path traversal sequences")
	}

	if len(key) > MaxKeyLength {
		return errors.NewError("validateObjectKey", errors.ErrInvalidArgument).
			WithKey(key[:64] + "...").
			WithMessage("object key cannot exceed 1024 bytes")
	}

	if hasControlCharacters(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidArgument).
			WithKey(key).
			WithMessage("object key cannot contain control characters")
	}

	return nil
}

// hasPathTraversal reports whether any slash-separated segment is "..".
func hasPathTraversal(key string) bool {
	for _, seg := range strings.Split(strings.ReplaceAll(key, "\\", "/"), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// hasControlCharacters checks for control characters in the key
func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}
