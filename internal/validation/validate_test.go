package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       uploadtypes.UploadRequest
		wantError bool
		errMsg    string
	}{
		{"valid_file", uploadtypes.UploadRequest{SourcePath: "a.txt", Bucket: "b", KeyPrefix: "k/a.txt"}, false, ""},
		{"valid_empty_source", uploadtypes.UploadRequest{Bucket: "b", KeyPrefix: "k"}, false, ""},
		{"empty_bucket", uploadtypes.UploadRequest{SourcePath: "a.txt", KeyPrefix: "k"}, true, "bucket must not be empty"},
		{"blank_bucket", uploadtypes.UploadRequest{SourcePath: "a.txt", Bucket: "  ", KeyPrefix: "k"}, true, "bucket must not be empty"},
		{"empty_bucket_and_prefix", uploadtypes.UploadRequest{SourcePath: "a.txt"}, true, "bucket must not be empty"},
		{"empty_prefix", uploadtypes.UploadRequest{SourcePath: "a.txt", Bucket: "b"}, true, "path must not be empty"},
		{"blank_prefix", uploadtypes.UploadRequest{SourcePath: "a.txt", Bucket: "b", KeyPrefix: "  "}, true, "path must not be empty"},
		{"blank_prefix_tab", uploadtypes.UploadRequest{SourcePath: "a.txt", Bucket: "b", KeyPrefix: " \t"}, true, "path must not be empty"},
		{"control_in_bucket", uploadtypes.UploadRequest{Bucket: "b\n", KeyPrefix: "k"}, true, "control characters"},
		{"traversal_prefix", uploadtypes.UploadRequest{Bucket: "b", KeyPrefix: "k/../x"}, true, "path traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantError bool
		errMsg    string
	}{
		{"simple", "file.txt", false, ""},
		{"nested", "dir/sub/file.txt", false, ""},
		{"double_dot_in_name", "dir/file..txt", false, ""},
		{"trailing_slash", "prefix/", false, ""},
		{"unicode", "dossier/été.txt", false, ""},
		{"max_length", strings.Repeat("a", 1024), false, ""},

		{"empty", "", true, "object key cannot be empty"},
		{"parent_segment", "../etc/passwd", true, "path traversal"},
		{"inner_parent_segment", "a/../../b", true, "path traversal"},
		{"backslash_parent_segment", "a\\..\\b", true, "path traversal"},
		{"too_long", strings.Repeat("a", 1025), true, "cannot exceed 1024 bytes"},
		{"null_byte", "file\x00.txt", true, "control characters"},
		{"tab", "file\t.txt", true, "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
