package s3upload

import (
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// WithConcurrency sets how many objects transfer at once per request.
// Default is 5.
func WithConcurrency(concurrency int) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithLogger configures the coordinator with a structured logger.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets the filesystem sources are read from.
// Default is the native OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.Filesystem = filesystem
	}
}

// WithWorkspace sets the working directory relative source paths resolve
// against. Default is the process working directory.
func WithWorkspace(root string) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.Workspace = root
	}
}

// WithEnvironment sets the environment handed to the transport factory for
// every request.
func WithEnvironment(env uploadtypes.Environment) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.Environment = env
	}
}

// WithProgressListener receives every transport event of every request.
// The listener is called from multiple goroutines.
func WithProgressListener(l uploadtypes.Listener) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.ProgressListener = l
	}
}

// WithIncludePatterns limits directory uploads to files matching at least one
// pattern. Single-file uploads ignore patterns.
func WithIncludePatterns(patterns ...string) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.IncludePatterns = append(c.IncludePatterns, patterns...)
	}
}

// WithExcludePatterns drops files matching any pattern from directory
// uploads. Excludes win over includes.
func WithExcludePatterns(patterns ...string) uploadtypes.Option {
	return func(c *uploadtypes.CoordinatorConfig) {
		c.ExcludePatterns = append(c.ExcludePatterns, patterns...)
	}
}
