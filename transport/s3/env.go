package s3

import (
	"fmt"
	"strconv"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Environment keys read by the factory. They follow the AWS CLI names so a
// host can pass its process environment through unchanged.
const (
	EnvRegion          = "AWS_REGION"
	EnvDefaultRegion   = "AWS_DEFAULT_REGION"
	EnvProfile         = "AWS_PROFILE"
	EnvEndpoint        = "AWS_ENDPOINT_URL_S3"
	EnvEndpointGlobal  = "AWS_ENDPOINT_URL"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvMaxAttempts     = "AWS_MAX_ATTEMPTS"
	EnvForcePathStyle  = "AWS_S3_FORCE_PATH_STYLE"
)

// applyEnvironment overlays environment settings on cfg.
func applyEnvironment(cfg *Config, env uploadtypes.Environment) error {
	if region := env.Get(EnvRegion, env.Get(EnvDefaultRegion, "")); region != "" {
		cfg.Region = region
	}
	if profile := env.Get(EnvProfile, ""); profile != "" {
		cfg.Profile = profile
	}
	if endpoint := env.Get(EnvEndpoint, env.Get(EnvEndpointGlobal, "")); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	id, secret := env.Get(EnvAccessKeyID, ""), env.Get(EnvSecretAccessKey, "")
	if (id == "") != (secret == "") {
		return errors.NewError("transport", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("%s and %s must be set together", EnvAccessKeyID, EnvSecretAccessKey))
	}
	if id != "" {
		cfg.AccessKeyID = id
		cfg.SecretAccessKey = secret
		cfg.SessionToken = env.Get(EnvSessionToken, "")
	}

	if v := env.Get(EnvMaxAttempts, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return errors.NewError("transport", errors.ErrInvalidConfig).
				WithMessage(fmt.Sprintf("%s must be a positive integer, got %q", EnvMaxAttempts, v))
		}
		cfg.MaxRetries = n
	}

	if v := env.Get(EnvForcePathStyle, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewError("transport", errors.ErrInvalidConfig).
				WithMessage(fmt.Sprintf("%s must be a boolean, got %q", EnvForcePathStyle, v))
		}
		cfg.ForcePathStyle = b
	}

	return nil
}
