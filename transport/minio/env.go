package minio

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Environment keys read by the factory. MinIO names win over the AWS names,
// which are accepted so one environment can drive either transport.
const (
	EnvEndpoint     = "MINIO_ENDPOINT"
	EnvSecure       = "MINIO_SECURE"
	EnvRegion       = "MINIO_REGION"
	EnvAccessKey    = "MINIO_ACCESS_KEY"
	EnvSecretKey    = "MINIO_SECRET_KEY"
	EnvAWSEndpoint  = "AWS_ENDPOINT_URL_S3"
	EnvAWSRegion    = "AWS_REGION"
	EnvAWSAccessKey = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey = "AWS_SECRET_ACCESS_KEY"
	EnvAWSToken     = "AWS_SESSION_TOKEN"
)

// applyEnvironment overlays environment settings on cfg.
func applyEnvironment(cfg *Config, env uploadtypes.Environment) error {
	if endpoint := env.Get(EnvEndpoint, ""); endpoint != "" {
		cfg.Endpoint = endpoint
	} else if raw := env.Get(EnvAWSEndpoint, ""); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return errors.NewError("transport", errors.ErrInvalidConfig).
				WithMessage(fmt.Sprintf("%s must be an absolute URL, got %q", EnvAWSEndpoint, raw))
		}
		cfg.Endpoint = u.Host
		cfg.Secure = u.Scheme == "https"
	}

	if v := env.Get(EnvSecure, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewError("transport", errors.ErrInvalidConfig).
				WithMessage(fmt.Sprintf("%s must be a boolean, got %q", EnvSecure, v))
		}
		cfg.Secure = b
	}

	if region := env.Get(EnvRegion, env.Get(EnvAWSRegion, "")); region != "" {
		cfg.Region = region
	}

	if key := env.Get(EnvAccessKey, env.Get(EnvAWSAccessKey, "")); key != "" {
		cfg.AccessKey = key
	}
	if secret := env.Get(EnvSecretKey, env.Get(EnvAWSSecretKey, "")); secret != "" {
		cfg.SecretKey = secret
	}
	if token := env.Get(EnvAWSToken, ""); token != "" {
		cfg.SessionToken = token
	}

	if cfg.Endpoint == "" {
		return errors.NewError("transport", errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("%s must be set", EnvEndpoint))
	}

	return nil
}
