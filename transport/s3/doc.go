// Package s3 implements the upload transport on the AWS SDK for Go v2.
//
// Objects are sent through the SDK's upload manager, which switches to a
// concurrent multipart upload once a body exceeds the configured part size
// and relies on the SDK retryer for transient failures. Client settings are
// read from the environment handed to the factory, so each upload request can
// target its own region, endpoint or credentials.
package s3
