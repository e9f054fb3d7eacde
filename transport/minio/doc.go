// Package minio implements the upload transport on minio-go for
// S3-compatible object stores such as MinIO, Ceph or Garage.
package minio
