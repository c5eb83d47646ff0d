// Package fsxs3 stores files in a single S3 bucket under a key prefix
package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx"
)

type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (f *S3FileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (f *S3FileSystem) key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

func (f *S3FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	return f.put(ctx, name, bytes.NewReader(data), contentType(name))
}

func (f *S3FileSystem) WriteFileStream(ctx context.Context, name string, r io.Reader) error {
	return f.put(ctx, name, r, contentType(name))
}

func (f *S3FileSystem) put(ctx context.Context, name string, body io.Reader, ct string) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(f.key(name)),
		Body:        body,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return fsx.ErrRegistry.NewWithCause(fsx.CodeWriteFailed, err).WithDetail("path", name)
	}
	return nil
}

func (f *S3FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	rc, err := f.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fsx.ErrRegistry.NewWithCause(fsx.CodeReadFailed, err).WithDetail("path", name)
	}
	return data, nil
}

func (f *S3FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", name)
		}
		return nil, fsx.ErrRegistry.NewWithCause(fsx.CodeReadFailed, err).WithDetail("path", name)
	}
	return out.Body, nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, name string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return errx.Wrap(err, "delete object", errx.TypeExternal)
	}
	return nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
