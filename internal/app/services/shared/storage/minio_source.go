package storage

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectGetter is the slice of *minio.Client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

type minioSource struct {
	client     ObjectGetter
	bucketName string
	objectName string
}

func NewMinioSource(client ObjectGetter, bucketName, objectName string) contracts.TimetableSource {
	return &minioSource{
		client:     client,
		bucketName: bucketName,
		objectName: objectName,
	}
}

// Open downloads the whole object before returning so that a transport
// failure surfaces here rather than halfway through parsing.
func (s *minioSource) Open(ctx context.Context) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucketName, s.objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, s.bucketName, s.objectName)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, s.bucketName, s.objectName)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *minioSource) Kind() string {
	return constvars.TimetableSourceMinio
}

func (s *minioSource) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucketName, s.objectName)
}
