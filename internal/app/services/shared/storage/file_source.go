package storage

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"context"
	"io"
	"os"
)

type fileSource struct {
	path string
}

// NewFileSource reads the timetable CSV from a local path on every Open.
func NewFileSource(path string) contracts.TimetableSource {
	return &fileSource{path: path}
}

func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, exceptions.ErrScheduleRead(err, s.path)
	}
	return file, nil
}

func (s *fileSource) Kind() string {
	return constvars.TimetableSourceFile
}

func (s *fileSource) Location() string {
	return s.path
}
