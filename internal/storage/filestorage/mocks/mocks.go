package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type FileStorage struct {
	mock.Mock
}

func (m *FileStorage) Save(ctx context.Context, subPath, filename string, content io.Reader) (string, int64, error) {
	args := m.Called(ctx, subPath, filename, content)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *FileStorage) Delete(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

func (m *FileStorage) URL(filePath string) string {
	args := m.Called(filePath)
	return args.String(0)
}
