package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
)

// S3API подмножество клиента S3, которое использует хранилище
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Options struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	UsePathStyle    bool
}

// S3FileStorage хранит файлы в S3-совместимом хранилище (AWS, MinIO)
type S3FileStorage struct {
	client    S3API
	bucket    string
	publicURL string
}

func NewS3FileStorage(ctx context.Context, opts S3Options) (*S3FileStorage, error) {
	const op = "filestorage.NewS3FileStorage"

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	publicURL := opts.PublicURL
	if publicURL == "" && opts.Endpoint != "" {
		publicURL = joinURL(opts.Endpoint, opts.Bucket)
	}

	return NewS3FileStorageWithClient(client, opts.Bucket, publicURL), nil
}

func NewS3FileStorageWithClient(client S3API, bucket, publicURL string) *S3FileStorage {
	return &S3FileStorage{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}
}

func (s *S3FileStorage) Save(ctx context.Context, subPath, filename string, content io.Reader) (string, int64, error) {
	const op = "filestorage.S3FileStorage.Save"

	data, err := io.ReadAll(content)
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to read content: %w", op, err)
	}

	name := CleanFilename(filename)
	key := path.Join(subPath, name)

	for attempt := 0; attempt < 10; attempt++ {
		exists, err := s.exists(ctx, key)
		if err != nil {
			return "", 0, fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			break
		}
		key = path.Join(subPath, alternativeName(name))
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to put object: %w", op, err)
	}

	return key, int64(len(data)), nil
}

func (s *S3FileStorage) Delete(ctx context.Context, filePath string) error {
	const op = "filestorage.S3FileStorage.Delete"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *S3FileStorage) URL(filePath string) string {
	return joinURL(s.publicURL, filePath)
}

func (s *S3FileStorage) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}

	return false, err
}
