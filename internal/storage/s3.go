package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Object is a single write-once artifact.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Store persists objects and reports where they live.
type Store interface {
	Put(ctx context.Context, obj Object) error
	Location(key string) string
}

type S3Store struct {
	client S3API
	bucket string
}

func NewS3Store(client S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Bucket() string {
	return s.bucket
}

func (s *S3Store) Put(ctx context.Context, obj Object) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(obj.Key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
		Metadata:    obj.Metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", s.Location(obj.Key), err)
	}
	return nil
}

// Location returns the s3://bucket/key URI of key.
func (s *S3Store) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}
