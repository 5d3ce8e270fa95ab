package aws

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// S3API is the subset of the S3 client used for report uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArtifactRepositoryImpl grava artefatos em um bucket S3.
type ArtifactRepositoryImpl struct {
	client S3API
	bucket string
}

// NewArtifactRepository cria o repositório de artefatos no bucket informado.
func NewArtifactRepository(client S3API, bucket string) (repository.ArtifactRepository, error) {
	if bucket == "" {
		return nil, types.ErrMissingBucket
	}
	return &ArtifactRepositoryImpl{client: client, bucket: bucket}, nil
}

// NewArtifactRepositoryFromConfig cria o cliente S3 a partir da aws.Config.
func NewArtifactRepositoryFromConfig(cfg aws.Config, bucket string) (repository.ArtifactRepository, error) {
	return NewArtifactRepository(s3.NewFromConfig(cfg), bucket)
}

// Put envia o artefato com PutObject, sobrescrevendo a chave se já existir.
func (r *ArtifactRepositoryImpl) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", r.bucket, key, err)
	}
	return nil
}

// Location retorna a URL s3:// de uma chave.
func (r *ArtifactRepositoryImpl) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, key)
}
