package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"mediavault/dam_backend/internal/config"
	"mediavault/dam_backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Service struct {
	config   *config.Config
	uploader *manager.Uploader
	s3Client *s3.Client
	urlCache repository.URLCacheRepository
}

func NewS3Service(cfg *config.Config, urlCache repository.URLCacheRepository) (*S3Service, error) {
	s3Opts := []func(*s3.Options){}

	if cfg.S3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	credsProvider := credentials.NewStaticCredentialsProvider(
		cfg.S3AccessKeyID,
		cfg.S3SecretAccessKey,
		"",
	)

	awsCfg := aws.Config{
		Region:      cfg.S3Region,
		Credentials: credsProvider,
	}

	s3Client := s3.NewFromConfig(awsCfg, s3Opts...)

	service := &S3Service{
		config:   cfg,
		uploader: manager.NewUploader(s3Client),
		s3Client: s3Client,
		urlCache: urlCache,
	}

	log.Printf("S3 service initialized with endpoint: %s", cfg.S3Endpoint)
	return service, nil
}

func (s *S3Service) Upload(ctx context.Context, file *FileUpload) (string, error) {
	key := path.Join("assets", uuid.New().String(), file.Filename)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3BucketName),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return key, nil
}

// PresignedURL resolves an object key to a retrievable URL. URLs are
// cached in redis for slightly less than their validity window.
func (s *S3Service) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.urlCache != nil {
		if url, err := s.urlCache.GetURL(ctx, key); err != nil {
			log.Printf("url cache read failed for %s: %v", key, err)
		} else if url != "" {
			return url, nil
		}
	}

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.urlCache != nil && expires > time.Minute {
		if err := s.urlCache.SetURL(ctx, key, request.URL, expires-time.Minute); err != nil {
			log.Printf("url cache write failed for %s: %v", key, err)
		}
	}

	return request.URL, nil
}

// Copy duplicates an object under a fresh key and returns it. The
// source object stays untouched, so existing references remain valid.
func (s *S3Service) Copy(ctx context.Context, srcKey string) (string, error) {
	dstKey := path.Join("assets", "approved", uuid.New().String(), path.Base(srcKey))

	_, err := s.s3Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.config.S3BucketName),
		CopySource: aws.String(fmt.Sprintf("%s/%s", s.config.S3BucketName, srcKey)),
		Key:        aws.String(dstKey),
	})
	if err != nil {
		return "", fmt.Errorf("failed to copy object %s: %w", srcKey, err)
	}

	return dstKey, nil
}

func (s *S3Service) HealthCheck(ctx context.Context) error {
	_, err := s.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
