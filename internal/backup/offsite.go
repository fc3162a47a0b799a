package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Uploader copies a finished archive to remote storage.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// S3Config holds the credentials and addressing for an S3-compatible
// endpoint (AWS or MinIO).
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Uploader stores archives under backups/<year>/<month>/<file>.
type S3Uploader struct {
	config S3Config
}

func NewS3Uploader(config S3Config) *S3Uploader {
	return &S3Uploader{config: config}
}

func (u *S3Uploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.RootUser,     // MINIO_ROOT_USER
			u.config.RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.config.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.config.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func storageKey(path string) string {
	d := time.Now()
	return fmt.Sprintf("backups/%d/%d/%s", d.Year(), d.Month(), filepath.Base(path))
}

func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	client, err := u.getClient(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := u.config.Bucket
	key := storageKey(path)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) uploadOffsite(ctx context.Context, archive string) error {
	key, err := s.offsite.Upload(ctx, archive)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "archive uploaded offsite", "key", key)
	return nil
}
