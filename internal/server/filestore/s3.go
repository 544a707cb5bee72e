package filestore

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type S3Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
	Expiry       time.Duration
}

// S3Store presigns requests with the AWS SDK. It works against AWS and any
// S3-compatible endpoint (MinIO, Ceph) through BaseEndpoint.
type S3Store struct {
	opts S3Options
}

func NewS3Store(opts S3Options) *S3Store {
	return &S3Store{opts: opts}
}

func (s *S3Store) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.opts.AccessKey,
			s.opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

func (s *S3Store) PresignUpload(ctx context.Context, key string) (string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.opts.Bucket
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.opts.Expiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3Store) PresignDownload(ctx context.Context, key string) (string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.opts.Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.opts.Expiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
