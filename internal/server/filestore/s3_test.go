package filestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newTestS3Store() *S3Store {
	return NewS3Store(S3Options{
		Region:       "us-east-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		BaseEndpoint: "http://127.0.0.1:9000",
		Bucket:       "cvs",
		Expiry:       10 * time.Minute,
	})
}

func restoreSeams(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})
}

func stubClientSeams(t *testing.T) {
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func Test_getPresignClient_AppliesOptions(t *testing.T) {
	restoreSeams(t)
	st := newTestS3Store()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials provider not applied")
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		if c == nil {
			t.Fatalf("nil client passed to presign")
		}
		return &s3.PresignClient{}
	}

	pc, err := st.getPresignClient(context.Background())
	if err != nil {
		t.Fatalf("getPresignClient err: %v", err)
	}
	if pc == nil {
		t.Fatalf("nil presign client")
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Fatalf("path style expected for custom endpoint")
	}
}

func Test_getPresignClient_LoadError(t *testing.T) {
	restoreSeams(t)
	st := newTestS3Store()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	if _, err := st.getPresignClient(context.Background()); err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
	if _, err := st.PresignUpload(context.Background(), "k"); err == nil {
		t.Fatalf("expected upload error")
	}
	if _, err := st.PresignDownload(context.Background(), "k"); err == nil {
		t.Fatalf("expected download error")
	}
}

func TestS3Store_PresignUpload(t *testing.T) {
	restoreSeams(t)
	stubClientSeams(t)
	st := newTestS3Store()

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Bucket != "cvs" || *in.Key != "cvs/key" {
			t.Fatalf("unexpected input: %s/%s", *in.Bucket, *in.Key)
		}
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		if po.Expires != 10*time.Minute {
			t.Fatalf("expiry not applied: %v", po.Expires)
		}
		return &v4.PresignedHTTPRequest{URL: "http://put"}, nil
	}

	u, err := st.PresignUpload(context.Background(), "cvs/key")
	if err != nil {
		t.Fatalf("PresignUpload err: %v", err)
	}
	if u != "http://put" {
		t.Fatalf("unexpected url %q", u)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("put-fail")
	}
	if _, err := st.PresignUpload(context.Background(), "cvs/key"); err == nil || err.Error() != "put-fail" {
		t.Fatalf("expected put-fail, got %v", err)
	}
}

func TestS3Store_PresignDownload(t *testing.T) {
	restoreSeams(t)
	stubClientSeams(t)
	st := newTestS3Store()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Key != "cvs/key" {
			t.Fatalf("unexpected key %q", *in.Key)
		}
		return &v4.PresignedHTTPRequest{URL: "http://get"}, nil
	}

	u, err := st.PresignDownload(context.Background(), "cvs/key")
	if err != nil {
		t.Fatalf("PresignDownload err: %v", err)
	}
	if u != "http://get" {
		t.Fatalf("unexpected url %q", u)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("get-fail")
	}
	if _, err := st.PresignDownload(context.Background(), "cvs/key"); err == nil {
		t.Fatalf("expected error")
	}
}
