package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/blogsync/internal/common"
	sc "github.com/dmitrijs2005/blogsync/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaSvc() *MediaService {
	cfg := &sc.Config{
		S3Region:    "us-east-1",
		S3AccessKey: "minioadmin",
		S3SecretKey: "minioadmin",
		S3Endpoint:  "http://127.0.0.1:9000/",
		S3Bucket:    "blog-images",
	}
	s := NewMediaService(cfg)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }
	return s
}

// stubAWS replaces the AWS constructors for the duration of the test.
func stubAWS(t *testing.T, put func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error)) *string {
	t.Helper()
	origLoad, origNewS3, origNewPre, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

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
		return aws.Config{}, nil
	}

	var endpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if !opts.UsePathStyle {
			t.Fatalf("path-style addressing not enabled")
		}
		endpoint = aws.ToString(opts.BaseEndpoint)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return put(in)
	}
	return &endpoint
}

func TestCreateImageUpload_Success(t *testing.T) {
	svc := newMediaSvc()

	var got *s3.PutObjectInput
	endpoint := stubAWS(t, func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		got = in
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/blog-images/" + aws.ToString(in.Key) + "?X-Amz-Signature=abc"}, nil
	})

	up, err := svc.CreateImageUpload(context.Background(), "u1", "Cover.PNG", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/", *endpoint)
	require.NotNil(t, got)
	assert.Equal(t, "blog-images", aws.ToString(got.Bucket))
	assert.Equal(t, "image/png", aws.ToString(got.ContentType))
	assert.Regexp(t, regexp.MustCompile(`^covers/u1/2024/03/[0-9a-f-]{36}\.png$`), up.Key)
	assert.Equal(t, aws.ToString(got.Key), up.Key)
	assert.Contains(t, up.UploadURL, "X-Amz-Signature")
	assert.Equal(t, "http://127.0.0.1:9000/blog-images/"+up.Key, up.PublicURL)
}

func TestCreateImageUpload_RejectsNonImages(t *testing.T) {
	svc := newMediaSvc()

	_, err := svc.CreateImageUpload(context.Background(), "u1", "notes.txt", "text/plain")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateImageUpload_PresignError(t *testing.T) {
	svc := newMediaSvc()
	stubAWS(t, func(*s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	})

	_, err := svc.CreateImageUpload(context.Background(), "u1", "a.jpg", "image/jpeg")
	if err == nil || err.Error() != "presign-put-fail" {
		t.Fatalf("want presign-put-fail, got %v", err)
	}
}

func TestCreateImageUpload_ConfigError(t *testing.T) {
	svc := newMediaSvc()
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := svc.CreateImageUpload(context.Background(), "u1", "a.jpg", "image/jpeg")
	assert.EqualError(t, err, "no config")
}
