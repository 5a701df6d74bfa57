package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	sc "github.com/dmitrijs2005/blogsync/internal/server/config"
	"github.com/google/uuid"
)

const uploadURLExpiry = 15 * time.Minute

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
)

// MediaService hands out presigned upload slots for post cover images.
type MediaService struct {
	config *sc.Config
	now    func() time.Time
}

func NewMediaService(cfg *sc.Config) *MediaService {
	return &MediaService{config: cfg, now: time.Now}
}

// StorageKey returns the object key for an upload by userID: covers/<user>/<yyyy>/<mm>/<uuid><ext>.
func StorageKey(userID, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("covers/%s/%d/%02d/%s%s", userID, now.Year(), now.Month(), uuid.New(), ext)
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3Endpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PublicURL is where an uploaded object can be read back.
func (s *MediaService) PublicURL(key string) string {
	return strings.TrimRight(s.config.S3Endpoint, "/") + "/" + s.config.S3Bucket + "/" + key
}

// CreateImageUpload presigns a PUT for an image of contentType.
func (s *MediaService) CreateImageUpload(ctx context.Context, userID, filename, contentType string) (*models.ImageUpload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", common.ErrValidation, contentType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(userID, filename, s.now())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return nil, err
	}

	return &models.ImageUpload{Key: key, UploadURL: req.URL, PublicURL: s.PublicURL(key)}, nil
}
