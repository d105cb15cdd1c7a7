package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const s3KeyPrefix = "profile-pictures/"

// S3Store keeps pictures in a public-read bucket; Save returns the public
// object URL so no static file serving is involved.
type S3Store struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	region     string
	publicRead bool
	logger     *zap.SugaredLogger
}

func NewS3Store(ctx context.Context, region, bucket string, publicRead bool, logger *zap.SugaredLogger) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		region:     region,
		publicRead: publicRead,
		logger:     logger,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := s3KeyPrefix + filename
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	if thumb, terr := generateThumbnail(data); terr == nil {
		tin := &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s3KeyPrefix + thumbName(filename)),
			Body:        bytes.NewReader(thumb),
			ContentType: aws.String("image/jpeg"),
		}
		if s.publicRead {
			tin.ACL = types.ObjectCannedACLPublicRead
		}
		if _, uerr := s.uploader.Upload(ctx, tin); uerr != nil {
			s.logger.Warnf("thumbnail upload failed for %s: %v", filename, uerr)
		}
	}

	return s.objectURL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	base := path.Base(ref)
	if base == "." || base == "/" {
		return nil
	}
	for _, key := range []string{s3KeyPrefix + base, s3KeyPrefix + thumbName(base)} {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil && !strings.Contains(key, "_thumb") {
			return err
		}
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
