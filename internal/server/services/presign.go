package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dkomarov/garagehub/internal/server/config"
)

// presignExpiry bounds how long an upload URL stays usable.
const presignExpiry = 15 * time.Minute

// Seams for the AWS SDK calls, replaceable in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

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

// PresignService issues short-lived presigned PUT URLs against the
// configured S3-compatible backend.
type PresignService struct {
	config *sc.Config
}

func NewPresignService(config *sc.Config) *PresignService {
	return &PresignService{config: config}
}

// StorageKey builds a collision-free object key for one upload:
// garage/{userID}/{yyyy/mm/dd}/{uuid}{ext}. The extension is taken from the
// client-supplied file name.
func StorageKey(userID, fileName string) string {
	d := time.Now()
	return fmt.Sprintf("garage/%s/%04d/%02d/%02d/%s%s",
		userID, d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(fileName))
}

func (s *PresignService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		}
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutURL returns the upload URL and the durable key the object
// will live under once transferred.
func (s *PresignService) GetPresignedPutURL(ctx context.Context, userID, fileName, fileType string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(userID, fileName)

	in := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}
	if fileType != "" {
		in.ContentType = &fileType
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return req.URL, key, nil
}
