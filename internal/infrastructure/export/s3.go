package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
)

// PutObjectAPI is the part of the S3 client the sink uses
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads reports to an S3-compatible bucket (AWS S3, MinIO, RustFS)
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

// S3Option configures an S3Sink
type S3Option func(*S3Sink)

// WithS3Logger sets the logger
func WithS3Logger(l *zap.Logger) S3Option {
	return func(s *S3Sink) {
		s.logger = l
	}
}

// WithS3Client replaces the SDK client, for tests
func WithS3Client(c PutObjectAPI) S3Option {
	return func(s *S3Sink) {
		s.client = c
	}
}

// NewS3Sink creates a sink from configuration. Static credentials are used
// when configured; otherwise the default AWS credential chain applies.
func NewS3Sink(ctx context.Context, cfg config.S3Config, opts ...S3Option) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("export bucket is required")
	}
	sink := &S3Sink{
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(sink)
	}
	if sink.client != nil {
		return sink, nil
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	sink.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return sink, nil
}

// Write implements Sink and returns the s3:// URI of the uploaded object
func (s *S3Sink) Write(ctx context.Context, obj Object) (string, error) {
	key := obj.ObjectKey(s.prefix)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Data),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		ContentType:   aws.String(obj.Format.ContentType()),
		Metadata:      map[string]string{"report": obj.Report},
	})
	if err != nil {
		s.logger.Error("Failed to upload report",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("upload report: %w", err)
	}
	s.logger.Info("Report uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(obj.Data)))
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
