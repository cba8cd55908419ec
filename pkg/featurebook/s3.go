package featurebook

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// maxCatalogSize bounds the catalog object read from S3.
const maxCatalogSize = 5 << 20

// S3Client is the subset of the S3 API used by S3Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config locates the catalog object. Endpoint and ForcePathStyle target
// S3-compatible services such as MinIO.
type S3Config struct {
	Bucket         string `env:"PROTEUS_CATALOG_S3_BUCKET"`
	Key            string `env:"PROTEUS_CATALOG_S3_KEY" envDefault:"features.json"`
	Region         string `env:"PROTEUS_CATALOG_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"PROTEUS_CATALOG_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"PROTEUS_CATALOG_S3_SECRET_KEY"`
	Endpoint       string `env:"PROTEUS_CATALOG_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"PROTEUS_CATALOG_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// WithS3Client uses a pre-configured client instead of building one from S3Config.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// S3Source reads the catalog from an S3 object. The format follows the key's extension.
type S3Source struct {
	client S3Client
	bucket string
	key    string
	format Format
	mapper Mapper
}

func NewS3Source(ctx context.Context, cfg S3Config, opts ...Option) (*S3Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, ErrMissingCatalogLocation
	}
	format, err := FormatOf(cfg.Key)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadS3Config, err)
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3Source{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		format: format,
		mapper: o.mapper,
	}, nil
}

func (s *S3Source) GetFeatureBook(ctx context.Context) ([]feature.Feature, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, classifyS3Error(err, s.bucket, s.key)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxCatalogSize))
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCatalog, err)
	}

	features, err := Decode(data, s.format, s.mapper)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return features, nil
}

func classifyS3Error(err error, bucket, key string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: s3://%s/%s", ErrCatalogNotFound, bucket, key)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: bucket %q does not exist", ErrCatalogNotFound, bucket)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: s3://%s/%s", ErrCatalogNotFound, bucket, key)
		}
	}
	return errors.Join(ErrFailedToReadCatalog, err)
}
