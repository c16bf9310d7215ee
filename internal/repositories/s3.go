package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrGateway marks any storage-backend failure, timeouts included. It is
// always a server-side outcome, never the caller's fault.
var ErrGateway = errors.New("storage gateway failure")

// StorageGateway brokers time-limited signed URLs for the bucket. Grant TTLs
// are asymmetric: an upload grant has to cover a whole client upload while a
// download grant should die quickly since the URL may be shared further.
type StorageGateway interface {
	CreateUploadGrant(ctx context.Context, path string) (string, error)
	CreateDownloadGrant(ctx context.Context, path string) (string, error)
	ObjectExists(ctx context.Context, path string) (bool, error)
}

// Storage is set once by InitStorage at startup.
var Storage StorageGateway

type s3Gateway struct {
	client      *s3.Client
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
	timeout     time.Duration
}

// InitStorage initializes the S3-compatible client from static credentials
// and a custom endpoint (R2, MinIO, Supabase storage all speak this dialect).
func InitStorage(cfg config.StorageConfig) error {
	if cfg.Endpoint == "" || cfg.BucketName == "" {
		return fmt.Errorf("storage endpoint and bucket must be configured")
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	Storage = &s3Gateway{
		client:      client,
		bucket:      cfg.BucketName,
		uploadTTL:   cfg.UploadGrantTTL,
		downloadTTL: cfg.DownloadGrantTTL,
		timeout:     cfg.RequestTimeout,
	}

	log.Println("Successfully initialized storage gateway for bucket", cfg.BucketName)

	return nil
}

// CreateUploadGrant creates a presigned URL for uploading an object.
func (g *s3Gateway) CreateUploadGrant(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	presigner := s3.NewPresignClient(g.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(g.uploadTTL))
	if err != nil {
		return "", fmt.Errorf("%w: presign upload: %v", ErrGateway, err)
	}
	return req.URL, nil
}

// CreateDownloadGrant creates a presigned URL for downloading an object.
func (g *s3Gateway) CreateDownloadGrant(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	presigner := s3.NewPresignClient(g.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(g.downloadTTL))
	if err != nil {
		return "", fmt.Errorf("%w: presign download: %v", ErrGateway, err)
	}
	return req.URL, nil
}

// ObjectExists checks whether an object actually landed at path.
// Returns false with no error when the object is simply absent.
func (g *s3Gateway) ObjectExists(ctx context.Context, path string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nsk *s3types.NotFound
		if ok := errors.As(err, &nsk); ok {
			return false, nil
		}
		// Other error (e.g. auth, network)
		return false, fmt.Errorf("%w: head object: %v", ErrGateway, err)
	}
	return true, nil
}
