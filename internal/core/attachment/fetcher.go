package attachment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/jmcalero-dev/Vectora/internal/config"
	"github.com/jmcalero-dev/Vectora/internal/core"
)

// Fetcher downloads attachment bytes. Absolute URLs go through plain HTTP
// GET; bare keys are resolved against the configured media bucket through an
// S3-compatible API (the storage endpoint exposes one).
type Fetcher struct {
	http   *http.Client
	s3     *s3.Client
	bucket string
}

var _ core.AttachmentFetcher = (*Fetcher)(nil)

// NewFetcher builds the fetcher. The bucket client is optional: when storage
// credentials are not configured only absolute URLs can be fetched.
func NewFetcher(ctx context.Context, c *cfg.Config) (*Fetcher, error) {
	f := &Fetcher{
		http:   &http.Client{Timeout: 60 * time.Second},
		bucket: c.BucketName,
	}

	if c.StorageAccessKey == "" || c.StorageSecretKey == "" {
		return f, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(c.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.StorageAccessKey, c.StorageSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	f.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(c.StorageEndpoint)
			o.UsePathStyle = true
		}
	})
	return f, nil
}

// Fetch retrieves the raw bytes behind ref. Errors here are absorbed by the
// caller at the extraction boundary; they never fail a record outright.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchHTTP(ctx, ref)
	}
	return f.fetchBucket(ctx, ref)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (f *Fetcher) fetchBucket(ctx context.Context, key string) ([]byte, error) {
	if f.s3 == nil {
		return nil, fmt.Errorf("no storage credentials configured for bucket key %q", key)
	}

	ctxGet, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	resp, err := f.s3.GetObject(ctxGet, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		return nil, fmt.Errorf("bucket get failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
