package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"fileview/internal/config"
	"fileview/internal/fileerr"
)

// MinIOScheme is the URI scheme served by MinIOSource: s3://bucket/key.
const MinIOScheme = "s3"

// MinIOSource reads objects from an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type MinIOSource struct {
	client        *minio.Client
	defaultBucket string
}

// NewMinIO creates an S3-compatible source backed by MinIO.
// When a default bucket is configured it verifies that the bucket exists.
func NewMinIO(cfg config.MinIOConfig) (*MinIOSource, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}

	transport, err := newMinIOTransport(cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("create minio transport: %w", err)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	if cfg.Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		exists, err := cli.BucketExists(ctx, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("check bucket existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
		}
	}

	return &MinIOSource{client: cli, defaultBucket: cfg.Bucket}, nil
}

// newMinIOTransport wraps MinIO's default transport so object reads show up
// as client spans under the caller's trace.
func newMinIOTransport(secure bool, opts ...otelhttp.Option) (http.RoundTripper, error) {
	base, err := minio.DefaultTransport(secure)
	if err != nil {
		return nil, err
	}
	return otelhttp.NewTransport(base, opts...), nil
}

var _ Source = (*MinIOSource)(nil)

func (m *MinIOSource) Scheme() string { return MinIOScheme }

// Open streams an object without buffering it in memory.
func (m *MinIOSource) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := m.parse(uri)
	if err != nil {
		return nil, err
	}
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinIOError(err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the copy starts.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, translateMinIOError(err)
	}
	return obj, nil
}

// Stat returns object metadata.
func (m *MinIOSource) Stat(ctx context.Context, uri string) (FileInfo, error) {
	bucket, key, err := m.parse(uri)
	if err != nil {
		return FileInfo{}, err
	}
	st, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return FileInfo{}, translateMinIOError(err)
	}
	return FileInfo{URI: uri, Size: st.Size, ModTime: st.LastModified}, nil
}

func (m *MinIOSource) parse(uri string) (bucket, key string, err error) {
	return ParseS3URI(uri, m.defaultBucket)
}

// ParseS3URI splits s3://bucket/key. The form s3:///key uses defaultBucket.
func ParseS3URI(uri, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, MinIOScheme+"://")
	if !ok {
		return "", "", fileerr.UnsupportedURI(uri, "not an s3:// URI")
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	if bucket == "" || key == "" {
		return "", "", fileerr.UnsupportedURI(uri, "s3 URI must name a bucket and an object key")
	}
	return bucket, key, nil
}

func translateMinIOError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", fs.ErrNotExist, err)
	}
	return err
}
