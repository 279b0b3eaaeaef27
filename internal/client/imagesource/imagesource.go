// Package imagesource opens the bytes behind an image URI. Supported forms:
// plain paths and file:// (local disk), http:// and https:// (downloaded)
// and s3://bucket/key (fetched with the AWS SDK, MinIO compatible).
package imagesource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/catalog/internal/netx"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported image URI scheme")
	ErrS3NotConfigured   = errors.New("s3 image source is not configured")
)

// ObjectGetter is the part of *s3.Client the resolver uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Resolver struct {
	http *http.Client
	s3   ObjectGetter
}

type Option func(*Resolver)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.http = c }
}

func WithS3(c ObjectGetter) Option {
	return func(r *Resolver) { r.s3 = c }
}

func New(opts ...Option) *Resolver {
	r := &Resolver{http: http.DefaultClient}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// S3Config selects the bucket service. Empty keys fall back to the default
// AWS credential chain; a non-empty Endpoint switches to path-style
// addressing for MinIO and friends.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Open returns a reader for uri. The caller closes it.
func (r *Resolver) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme, rest := splitScheme(uri)

	switch scheme {
	case "", "file":
		return os.Open(rest)
	case "http", "https":
		data, _, err := netx.Download(ctx, r.http, uri)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case "s3":
		return r.openS3(ctx, rest)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func (r *Resolver) openS3(ctx context.Context, rest string) (io.ReadCloser, error) {
	if r.s3 == nil {
		return nil, ErrS3NotConfigured
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 URI %q, want s3://bucket/key", "s3://"+rest)
	}

	out, err := r.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// splitScheme returns the lowercased scheme and the remainder after "://".
// Anything without "://" is a local path, so are drive letters like C:\.
func splitScheme(uri string) (string, string) {
	i := strings.Index(uri, "://")
	if i <= 1 {
		return "", uri
	}
	scheme := strings.ToLower(uri[:i])
	if _, err := url.Parse(scheme + "://x"); err != nil {
		return "", uri
	}
	return scheme, uri[i+3:]
}
