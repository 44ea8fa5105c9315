// Package s3 implements the object-storage port over AWS S3.
package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"skiresults/internal/config"
	"skiresults/internal/port"
)

type s3Client struct {
	client     *s3.Client
	bucket     string
	prefix     string
	cacheDir   string
	extensions map[string]bool
}

// NewS3Client creates an S3-backed ObjectStorage scoped to the configured
// bucket and prefix. Only keys with one of the supported extensions are
// visible through List.
func NewS3Client(cfg *config.S3Config, supportedExtensions []string) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	extensions := make(map[string]bool, len(supportedExtensions))
	for _, ext := range supportedExtensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &s3Client{
		client:     s3.NewFromConfig(awsCfg, s3Opts...),
		bucket:     cfg.Bucket,
		prefix:     cfg.Prefix,
		cacheDir:   cfg.CacheDir,
		extensions: extensions,
	}, nil
}

// List pages through every object under the prefix, keeps supported
// extensions, and sorts keys lexicographically so a rerun over unchanged
// storage sees the same order.
func (c *s3Client) List(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(c.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			ext := strings.ToLower(filepath.Ext(key))
			if c.extensions[ext] {
				keys = append(keys, key)
			}
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Download fetches one object into the local cache directory, preserving the
// relative path under the prefix, and returns the local path.
func (c *s3Client) Download(ctx context.Context, key string) (string, error) {
	relative := strings.TrimPrefix(key, c.prefix)
	localPath := filepath.Join(c.cacheDir, filepath.FromSlash(relative))
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("s3 download %s: %w", key, err)
	}
	defer func() { _ = result.Body.Close() }()

	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, result.Body); err != nil {
		return "", fmt.Errorf("writing cache file: %w", err)
	}

	return localPath, nil
}
