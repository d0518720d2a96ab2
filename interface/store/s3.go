package store

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/geosat/sat-catalog/service"
)

// Options configures the access to one bucket
type Options struct {
	Region          string
	RequestPayer    bool
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// S3Store implements Store on a set of S3 buckets, each with its own
// region and access options. Clients are created lazily per bucket.
type S3Store struct {
	buckets map[string]Options

	mu      sync.Mutex
	clients map[string]*s3.Client
}

// NewS3Store creates a Store on the given buckets
func NewS3Store(buckets map[string]Options) *S3Store {
	return &S3Store{buckets: buckets, clients: map[string]*s3.Client{}}
}

func (s *S3Store) client(ctx context.Context, bucket string) (*s3.Client, Options, error) {
	opts, ok := s.buckets[bucket]
	if !ok {
		return nil, opts, fmt.Errorf("client: bucket %s is not configured", bucket)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.clients[bucket]; ok {
		return client, opts, nil
	}

	cfgOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, opts, fmt.Errorf("client.LoadDefaultConfig: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	s.clients[bucket] = client
	return client, opts, nil
}

// ListChildren implements Store
func (s *S3Store) ListChildren(ctx context.Context, bucket, prefix string) ([]string, error) {
	client, opts, err := s.client(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("ListChildren.%w", err)
	}

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String(Delimiter),
	}
	if opts.RequestPayer {
		input.RequestPayer = "requester"
	}

	var children []string
	if err := service.Retriable(ctx, func() error {
		output, err := client.ListObjectsV2(ctx, input)
		if err != nil {
			if !service.Temporary(err) {
				return service.MakeFatal(err)
			}
			return err
		}
		children = children[:0]
		for _, p := range output.CommonPrefixes {
			children = append(children, aws.ToString(p.Prefix))
		}
		return nil
	}, time.Second, 3); err != nil {
		return nil, fmt.Errorf("ListChildren[%s/%s]: %w", bucket, prefix, err)
	}
	return children, nil
}

// GetObject implements Store
func (s *S3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	client, opts, err := s.client(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("GetObject.%w", err)
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if opts.RequestPayer {
		input.RequestPayer = "requester"
	}

	var content []byte
	if err := service.Retriable(ctx, func() error {
		output, err := client.GetObject(ctx, input)
		if err != nil {
			if !service.Temporary(err) {
				return service.MakeFatal(err)
			}
			return err
		}
		defer output.Body.Close()
		content, err = io.ReadAll(output.Body)
		return err
	}, time.Second, 3); err != nil {
		return nil, fmt.Errorf("GetObject[%s/%s]: %w", bucket, key, err)
	}
	return content, nil
}
