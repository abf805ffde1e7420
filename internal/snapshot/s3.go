package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	metaRoot    = "root"
	metaCreated = "created-at"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config configures an S3Store.
type S3Config struct {
	// Bucket is the S3 bucket name.
	Bucket string

	// Prefix is prepended to every object key (e.g. "snapshots/").
	Prefix string

	// Region is the bucket region. Defaults to AWS_REGION, then us-east-1.
	Region string

	// Endpoint overrides the service endpoint for S3-compatible stores.
	// Path-style addressing is used when set.
	Endpoint string

	// Client overrides the client built from the fields above.
	Client S3API
}

// S3Store stores snapshots in an S3 bucket.
//
// Example usage:
//
//	store, err := snapshot.NewS3Store(ctx, snapshot.S3Config{
//	    Bucket: "my-bucket",
//	    Prefix: "snapshots/",
//	})
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates an S3 snapshot store. Credentials are read from the
// standard AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables on first use.
func NewS3Store(_ context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrStore.WithDetail("s3: bucket is required")
	}

	client := cfg.Client
	if client == nil {
		region := cfg.Region
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		if region == "" {
			region = "us-east-1"
		}

		opts := s3.Options{
			Region:      region,
			Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
		}
		if cfg.Endpoint != "" {
			opts.BaseEndpoint = aws.String(cfg.Endpoint)
			opts.UsePathStyle = true
		}
		client = s3.New(opts)
	}

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "EnvironmentVariables",
	}, nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + name + htmlExt
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, snap Snapshot) error {
	if err := checkName(snap.Name); err != nil {
		return err
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(snap.Name)),
		Body:        bytes.NewReader(snap.HTML),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			metaRoot:    snap.Root,
			metaCreated: snap.CreatedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return ErrStore.WithDetail("s3 put %s", snap.Name).Wrap(err)
	}
	return nil
}

// Get implements Store.
func (s *S3Store) Get(ctx context.Context, name string) (Snapshot, error) {
	if err := checkName(name); err != nil {
		return Snapshot{}, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return Snapshot{}, ErrStore.WithDetail("%q", name).Wrap(ErrNotFound)
		}
		return Snapshot{}, ErrStore.WithDetail("s3 get %s", name).Wrap(err)
	}
	defer out.Body.Close()

	html, err := io.ReadAll(out.Body)
	if err != nil {
		return Snapshot{}, ErrStore.WithDetail("s3 read %s", name).Wrap(err)
	}

	snap := Snapshot{Name: name, HTML: html, Root: out.Metadata[metaRoot]}
	if ts, err := time.Parse(time.RFC3339, out.Metadata[metaCreated]); err == nil {
		snap.CreatedAt = ts
	}
	return snap, nil
}

// List implements Store.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ErrStore.WithDetail("s3 list %s", s.bucket).Wrap(err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			rest := strings.TrimPrefix(*obj.Key, s.prefix)
			if name, ok := strings.CutSuffix(rest, htmlExt); ok && ValidName(name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names, nil
}
