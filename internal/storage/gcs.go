package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// GCSSource is a Source backed by a single bucket in Google Cloud Storage.
type GCSSource struct {
	client *storage.Client
	bucket string
}

// NewGCSSource returns a GCSSource reading objects from bucket, using the
// application default credentials.
func NewGCSSource(ctx context.Context, bucket string) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %v", err)
	}
	return &GCSSource{client: client, bucket: bucket}, nil
}

// NewGCSSourceFromBearerToken returns a GCSSource authorized with the
// OAuth2 bearer token carried by authorization, in the form "Bearer
// <token>", reading objects from bucket.
func NewGCSSourceFromBearerToken(ctx context.Context, bucket, authorization string) (*GCSSource, error) {
	fields := strings.Split(authorization, " ")
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("missing or invalid bearer token")
	}
	token := oauth2.Token{TokenType: fields[0], AccessToken: fields[1]}
	client, err := storage.NewClient(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&token)))
	if err != nil {
		return nil, fmt.Errorf("creating storage client with token source: %v", err)
	}
	return &GCSSource{client: client, bucket: bucket}, nil
}

// Open returns a reader for the named object in the source's bucket.
func (s *GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, fmt.Errorf("object %q does not exist in bucket %q", name, s.bucket)
		}
		return nil, fmt.Errorf("opening %q in bucket %q: %v", name, s.bucket, err)
	}
	return r, nil
}
