package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// URL lifetime for signed upload/download links.
const signedURLTTL = time.Hour

// ObjectStore is the external binary-storage collaborator. The database is
// the source of truth for everything else; object operations are side
// effects around it. Delete in particular is best-effort — callers log
// failures and move on.
type ObjectStore interface {
	SignedUploadURL(key, contentType string) (string, error)
	SignedDownloadURL(key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type gcsStore struct {
	client *gcs.Client
	bucket string
	signer *signerCreds
}

type signerCreds struct {
	email      string
	privateKey []byte
}

// NewGCS creates a Google Cloud Storage backed ObjectStore. If bucket is
// empty, a disabled store is returned instead: URL requests yield empty
// strings and deletes are no-ops, so the rest of the service keeps working
// without object storage configured (same fallback shape as the cache).
func NewGCS(ctx context.Context, bucket, signerEmail, signerKey string, opts ...option.ClientOption) (ObjectStore, error) {
	if bucket == "" {
		log.Println("storage: no bucket configured, object store disabled")
		return disabledStore{}, nil
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	s := &gcsStore{client: client, bucket: bucket}
	if signerEmail != "" && signerKey != "" {
		s.signer = &signerCreds{email: signerEmail, privateKey: []byte(signerKey)}
	}

	log.Printf("storage: bucket %s configured", bucket)
	return s, nil
}

func (s *gcsStore) signedURL(key, method, contentType string) (string, error) {
	opts := &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  method,
		Expires: time.Now().Add(signedURLTTL),
	}
	if contentType != "" {
		opts.ContentType = contentType
	}
	if s.signer != nil {
		opts.GoogleAccessID = s.signer.email
		opts.PrivateKey = s.signer.privateKey
	}
	return s.client.Bucket(s.bucket).SignedURL(key, opts)
}

// SignedUploadURL returns a URL the client can PUT the file to directly.
func (s *gcsStore) SignedUploadURL(key, contentType string) (string, error) {
	return s.signedURL(key, "PUT", contentType)
}

// SignedDownloadURL returns a time-limited GET URL for an object.
func (s *gcsStore) SignedDownloadURL(key string) (string, error) {
	return s.signedURL(key, "GET", "")
}

// Delete removes the object. Missing objects are treated as already deleted.
func (s *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

type disabledStore struct{}

func (disabledStore) SignedUploadURL(string, string) (string, error) { return "", nil }
func (disabledStore) SignedDownloadURL(string) (string, error)       { return "", nil }
func (disabledStore) Delete(context.Context, string) error           { return nil }
