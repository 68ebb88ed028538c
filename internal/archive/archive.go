// Package archive stores receipt images in Google Cloud Storage,
// organized into year_month folders, and hands back a public URL for
// the ledger's receipt-link column.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Archiver uploads receipt files to a GCS bucket.
type Archiver struct {
	client *storage.Client
	bucket string
	logger *log.Logger
}

// New creates an Archiver. Credentials come from the application
// default chain.
func New(ctx context.Context, bucket string, logger *log.Logger) (*Archiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Archiver{client: client, bucket: bucket, logger: logger}, nil
}

// Close releases the underlying client.
func (a *Archiver) Close() error {
	return a.client.Close()
}

// ArchiveReceipt uploads the file at localPath and returns its public
// URL. Callers treat a failed upload as a missing receipt link, not a
// fatal error.
func (a *Archiver) ArchiveReceipt(ctx context.Context, localPath string, now time.Time) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open receipt %q: %w", localPath, err)
	}
	defer f.Close()

	object := ObjectName(localPath, now)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize receipt upload: %w", err)
	}

	url := PublicURL(a.bucket, object)
	a.logger.Debug("Archived receipt", "object", object, "url", url)
	return url, nil
}

// ObjectName builds the bucket path for a receipt: a year_month folder
// plus a random file name that keeps the original extension.
func ObjectName(localPath string, now time.Time) string {
	ext := filepath.Ext(localPath)
	return fmt.Sprintf("%d_%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// PublicURL returns the canonical public URL for an object.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
