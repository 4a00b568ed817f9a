// Package archive copies hero images that fall out of the history into an
// S3-compatible bucket, so trimming the history never loses a generated image.
package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"aipirat/imagegen"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// Region skips the bucket location lookup when set.
	Region string
	UseSSL bool
}

type Archiver struct {
	client *minio.Client
	bucket string
	log    *zap.Logger

	mu    sync.Mutex
	ready bool
}

func New(cfg Config, log *zap.Logger) (*Archiver, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("archive endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}
	return &Archiver{client: client, bucket: bucket, log: log}, nil
}

// ensureBucket creates the bucket on first use. Only success is remembered, so a
// failed attempt is retried by the next Put.
func (a *Archiver) ensureBucket(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	a.ready = true
	return nil
}

// Put stores one data URI image and returns its object key.
func (a *Archiver) Put(ctx context.Context, image string) (string, error) {
	mimeType, data, err := imagegen.ParseDataURI(image)
	if err != nil {
		return "", err
	}
	if err := a.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	key := ObjectKey(mimeType, data)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

// Evicted is a hero.EvictFunc. Images that are plain URLs are not archived;
// failures are logged. Uploads run detached from the request that triggered them.
func (a *Archiver) Evicted(ctx context.Context, images []string) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		for _, img := range images {
			if !strings.HasPrefix(img, "data:") {
				continue
			}
			key, err := a.Put(ctx, img)
			if err != nil {
				a.log.Warn("archiving evicted hero image failed", zap.Error(err))
				continue
			}
			a.log.Info("evicted hero image archived", zap.String("bucket", a.bucket), zap.String("key", key))
		}
	}()
}

// ObjectKey names an image by content hash so re-archiving is idempotent.
func ObjectKey(mimeType string, data []byte) string {
	sum := sha256.Sum256(data)
	ext := ".bin"
	if mt := mimetype.Lookup(mimeType); mt != nil && mt.Extension() != "" {
		ext = mt.Extension()
	}
	return "hero/" + hex.EncodeToString(sum[:]) + ext
}
