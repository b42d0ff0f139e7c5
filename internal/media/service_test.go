package media

import (
	"context"
	"strings"
	"testing"

	"github.com/trovekart/storefront-backend/pkg/config"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

// Minimal valid PNG header followed by padding so DetectContentType sees image/png.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

type stubBucket struct {
	uploadedKey  string
	uploadedType string
}

func (s *stubBucket) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	s.uploadedKey = key
	s.uploadedType = contentType
	return nil
}

func (s *stubBucket) PublicURL(host, key string) string {
	return host + "/bucket/" + key
}

func newMediaService(t *testing.T, bucket objectStore, maxMB int) Service {
	t.Helper()
	svc, err := NewService(bucket,
		config.GCSConfig{BucketName: "bucket", PublicHost: "https://cdn.example.com"},
		config.MediaConfig{MaxUploadMB: maxMB}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestStoreUploadsPNGAndReturnsPublicURL(t *testing.T) {
	t.Parallel()

	bucket := &stubBucket{}
	svc := newMediaService(t, bucket, 10)

	url, err := svc.Store(context.Background(), pngBytes, "Hero Banner.PNG")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if bucket.uploadedType != "image/png" {
		t.Fatalf("expected image/png, got %s", bucket.uploadedType)
	}
	if !strings.HasPrefix(bucket.uploadedKey, "media/") || !strings.HasSuffix(bucket.uploadedKey, "hero-banner.png") {
		t.Fatalf("unexpected key %q", bucket.uploadedKey)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestStoreRejectsNonImage(t *testing.T) {
	t.Parallel()

	svc := newMediaService(t, &stubBucket{}, 10)

	_, err := svc.Store(context.Background(), []byte("%PDF-1.4 not an image"), "doc.pdf")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreRejectsOversizedUpload(t *testing.T) {
	t.Parallel()

	svc := newMediaService(t, &stubBucket{}, 1)

	big := append([]byte{}, pngBytes...)
	big = append(big, make([]byte, 2<<20)...)
	_, err := svc.Store(context.Background(), big, "big.png")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
