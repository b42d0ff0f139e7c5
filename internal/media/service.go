package media

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/trovekart/storefront-backend/pkg/config"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var keyUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)

type objectStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	PublicURL(host, key string) string
}

// Service stores uploaded images in the object bucket and hands back public URLs.
type Service interface {
	Store(ctx context.Context, data []byte, suggestedName string) (string, error)
}

type service struct {
	bucket   objectStore
	host     string
	maxBytes int
	logg     *logger.Logger
}

// NewService builds a media service writing to the provided bucket.
func NewService(bucket objectStore, gcsCfg config.GCSConfig, mediaCfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if bucket == nil {
		return nil, fmt.Errorf("object store required")
	}
	maxMB := mediaCfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &service{
		bucket:   bucket,
		host:     gcsCfg.PublicHost,
		maxBytes: maxMB << 20,
		logg:     logg,
	}, nil
}

// Store sniffs the content type, validates it against the image allow-list,
// uploads under a uuid-prefixed key, and returns the public URL.
func (s *service) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "empty upload")
	}
	if len(data) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("upload exceeds %d MB limit", s.maxBytes>>20))
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported content type %s, images only", contentType))
	}

	key := buildKey(suggestedName, ext)
	if err := s.bucket.Upload(ctx, key, contentType, data); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"key":          key,
			"content_type": contentType,
			"bytes":        len(data),
		}), "media stored")
	}
	return s.bucket.PublicURL(s.host, key), nil
}

func buildKey(suggestedName, ext string) string {
	base := strings.ToLower(path.Base(strings.TrimSpace(suggestedName)))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = keyUnsafe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("media/%s-%s%s", uuid.NewString(), base, ext)
}
