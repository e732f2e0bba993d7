package services

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/repositories"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/metrics"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
)

// ImageDir is where recipe images are stored on the disk.
const ImageDir = "uploads/recipe"

const invalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// ImagePath returns a fresh storage path for an upload named filename,
// keeping its lower-cased extension. When filename has none, the extension
// is taken from the decoded format.
func ImagePath(filename, format string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if ext == "" && format != "" {
		ext = "." + format
	}
	return ImageDir + "/" + uuid.NewString() + ext
}

type ImageService struct {
	recipes *repositories.RecipeRepository
	files   storage.Disk
}

func NewImageService(recipes *repositories.RecipeRepository, files storage.Disk) *ImageService {
	return &ImageService{recipes: recipes, files: files}
}

// Upload validates src as an image, stores it under a new name and points
// the recipe at it. The previous file is removed afterwards, best effort.
// Nothing is stored when validation fails.
func (s *ImageService) Upload(ctx context.Context, ownerID, id uint, filename string, src io.Reader) (*models.Recipe, error) {
	if _, err := s.recipes.Find(ctx, ownerID, id); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperr.Internal("read upload", err)
	}
	if len(data) == 0 {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, apperr.Field("image", "The submitted file is empty.")
	}
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, apperr.Field("image", invalidImage)
	}

	p := ImagePath(filename, format)
	if err := s.files.Put(ctx, p, data, http.DetectContentType(data)); err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		return nil, apperr.Internal("store image", err)
	}

	previous, err := s.recipes.SetImage(ctx, ownerID, id, p)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		if derr := s.files.Delete(ctx, p); derr != nil {
			logger.WithCtx(ctx).Warn("orphaned recipe image", "path", p, "error", derr.Error())
		}
		return nil, err
	}

	if previous != "" && previous != p {
		if err := s.files.Delete(ctx, previous); err != nil {
			logger.WithCtx(ctx).Warn("previous recipe image not removed", "recipe_id", id, "path", previous, "error", err.Error())
		}
	}

	metrics.ImageUploads.WithLabelValues("stored").Inc()
	logger.WithCtx(ctx).Info("recipe image stored", "recipe_id", id, "path", p, "format", format)
	return s.recipes.Find(ctx, ownerID, id)
}

// URL returns the public URL of a stored image path, or "" when unset.
func (s *ImageService) URL(p string) string {
	if p == "" {
		return ""
	}
	return s.files.URL(p)
}
