package server

import (
	"lifelog/internal/models"
	"lifelog/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// UploadImages handles POST /api/images. It accepts up to nine files in the
// "images" multipart field and returns their stored URLs, ready to attach to
// a post.
func (s *Server) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart form upload"))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return models.RespondError(c,
			models.NewValidationError("No images in upload"))
	}
	if len(files) > models.MaxImagesPerPost {
		return models.RespondError(c,
			models.NewValidationError("A post can have at most 9 images"))
	}

	saved := make([]*storage.SavedImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return models.RespondError(c, models.NewInternalError(err))
		}
		img, err := storage.SaveImage(c.Context(), s.store, f)
		_ = f.Close()
		if err != nil {
			return models.RespondError(c, err)
		}
		saved = append(saved, img)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"images": saved})
}
