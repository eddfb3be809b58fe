package handlers

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/media"
	"harvestdesk/internal/validate"
)

const maxImageBytes = 2 << 20

// upload is a checked multipart image that has not been written yet.
type upload struct {
	Ref  string
	Save func() error
}

// pendingImage checks the multipart "image" file, if any, and returns the
// reference it will be stored under. Nothing touches the disk until Save runs.
func pendingImage(c *fiber.Ctx, images *media.Resolver, entity, id string) (upload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return upload{}, nil
	}
	if !validate.ImageFile(fh.Filename) {
		return upload{}, domain.Invalid(entity, id, "image", "only png, jpg and jpeg files are accepted")
	}
	if fh.Size > maxImageBytes {
		return upload{}, domain.Invalid(entity, id, "image", "file is larger than 2 MiB")
	}
	stem := media.BaseName(fh.Filename)
	save := func() error {
		if err := os.MkdirAll(images.Dir, 0o755); err != nil {
			return fmt.Errorf("create images dir: %w", err)
		}
		if err := c.SaveFile(fh, images.FilePath(stem)); err != nil {
			return fmt.Errorf("save image %s: %w", stem, err)
		}
		return nil
	}
	return upload{Ref: media.Ref(stem), Save: save}, nil
}

// imageRef prefers a freshly uploaded file over a reference in the form. Save
// is nil when there is no file to write.
func imageRef(c *fiber.Ctx, images *media.Resolver, entity, id, fromForm string) (upload, error) {
	up, err := pendingImage(c, images, entity, id)
	if err != nil || up.Ref != "" {
		return up, err
	}
	return upload{Ref: fromForm}, nil
}
