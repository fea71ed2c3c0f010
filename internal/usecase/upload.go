package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"

	"blood-donation-api/internal/infrastructure/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxUploadSize = 5 << 20

var (
	ErrFileTooLarge        = errors.New("file is larger than 5 MiB")
	ErrUnsupportedFileType = errors.New("only JPEG, PNG and WebP images are allowed")
	ErrEmptyFile           = errors.New("file is empty")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// saveImage checks the content of an upload and stores it under prefix with a
// random name. It returns the public URL of the stored file.
func saveImage(ctx context.Context, fs storage.FileStorage, prefix string, file io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", ErrUnsupportedFileType
	}

	key := prefix + "/" + uuid.NewString() + mtype.Extension()
	return fs.Save(ctx, key, mtype.String(), bytes.NewReader(data))
}
