package model

import "errors"

// UploadResult is returned by the media collaborator after storing an
// image: the public URL plus the storage key used for later deletion.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Media constraints and storage layout.
const (
	MaxImageSizeBytes = 5 * 1024 * 1024 // matches the API body limit
	MaxImageWidth     = 1080
	ImageFolder       = "images"
	ImageExt          = ".jpg"
	ContentTypeJPEG   = "image/jpeg"
	ImageCacheControl = "public, max-age=31536000"
)

var (
	ErrInvalidImageData = errors.New("invalid image data")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
)
