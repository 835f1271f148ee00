package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

// Handle describes a decoded image asset. The presentation layer owns whatever
// texture it builds from it.
type Handle struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Format  string    `json:"format"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

type Resolver interface {
	Resolve(name string) (Handle, error)
}

// ImageResolver loads the image header of a named asset.
type ImageResolver struct {
	library *Library
}

func NewImageResolver(library *Library) *ImageResolver {
	return &ImageResolver{library: library}
}

func (r *ImageResolver) Resolve(name string) (Handle, error) {
	path := r.library.Path(name)

	f, err := os.Open(path)
	if err != nil {
		return Handle{}, apperrors.WrapAssetResolution(err, fmt.Sprintf("open %s", name))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Handle{}, apperrors.WrapAssetResolution(err, fmt.Sprintf("stat %s", name))
	}
	if !info.Mode().IsRegular() {
		return Handle{}, fmt.Errorf("%w: %s is not a regular file", apperrors.ErrAssetResolution, name)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Handle{}, apperrors.WrapAssetResolution(err, fmt.Sprintf("decode %s", name))
	}

	return Handle{
		Name:    name,
		Path:    path,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

var _ Resolver = (*ImageResolver)(nil)
