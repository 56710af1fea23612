package port

import (
	"context"

	"fynix/internal/render"
)

// DocumentRasterizer turns a rendered page sequence into a file.
type DocumentRasterizer interface {
	Rasterize(ctx context.Context, doc *render.Document) ([]byte, error)
}
