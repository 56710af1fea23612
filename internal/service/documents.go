package service

import (
	"bytes"
	"context"
	"fmt"

	"fynix/internal/config"
	"fynix/internal/port"
	"fynix/internal/render"
)

// publishDocument rasterizes doc, stores it under key and presigns a download
// link. meta is stored as object metadata. An object whose link cannot be
// signed is removed again.
func publishDocument(
	ctx context.Context,
	rasterizer port.DocumentRasterizer,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	doc *render.Document,
	key string,
	meta map[string]string,
) (string, error) {
	data, err := rasterizer.Rasterize(ctx, doc)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := storage.Upload(ctx, port.UploadInput{
		Bucket:      s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		FileName:    doc.FileName,
		Metadata:    meta,
	}); err != nil {
		return "", err
	}
	url, err := storage.GetPresignedURL(ctx, s3Cfg.Bucket, key, s3Cfg.PresignExpiry)
	if err != nil {
		if delErr := storage.Delete(ctx, s3Cfg.Bucket, key); delErr != nil {
			return "", fmt.Errorf("presign: %w (cleanup: %v)", err, delErr)
		}
		return "", err
	}
	return url, nil
}
