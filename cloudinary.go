// cloudinary.go

package main

import (
	"context"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const imageFolder = "products"

// cloudinaryHost backs ImageHost with Cloudinary.
type cloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

func newCloudinaryHost(url string) (*cloudinaryHost, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &cloudinaryHost{cld: cld}, nil
}

func (h *cloudinaryHost) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	res, err := h.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   imageFolder,
		PublicID: name,
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func (h *cloudinaryHost) Delete(ctx context.Context, url string) error {
	_, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicIDFromURL(url)})
	return err
}

// publicIDFromURL recovers the public id of an asset uploaded by this host.
// Delivery URLs end in .../<folder>/<public id>.<ext>, so the id is the
// folder plus the last path segment with its extension stripped.
func publicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "."); i > 0 {
		last = last[:i]
	}
	return imageFolder + "/" + last
}
