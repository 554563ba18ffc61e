// images.go

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"sync"
	"time"
)

const (
	maxImageBytes      = 5 << 20 // 5MB per file
	maxFilesPerRequest = 10
	maxFilesPerField   = 5
)

var (
	errNoImage       = errors.New("At least one image is required")
	errTooManyImages = errors.New("A maximum of 5 images is allowed")
	errImageTooLarge = errors.New("Each image must be 5MB or smaller")
	errNotAnImage    = errors.New("Only image files are allowed")
)

// ImageHost is the durable image store behind product pictures. One client is
// constructed at startup and shared by every request.
type ImageHost interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// imageFiles pulls the named multipart field and vets count, size and type.
func imageFiles(form *multipart.Form, field string) ([]*multipart.FileHeader, error) {
	files := form.File[field]
	if len(files) > maxFilesPerField {
		return nil, errTooManyImages
	}
	for _, f := range files {
		if f.Size > maxImageBytes {
			return nil, errImageTooLarge
		}
		if !strings.HasPrefix(f.Header.Get("Content-Type"), "image/") {
			return nil, errNotAnImage
		}
	}
	return files, nil
}

// uploadAll fans the files out to the image host concurrently and collects
// the resulting URLs in input order. Any single failure fails the whole batch
// so the caller never persists a partial image list.
func uploadAll(ctx context.Context, host ImageHost, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, fh := range files {
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			f, err := fh.Open()
			if err != nil {
				errs[i] = err
				return
			}
			defer f.Close()
			name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), fh.Filename)
			urls[i], errs[i] = host.Upload(ctx, name, f)
		}(i, fh)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}

// deleteAll removes urls from the host best-effort; a failure only orphans
// the image there, so it is logged and swallowed.
func deleteAll(ctx context.Context, host ImageHost, urls []string) {
	for _, u := range urls {
		if err := host.Delete(ctx, u); err != nil {
			log.Printf("image delete %s: %v", u, err)
		}
	}
}

// parseJSONList decodes a JSON string-array form field. A missing or
// malformed value degrades to an empty list; the edit must not die on it.
func parseJSONList(raw, field string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("parse %s: %v", field, err)
		return []string{}
	}
	return out
}
