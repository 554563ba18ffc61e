// images_test.go

package main

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestImageFilesVetting(t *testing.T) {
	tests := []struct {
		name    string
		files   []testFile
		wantErr error
		wantLen int
	}{
		{
			"valid files",
			[]testFile{
				{"images", "a.jpg", "image/jpeg", "aaa"},
				{"images", "b.png", "image/png", "bbb"},
			},
			nil, 2,
		},
		{"no files", nil, nil, 0},
		{
			"too many files",
			[]testFile{
				{"images", "1.jpg", "image/jpeg", "x"},
				{"images", "2.jpg", "image/jpeg", "x"},
				{"images", "3.jpg", "image/jpeg", "x"},
				{"images", "4.jpg", "image/jpeg", "x"},
				{"images", "5.jpg", "image/jpeg", "x"},
				{"images", "6.jpg", "image/jpeg", "x"},
			},
			errTooManyImages, 0,
		},
		{
			"wrong mime type",
			[]testFile{{"images", "a.pdf", "application/pdf", "x"}},
			errNotAnImage, 0,
		},
		{
			"oversized file",
			[]testFile{{"images", "big.jpg", "image/jpeg", strings.Repeat("x", maxImageBytes+1)}},
			errImageTooLarge, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, map[string]string{"title": "x"}, tt.files)
			form := parseForm(t, body, contentType)
			files, err := imageFiles(form, "images")
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(files) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(files), tt.wantLen)
			}
		})
	}
}

func TestUploadAllPreservesInputOrder(t *testing.T) {
	names := []string{"first.jpg", "second.jpg", "third.jpg", "fourth.jpg", "fifth.jpg"}
	var files []testFile
	for _, n := range names {
		files = append(files, testFile{"images", n, "image/jpeg", "data-" + n})
	}
	body, contentType := multipartBody(t, nil, files)
	form := parseForm(t, body, contentType)
	headers, err := imageFiles(form, "images")
	if err != nil {
		t.Fatalf("imageFiles: %v", err)
	}

	host := &stubHost{}
	urls, err := uploadAll(context.Background(), host, headers)
	if err != nil {
		t.Fatalf("uploadAll: %v", err)
	}
	if len(urls) != len(names) {
		t.Fatalf("len(urls) = %d, want %d", len(urls), len(names))
	}
	for i, n := range names {
		if !strings.HasSuffix(urls[i], "_"+n) {
			t.Errorf("urls[%d] = %q, want suffix %q", i, urls[i], "_"+n)
		}
	}
}

func TestUploadAllSingleFailureAbortsBatch(t *testing.T) {
	body, contentType := multipartBody(t, nil, []testFile{
		{"images", "good.jpg", "image/jpeg", "x"},
		{"images", "bad.jpg", "image/jpeg", "x"},
		{"images", "fine.jpg", "image/jpeg", "x"},
	})
	form := parseForm(t, body, contentType)
	headers, err := imageFiles(form, "images")
	if err != nil {
		t.Fatalf("imageFiles: %v", err)
	}

	host := &stubHost{failOn: "bad.jpg"}
	urls, err := uploadAll(context.Background(), host, headers)
	if err == nil {
		t.Fatalf("uploadAll succeeded, want failure; urls = %v", urls)
	}
	if urls != nil {
		t.Fatalf("urls = %v, want nil on failure", urls)
	}
}

func TestDeleteAllSwallowsFailures(t *testing.T) {
	host := &stubHost{delErr: errors.New("gone already")}
	// must not panic or surface anything
	deleteAll(context.Background(), host, []string{"https://img.test/products/a.jpg"})

	host = &stubHost{}
	deleteAll(context.Background(), host, []string{"u1", "u2"})
	if len(host.deleted) != 2 {
		t.Fatalf("deleted = %v, want both urls", host.deleted)
	}
}

func TestParseJSONList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid", `["a","b"]`, 2},
		{"empty string", "", 0},
		{"malformed degrades to empty", `[not json`, 0},
		{"wrong shape degrades to empty", `{"a":1}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseJSONList(tt.raw, "existingImages")
			if got == nil {
				t.Fatalf("got nil, want empty slice")
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1/products/1712_phone.jpg", "products/1712_phone"},
		{"https://img.test/products/1712_shot.png", "products/1712_shot"},
		{"https://img.test/products/noext", "products/noext"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := publicIDFromURL(tt.url); got != tt.want {
				t.Fatalf("publicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
