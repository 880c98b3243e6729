package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// Image field names as stored on documents and on disk.
const (
	ImageFieldMain = "main_image"
	ImageFieldSub1 = "sub_image_1"
	ImageFieldSub2 = "sub_image_2"
	ImageFieldSub3 = "sub_image_3"
	ImageFieldSub4 = "sub_image_4"
)

// File permissions for the image store.
const (
	imageDirPermissions  = 0750
	imageFilePermissions = 0600
)

// DocumentImages carries the raw image bytes uploaded with a document.
// Nil slices mean the image was not provided.
type DocumentImages struct {
	Main []byte
	Sub1 []byte
	Sub2 []byte
	Sub3 []byte
	Sub4 []byte
}

// ImageStore writes document images to the local filesystem, laid out as
// <root>/<kind>/<document-id>/<field>.png.
type ImageStore struct {
	root string
}

// NewImageStore creates a store rooted at the given directory.
func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// Save writes each provided image under the document's directory and
// returns the field-to-path map for writing back into the document.
func (s *ImageStore) Save(kind Kind, documentID string, images DocumentImages) (map[string]string, error) {
	fields := []struct {
		name string
		data []byte
	}{
		{ImageFieldMain, images.Main},
		{ImageFieldSub1, images.Sub1},
		{ImageFieldSub2, images.Sub2},
		{ImageFieldSub3, images.Sub3},
		{ImageFieldSub4, images.Sub4},
	}

	dir := s.documentDir(kind, documentID)
	paths := make(map[string]string)

	for _, field := range fields {
		if field.data == nil {
			continue
		}

		if err := os.MkdirAll(dir, imageDirPermissions); err != nil {
			return nil, fmt.Errorf("creating image directory: %w", err)
		}

		path := filepath.Join(dir, field.name+".png")
		if err := os.WriteFile(path, field.data, imageFilePermissions); err != nil {
			return nil, fmt.Errorf("writing %s: %w", field.name, err)
		}
		paths[field.name] = path
	}

	return paths, nil
}

// Remove deletes a document's image directory. Missing directories are
// not an error.
func (s *ImageStore) Remove(kind Kind, documentID string) error {
	if err := os.RemoveAll(s.documentDir(kind, documentID)); err != nil {
		return fmt.Errorf("removing image directory: %w", err)
	}
	return nil
}

func (s *ImageStore) documentDir(kind Kind, documentID string) string {
	return filepath.Join(s.root, string(kind), documentID)
}
