package api

import (
	"fmt"
	"net/http"

	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// errRequiredField reports a missing mandatory form field.
func errRequiredField(name string) error {
	return fmt.Errorf("%s is required", name)
}

// saveImages stores any uploaded images and writes their paths back into
// the document. Requests without image files are a no-op.
func (s *Server) saveImages(r *http.Request, kind catalog.Kind, id string) error {
	images, err := readDocumentImages(r)
	if err != nil {
		return err
	}

	paths, err := s.images.Save(kind, id, images)
	if err != nil {
		return err
	}
	return s.repos[kind].SetImagePaths(r.Context(), id, paths)
}

// replaceDocument overwrites a document's fields and replaces its stored
// images with the ones uploaded in this request.
func (s *Server) replaceDocument(r *http.Request, kind catalog.Kind, id string, doc any) error {
	if err := s.images.Remove(kind, id); err != nil {
		return err
	}

	if err := s.repos[kind].Update(r.Context(), id, doc); err != nil {
		return err
	}
	return s.saveImages(r, kind, id)
}

// removeDocument deletes a document and its image directory. Image
// cleanup failures are logged but do not block the delete.
func (s *Server) removeDocument(r *http.Request, kind catalog.Kind, id string) error {
	if err := s.images.Remove(kind, id); err != nil {
		s.logger.Warn("image cleanup failed", "kind", kind, "id", id, "error", err)
	}
	return s.repos[kind].Delete(r.Context(), id)
}
