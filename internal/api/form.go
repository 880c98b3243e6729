package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// Multipart file field names for document images.
const (
	fileFieldMain = "mainImage"
	fileFieldSub1 = "subImage1"
	fileFieldSub2 = "subImage2"
	fileFieldSub3 = "subImage3"
	fileFieldSub4 = "subImage4"
)

// parseForm parses the multipart body of a register or update request.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxRequestBodySize); err != nil {
		return fmt.Errorf("parsing multipart form: %w", err)
	}
	return nil
}

// formList returns all values submitted under a repeated form field.
func formList(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.Value[key]
}

// formFloat parses a required numeric form field.
func formFloat(r *http.Request, key string) (float64, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return value, nil
}

// readImageFile reads an optional uploaded file into memory.
// A missing file is not an error; the returned slice is nil.
func readImageFile(r *http.Request, key string) ([]byte, error) {
	file, _, err := r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	defer file.Close() //nolint:errcheck // Read-only file handle

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// readDocumentImages collects every uploaded image field from the form.
func readDocumentImages(r *http.Request) (catalog.DocumentImages, error) {
	var images catalog.DocumentImages

	fields := []struct {
		key  string
		dest *[]byte
	}{
		{fileFieldMain, &images.Main},
		{fileFieldSub1, &images.Sub1},
		{fileFieldSub2, &images.Sub2},
		{fileFieldSub3, &images.Sub3},
		{fileFieldSub4, &images.Sub4},
	}

	for _, field := range fields {
		data, err := readImageFile(r, field.key)
		if err != nil {
			return catalog.DocumentImages{}, err
		}
		*field.dest = data
	}
	return images, nil
}

// queryFloat parses an optional numeric query parameter into a pointer,
// nil when the parameter is absent.
func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &value, nil
}

// queryList returns all values of a repeated query parameter.
func queryList(r *http.Request, key string) []string {
	values := r.URL.Query()[key]
	if len(values) == 0 {
		return nil
	}
	return values
}

// parsePagination reads pageNumber and pageSize query parameters.
// Missing or malformed values fall back to defaults via Normalise.
func parsePagination(r *http.Request) catalog.Pagination {
	var page catalog.Pagination
	if n, err := strconv.Atoi(r.URL.Query().Get("pageNumber")); err == nil {
		page.PageNumber = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
		page.PageSize = n
	}
	return page.Normalise()
}
