package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// maxMultipartMemory is how much of a multipart body is held in memory; the
// rest spills to temp files.
const maxMultipartMemory = 32 << 20

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return catalog.InvalidArgumentf("request body exceeds %d bytes", maxErr.Limit)
		}
		return catalog.InvalidArgumentf("invalid JSON body: %v", err)
	}
	return nil
}

// uuidParam parses a UUID URL parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, catalog.InvalidArgumentf("%s %q is not a valid id", name, raw)
	}
	return id, nil
}

// intParam parses an integer URL parameter.
func intParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, catalog.InvalidArgumentf("%s %q is not a number", name, raw)
	}
	return n, nil
}

// parseMultipart bounds the body to limit bytes and parses the form.
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return catalog.InvalidArgumentf("request body exceeds %d bytes", maxErr.Limit)
		}
		return catalog.InvalidArgumentf("invalid multipart form: %v", err)
	}
	return nil
}

// formFile adapts a multipart file header to catalog.UploadedFile. The part is
// opened only when Bytes is called.
type formFile struct {
	header *multipart.FileHeader
}

func (f formFile) Name() string { return f.header.Filename }

func (f formFile) Bytes() ([]byte, error) {
	file, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", f.header.Filename, err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

// formFiles returns every file sent under key, in form order.
func formFiles(r *http.Request, key string) []catalog.UploadedFile {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[key]
	files := make([]catalog.UploadedFile, len(headers))
	for i, h := range headers {
		files[i] = formFile{header: h}
	}
	return files
}

// formFileOptional returns the first file under key, or nil.
func formFileOptional(r *http.Request, key string) catalog.UploadedFile {
	if files := formFiles(r, key); len(files) > 0 {
		return files[0]
	}
	return nil
}
