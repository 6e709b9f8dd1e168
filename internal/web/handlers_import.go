package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/JonMunkholm/catalog/internal/logging"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the import file itself.
const multipartOverhead = 1 << 20

// presetParam is the export query parameter that selects a built-in mapping.
// The only preset is "import", which renames product columns so the export
// can be imported again.
const presetParam = "preset"

// handleImport runs a bulk product import from the multipart "file" part.
// The "mode" field is "add" or "replace"; "charset" optionally names a legacy
// encoding of the file.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, s.cfg.Import.MaxFileSize+multipartOverhead); err != nil {
		respondError(w, r, err)
		return
	}

	mode := r.FormValue("mode")
	log := logging.WithFields(r.Context(), "mode", mode)

	file := formFileOptional(r, "file")
	if file != nil {
		log = log.With("file", file.Name())
	}
	log.Info("import requested")

	result, err := s.service.Import(r.Context(), mode, file, core.ImportOptions{
		Charset: r.FormValue("charset"),
		OnPhase: func(p core.ImportPhase) {
			log.Debug("import phase", "phase", p)
		},
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// exportMapping builds the column mapping from the query string. Every
// parameter except preset maps a canonical column to a new name.
func exportMapping(r *http.Request) (map[string]string, error) {
	q := r.URL.Query()
	mapping := make(map[string]string)

	switch preset := q.Get(presetParam); preset {
	case "":
	case "import":
		for k, v := range core.ImportColumnMapping() {
			mapping[k] = v
		}
	default:
		return nil, catalog.InvalidArgumentf("unknown export preset %q", preset)
	}

	for key, values := range q {
		if key == presetParam || len(values) == 0 {
			continue
		}
		mapping[key] = values[0]
	}
	return mapping, nil
}

// handleExport returns every dataset as JSON, keyed by dataset name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	mapping, err := exportMapping(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	data, err := s.service.Export(r.Context(), mapping)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleExportDataset returns one dataset as a CSV download.
func (s *Server) handleExportDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")
	mapping, err := exportMapping(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rows, err := s.service.ExportDataset(r.Context(), name, mapping)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Encode before writing headers so an encoding failure can still become
	// an error response.
	var buf bytes.Buffer
	if err := core.EncodeCSV(&buf, rows); err != nil {
		respondError(w, r, catalog.Internal("encode csv", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
