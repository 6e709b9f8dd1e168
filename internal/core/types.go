package core

import (
	"strings"
	"time"

	"github.com/JonMunkholm/catalog/internal/catalog"
)

// ImportMode selects how an import treats the existing catalog.
type ImportMode string

const (
	ImportAdd     ImportMode = "add"     // append rows as new products
	ImportReplace ImportMode = "replace" // delete every product, then insert rows
)

// ParseImportMode accepts "add" or "replace" in any case.
func ParseImportMode(s string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ImportAdd, ImportReplace:
		return m, nil
	default:
		return "", catalog.InvalidArgumentf("import mode must be %q or %q, got %q", ImportAdd, ImportReplace, s)
	}
}

// ImportPhase is the state of an import.
type ImportPhase string

const (
	PhaseIdle         ImportPhase = "idle"
	PhaseParsing      ImportPhase = "parsing"
	PhaseRowMapping   ImportPhase = "row_mapping"
	PhaseModeDispatch ImportPhase = "mode_dispatch"
	PhaseDone         ImportPhase = "done"
	PhaseFailed       ImportPhase = "failed"
)

// Import column names. Export's ImportColumnMapping produces the same names.
const (
	ColProductName       = "productName"
	ColSKU               = "sku"
	ColShortDescription  = "shortDescription"
	ColLongDescription   = "longDescription"
	ColShippingNotes     = "shippingNotes"
	ColWarrantyInfo      = "warrantyInfo"
	ColVisibleToFrontEnd = "visibleToFrontEnd"
	ColFeaturedProduct   = "featuredProduct"
	ColCategoryName      = "categoryName"
	ColBrandName         = "brandName"
)

// ImportOptions tunes one import.
type ImportOptions struct {
	// Charset overrides the service default, e.g. "windows-1252".
	Charset string
	// OnPhase, if set, is called on every phase transition.
	OnPhase func(ImportPhase)
}

// UnresolvedRef records a category or brand name that matched nothing.
// The product was still imported, with a nil reference.
type UnresolvedRef struct {
	Row   int    `json:"row"` // 1-based data row
	Field string `json:"field"`
	Name  string `json:"name"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	FileName     string          `json:"file_name"`
	Mode         ImportMode      `json:"mode"`
	Phase        ImportPhase     `json:"phase"`
	BytesRead    int64           `json:"bytes_read"`
	RowsParsed   int             `json:"rows_parsed"`
	RowsImported int             `json:"rows_imported"`
	RowsDeleted  int64           `json:"rows_deleted"`
	SpecsDeleted int64           `json:"specs_deleted"`
	Unresolved   []UnresolvedRef `json:"unresolved,omitempty"`
	Duration     time.Duration   `json:"duration"`
	Error        string          `json:"error,omitempty"`
}
