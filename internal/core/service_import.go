package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/JonMunkholm/catalog/internal/tabular"
	"github.com/google/uuid"
)

// Import loads products from a tabular payload.
//
// The mode is checked before anything is read. In "add" mode every row becomes
// a new product; in "replace" mode all specifications and products are deleted
// first. Either way the writes run in one transaction, so readers see the
// catalog before the import or after it, never in between.
//
// Category and brand names resolve by exact name; names that match nothing
// leave the reference nil and are listed in ImportResult.Unresolved.
func (s *Service) Import(ctx context.Context, mode string, file catalog.UploadedFile, opts ImportOptions) (ImportResult, error) {
	start := time.Now()
	result := ImportResult{Phase: PhaseIdle}
	if file != nil {
		result.FileName = file.Name()
	}

	setPhase := func(p ImportPhase) {
		result.Phase = p
		if opts.OnPhase != nil {
			opts.OnPhase(p)
		}
	}
	fail := func(err error) (ImportResult, error) {
		setPhase(PhaseFailed)
		result.Error = err.Error()
		result.Duration = time.Since(start)
		s.logger.Warn("import failed",
			"file", result.FileName,
			"mode", result.Mode,
			"error", err,
			"client_ip", ClientIPFromContext(ctx),
		)
		return result, err
	}

	m, err := ParseImportMode(mode)
	if err != nil {
		return fail(err)
	}
	result.Mode = m
	if file == nil {
		return fail(catalog.InvalidArgumentf("import file is required"))
	}

	charsetName := s.importCharset
	if opts.Charset != "" {
		charsetName = opts.Charset
	}
	charset, err := lookupCharset(charsetName)
	if err != nil {
		return fail(err)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return fail(err)
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	// Parsing
	setPhase(PhaseParsing)
	payload, err := file.Bytes()
	if err != nil {
		return fail(catalog.Internal("read import file", err))
	}
	if int64(len(payload)) > s.maxImportSize {
		return fail(catalog.InvalidArgumentf("import file is %d bytes, limit is %d", len(payload), s.maxImportSize))
	}
	reader, counter, err := wrapImportReader(bytes.NewReader(payload), charset)
	if err != nil {
		return fail(catalog.Internal("prepare import stream", err))
	}
	rows, err := tabular.Parse(reader, tabular.DefaultOptions())
	if err != nil {
		return fail(catalog.Internal("parse import file", err))
	}
	result.BytesRead = counter.BytesRead
	result.RowsParsed = len(rows)

	// Row mapping
	setPhase(PhaseRowMapping)
	products, unresolved, err := s.mapImportRows(ctx, rows)
	if err != nil {
		return fail(err)
	}
	result.Unresolved = unresolved

	// Mode dispatch
	setPhase(PhaseModeDispatch)
	err = s.store.InTx(ctx, func(q store.Queries) error {
		if m == ImportReplace {
			specs, err := q.DeleteAllSpecifications(ctx)
			if err != nil {
				return fmt.Errorf("delete specifications: %w", err)
			}
			deleted, err := q.DeleteAllProducts(ctx)
			if err != nil {
				return fmt.Errorf("delete products: %w", err)
			}
			result.SpecsDeleted, result.RowsDeleted = specs, deleted
		}
		for i, p := range products {
			if _, err := q.InsertProduct(ctx, p); err != nil {
				return fmt.Errorf("insert row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		result.SpecsDeleted, result.RowsDeleted = 0, 0
		return fail(err)
	}

	result.RowsImported = len(products)
	setPhase(PhaseDone)
	result.Duration = time.Since(start)

	s.logger.Info("import completed",
		"file", result.FileName,
		"mode", m,
		"rows", result.RowsImported,
		"deleted", result.RowsDeleted,
		"unresolved", len(result.Unresolved),
		"duration", result.Duration,
		"client_ip", ClientIPFromContext(ctx),
	)
	return result, nil
}

// mapImportRows turns parsed rows into new products, resolving category and
// brand names once per distinct name.
func (s *Service) mapImportRows(ctx context.Context, rows []map[string]string) ([]catalog.Product, []UnresolvedRef, error) {
	categories := newNameCache(func(name string) (uuid.UUID, error) {
		c, err := s.store.GetCategoryByName(ctx, name)
		return c.ID, err
	})
	brands := newNameCache(func(name string) (uuid.UUID, error) {
		b, err := s.store.GetBrandByName(ctx, name)
		return b.ID, err
	})

	var unresolved []UnresolvedRef
	products := make([]catalog.Product, 0, len(rows))
	for i, row := range rows {
		p := catalog.Product{
			ID:                uuid.New(),
			Name:              row[ColProductName],
			SKU:               row[ColSKU],
			ShortDescription:  row[ColShortDescription],
			LongDescription:   row[ColLongDescription],
			ShippingNotes:     row[ColShippingNotes],
			WarrantyInfo:      row[ColWarrantyInfo],
			VisibleToFrontEnd: ParseImportBool(row[ColVisibleToFrontEnd]),
			FeaturedProduct:   ParseImportBool(row[ColFeaturedProduct]),
		}

		if name := row[ColCategoryName]; name != "" {
			id, err := categories.resolve(name)
			if err != nil {
				return nil, nil, fmt.Errorf("resolve category %q: %w", name, err)
			}
			if id == nil {
				unresolved = append(unresolved, UnresolvedRef{Row: i + 1, Field: ColCategoryName, Name: name})
			}
			p.CategoryID = id
		}
		if name := row[ColBrandName]; name != "" {
			id, err := brands.resolve(name)
			if err != nil {
				return nil, nil, fmt.Errorf("resolve brand %q: %w", name, err)
			}
			if id == nil {
				unresolved = append(unresolved, UnresolvedRef{Row: i + 1, Field: ColBrandName, Name: name})
			}
			p.BrandID = id
		}
		products = append(products, p)
	}
	return products, unresolved, nil
}

// nameCache memoizes exact-name lookups for the duration of one import.
type nameCache struct {
	lookup func(string) (uuid.UUID, error)
	seen   map[string]*uuid.UUID
}

func newNameCache(lookup func(string) (uuid.UUID, error)) *nameCache {
	return &nameCache{lookup: lookup, seen: make(map[string]*uuid.UUID)}
}

// resolve returns nil for a name with no match.
func (c *nameCache) resolve(name string) (*uuid.UUID, error) {
	if id, ok := c.seen[name]; ok {
		return id, nil
	}
	id, err := c.lookup(name)
	if errors.Is(err, catalog.ErrNotFound) {
		c.seen[name] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.seen[name] = &id
	return &id, nil
}

// ParseImportBool is true only for "true" in any case.
func ParseImportBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
