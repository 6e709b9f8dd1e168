package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// Export dataset names.
const (
	DatasetCategories     = "categories"
	DatasetProducts       = "products"
	DatasetSpecifications = "productSpecifications"
	DatasetReviews        = "productReviews"
	DatasetAssets         = "productAssets"
	DatasetInventories    = "productInventories"
	DatasetPricing        = "productPricing"
)

// Datasets lists every export dataset in a stable order.
var Datasets = []string{
	DatasetCategories, DatasetProducts, DatasetSpecifications, DatasetReviews,
	DatasetAssets, DatasetInventories, DatasetPricing,
}

// ImportColumnMapping renames the canonical product keys to the import column
// names, so an exported products dataset can be imported again.
func ImportColumnMapping() map[string]string {
	return map[string]string{
		"product_name":         ColProductName,
		"sku":                  ColSKU,
		"short_description":    ColShortDescription,
		"long_description":     ColLongDescription,
		"shipping_notes":       ColShippingNotes,
		"warranty_info":        ColWarrantyInfo,
		"visible_to_front_end": ColVisibleToFrontEnd,
		"featured_product":     ColFeaturedProduct,
		"category_name":        ColCategoryName,
		"brand_name":           ColBrandName,
	}
}

// Export flattens every dataset into rows keyed by canonical snake_case names,
// renamed through mapping. Keys with no mapping entry are kept as is. Child
// rows carry their product's name under product_name.
func (s *Service) Export(ctx context.Context, mapping map[string]string) (map[string][]map[string]any, error) {
	type loader func(context.Context) ([]map[string]any, error)
	loaders := map[string]loader{
		DatasetCategories:     s.exportCategories,
		DatasetProducts:       s.exportProducts,
		DatasetSpecifications: s.exportSpecifications,
		DatasetReviews:        s.exportReviews,
		DatasetAssets:         s.exportAssets,
		DatasetInventories:    s.exportInventories,
		DatasetPricing:        s.exportPricing,
	}

	results := make([][]map[string]any, len(Datasets))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range Datasets {
		load := loaders[name]
		g.Go(func() error {
			rows, err := load(gctx)
			if err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]map[string]any, len(Datasets))
	for i, name := range Datasets {
		out[name] = renameKeys(results[i], mapping)
	}
	return out, nil
}

// ExportDataset exports one dataset. Unknown names are an InvalidArgument.
func (s *Service) ExportDataset(ctx context.Context, name string, mapping map[string]string) ([]map[string]any, error) {
	var load func(context.Context) ([]map[string]any, error)
	switch name {
	case DatasetCategories:
		load = s.exportCategories
	case DatasetProducts:
		load = s.exportProducts
	case DatasetSpecifications:
		load = s.exportSpecifications
	case DatasetReviews:
		load = s.exportReviews
	case DatasetAssets:
		load = s.exportAssets
	case DatasetInventories:
		load = s.exportInventories
	case DatasetPricing:
		load = s.exportPricing
	default:
		return nil, catalog.InvalidArgumentf("unknown export dataset %q", name)
	}
	rows, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", name, err)
	}
	return renameKeys(rows, mapping), nil
}

func renameKeys(rows []map[string]any, mapping map[string]string) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		renamed := make(map[string]any, len(row))
		for k, v := range row {
			if to, ok := mapping[k]; ok && to != "" {
				k = to
			}
			renamed[k] = v
		}
		out[i] = renamed
	}
	return out
}

func (s *Service) exportCategories(ctx context.Context) ([]map[string]any, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, map[string]any{
			"category_id":     c.ID.String(),
			"category_name":   c.Name,
			"parent_category": c.ParentCategory,
			"description":     c.Description,
			"sort_order":      c.SortOrder,
			"is_visible":      c.IsVisible,
		})
	}
	return rows, nil
}

func (s *Service) exportProducts(ctx context.Context) ([]map[string]any, error) {
	refs, err := s.store.ListProductRefs(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(refs))
	for _, r := range refs {
		p := r.Product
		rows = append(rows, map[string]any{
			"product_id":           p.ID.String(),
			"product_name":         p.Name,
			"sku":                  p.SKU,
			"short_description":    p.ShortDescription,
			"long_description":     p.LongDescription,
			"shipping_notes":       p.ShippingNotes,
			"warranty_info":        p.WarrantyInfo,
			"visible_to_front_end": p.VisibleToFrontEnd,
			"featured_product":     p.FeaturedProduct,
			"category_name":        r.CategoryName,
			"brand_name":           r.BrandName,
		})
	}
	return rows, nil
}

func (s *Service) exportSpecifications(ctx context.Context) ([]map[string]any, error) {
	specs, err := s.store.ListSpecificationsWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(specs))
	for _, n := range specs {
		sp := n.Row
		rows = append(rows, map[string]any{
			"product_name":     n.ProductName,
			"weight":           sp.Weight,
			"color":            sp.Color,
			"dimensions":       sp.Dimensions,
			"capacity":         sp.Capacity,
			"material":         sp.Material,
			"origin":           sp.Origin,
			"size":             sp.Size,
			"wattage":          sp.Wattage,
			"voltage":          sp.Voltage,
			"special_features": sp.SpecialFeatures,
		})
	}
	return rows, nil
}

func (s *Service) exportReviews(ctx context.Context) ([]map[string]any, error) {
	reviews, err := s.store.ListReviewsWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(reviews))
	for _, n := range reviews {
		var rating any
		if n.Row.Rating != nil {
			rating = *n.Row.Rating
		}
		rows = append(rows, map[string]any{
			"product_name": n.ProductName,
			"user_name":    n.Row.UserName,
			"comment_id":   n.Row.CommentID,
			"comment":      n.Row.Comment,
			"rating":       rating,
		})
	}
	return rows, nil
}

func (s *Service) exportAssets(ctx context.Context) ([]map[string]any, error) {
	assets, err := s.store.ListAssetsWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(assets))
	for _, n := range assets {
		rows = append(rows, map[string]any{
			"product_name": n.ProductName,
			"file_name":    n.Row.FileName,
			"type":         n.Row.Type,
			"extension":    n.Row.Extension,
		})
	}
	return rows, nil
}

func (s *Service) exportInventories(ctx context.Context) ([]map[string]any, error) {
	invs, err := s.store.ListInventoriesWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(invs))
	for _, n := range invs {
		rows = append(rows, map[string]any{
			"product_name": n.ProductName,
			"bin":          n.Row.Bin,
			"location":     n.Row.Location,
			"source":       n.Row.Source,
			"on_hand":      n.Row.OnHand,
			"on_hold":      n.Row.OnHold,
		})
	}
	return rows, nil
}

func (s *Service) exportPricing(ctx context.Context) ([]map[string]any, error) {
	prices, err := s.store.ListPricingWithProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(prices))
	for _, n := range prices {
		p := n.Row
		rows = append(rows, map[string]any{
			"product_name": n.ProductName,
			"msrp":         NumericString(p.MSRP),
			"map":          NumericString(p.MAP),
			"cost":         NumericString(p.Cost),
			"sell":         NumericString(p.Sell),
			"base":         NumericString(p.Base),
			"start_date":   DateString(p.StartDate),
			"end_date":     DateString(p.EndDate),
		})
	}
	return rows, nil
}

// EncodeCSV writes rows with a header of every key seen, sorted. Missing
// values are written as empty cells. Backslashes are doubled so the output
// parses back unchanged under the import dialect.
func EncodeCSV(w io.Writer, rows []map[string]any) error {
	keys := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			keys[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			record[i] = strings.ReplaceAll(cellString(row[k]), `\`, `\\`)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
