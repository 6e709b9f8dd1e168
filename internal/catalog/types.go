package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Product is the catalog aggregate root.
type Product struct {
	ID                uuid.UUID      `json:"id"`
	Name              string         `json:"productName"`
	SKU               string         `json:"sku"`
	ShortDescription  string         `json:"shortDescription"`
	LongDescription   string         `json:"longDescription"`
	ShippingNotes     string         `json:"shippingNotes"`
	WarrantyInfo      string         `json:"warrantyInfo"`
	VisibleToFrontEnd bool           `json:"visibleToFrontEnd"`
	FeaturedProduct   bool           `json:"featuredProduct"`
	CategoryID        *uuid.UUID     `json:"categoryId"`
	BrandID           *uuid.UUID     `json:"brandId"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	Specification     *Specification `json:"specification,omitempty"`
}

// Specification shares its primary key with the owning product.
type Specification struct {
	ProductID       uuid.UUID `json:"productId"`
	Weight          string    `json:"weight"`
	Color           string    `json:"color"`
	Dimensions      string    `json:"dimensions"`
	Capacity        string    `json:"capacity"`
	Material        string    `json:"material"`
	Origin          string    `json:"origin"`
	Size            string    `json:"size"`
	Wattage         string    `json:"wattage"`
	Voltage         string    `json:"voltage"`
	SpecialFeatures string    `json:"specialFeatures"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Asset is a binary file attached to a product.
type Asset struct {
	ID        int64     `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	FileName  string    `json:"fileName"`
	Type      string    `json:"type"`
	Extension string    `json:"extension"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssetMeta describes an asset before its payload is attached.
type AssetMeta struct {
	FileName  string `json:"fileName"`
	Type      string `json:"type"`
	Extension string `json:"extension"`
}

// Inventory is the single stock row for a product.
// Version is the optimistic lock counter; 0 means the row has never been stored.
type Inventory struct {
	ProductID uuid.UUID `json:"productId"`
	Bin       string    `json:"bin"`
	Location  string    `json:"location"`
	Source    string    `json:"source"`
	OnHand    int       `json:"onHand"`
	OnHold    int       `json:"onHold"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pricing is the single price row for a product.
type Pricing struct {
	ProductID uuid.UUID      `json:"productId"`
	MSRP      pgtype.Numeric `json:"msrp"`
	MAP       pgtype.Numeric `json:"map"`
	Cost      pgtype.Numeric `json:"cost"`
	Sell      pgtype.Numeric `json:"sell"`
	Base      pgtype.Numeric `json:"base"`
	StartDate pgtype.Date    `json:"startDate"`
	EndDate   pgtype.Date    `json:"endDate"`
	CreatedBy string         `json:"createdBy"`
	Version   int64          `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ReviewKey identifies a review. It is comparable and safe to use as a map key.
type ReviewKey struct {
	ProductID uuid.UUID `json:"productId"`
	UserName  string    `json:"userName"`
	CommentID int       `json:"commentId"`
}

// Review is a user comment on a product.
type Review struct {
	ProductID uuid.UUID `json:"productId"`
	UserName  string    `json:"userName"`
	CommentID int       `json:"commentId"`
	Comment   string    `json:"comment"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the composite identity of the review.
func (r Review) Key() ReviewKey {
	return ReviewKey{ProductID: r.ProductID, UserName: r.UserName, CommentID: r.CommentID}
}

// Category groups products.
type Category struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"categoryName"`
	ParentCategory   string    `json:"parentCategory"`
	Description      string    `json:"description"`
	SortOrder        string    `json:"sortOrder"`
	IsVisible        bool      `json:"isVisible"`
	SmartCategory    bool      `json:"smartCategory"`
	ProductMustWatch bool      `json:"productMustWatch"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Brand is a product manufacturer or label.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"brandName"`
	Description string    `json:"description"`
	Assets      string    `json:"assets"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
