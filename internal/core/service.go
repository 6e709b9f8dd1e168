package core

import (
	"errors"
	"log/slog"
	"time"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
)

// DefaultImportTimeout bounds a single import when Options.ImportTimeout is unset.
const DefaultImportTimeout = 5 * time.Minute

// DefaultMaxImportSize is the payload limit when Options.MaxImportSize is unset.
const DefaultMaxImportSize int64 = 100 << 20

// Options configures a Service. Zero values select the defaults.
type Options struct {
	MaxImportSize        int64
	ImportTimeout        time.Duration
	MaxConcurrentImports int
	ImportMaxWait        time.Duration
	ImportCharset        string // default legacy charset; "" or "utf-8" disables decoding
	Logger               *slog.Logger
}

// Service is the catalog's application core. All methods are safe for
// concurrent use; consistency is delegated to the store's transactions.
type Service struct {
	store   store.Store
	limiter *ImportLimiter
	logger  *slog.Logger

	maxImportSize int64
	importTimeout time.Duration
	importCharset string

	inventory *singletonService[catalog.Inventory]
	pricing   *singletonService[catalog.Pricing]
}

// NewService creates a Service over st.
func NewService(st store.Store, opts Options) (*Service, error) {
	if st == nil {
		return nil, errors.New("core: nil store")
	}
	if _, err := lookupCharset(opts.ImportCharset); err != nil {
		return nil, err
	}
	if opts.MaxImportSize <= 0 {
		opts.MaxImportSize = DefaultMaxImportSize
	}
	if opts.ImportTimeout <= 0 {
		opts.ImportTimeout = DefaultImportTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Service{
		store:         st,
		limiter:       NewImportLimiter(opts.MaxConcurrentImports, opts.ImportMaxWait),
		logger:        opts.Logger,
		maxImportSize: opts.MaxImportSize,
		importTimeout: opts.ImportTimeout,
		importCharset: opts.ImportCharset,
		inventory:     newInventoryService(),
		pricing:       newPricingService(),
	}, nil
}

// ImportLimiter exposes the import limiter for status reporting and drain on shutdown.
func (s *Service) ImportLimiter() *ImportLimiter {
	return s.limiter
}
