package repository

import (
	"context"

	"github.com/blues/chainstats/internal/model"
)

// BlockFilter narrows a block listing. Zero values mean "no constraint";
// both constraints combine with AND.
type BlockFilter struct {
	CurrencyName string // case-insensitive exact match
	ProviderId   int64  // membership in the block's provider set
}

// BlockRepository is the typed store access for blocks and their reference
// entities. Listings are always ordered by stored_at descending.
type BlockRepository interface {
	FindBlocks(ctx context.Context, filter BlockFilter, offset, limit int) ([]model.BlockModel, int64, error)
	GetByKey(ctx context.Context, currencyName string, blockNumber int64) (*model.BlockModel, error)
	GetById(ctx context.Context, id int64) (*model.BlockModel, error)
	Exists(ctx context.Context, currencyId, blockNumber int64) (bool, error)
	Insert(ctx context.Context, block *model.BlockModel, providers []model.ProviderModel) (*model.BlockModel, error)

	GetOrCreateCurrency(ctx context.Context, name string) (*model.CurrencyModel, error)
	GetOrCreateProvider(ctx context.Context, name, defaultAPIKey string) (*model.ProviderModel, error)
	ListCurrencies(ctx context.Context) ([]model.CurrencyModel, error)
	ListProviders(ctx context.Context) ([]model.ProviderModel, error)
}

// UserRepository is the typed store access for accounts.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *model.UserModel) error
	GetByUsername(ctx context.Context, username string) (*model.UserModel, error)
}
