package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/model"
	"gorm.io/gorm"
)

// blockRepo is the gorm-backed BlockRepository.
type blockRepo struct {
	db *gorm.DB
}

// NewBlockRepository creates the postgres block repository.
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepo{db: db}
}

// FindBlocks returns one page of the filtered set plus its pre-slice count.
func (r *blockRepo) FindBlocks(ctx context.Context, filter BlockFilter, offset, limit int) ([]model.BlockModel, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.BlockModel{})

	if filter.CurrencyName != "" {
		query = query.
			Joins("JOIN currency ON currency.id = block.currency_id").
			Where("LOWER(currency.name) = LOWER(?)", filter.CurrencyName)
	}

	if filter.ProviderId != 0 {
		query = query.
			Joins("JOIN block_providers ON block_providers.block_id = block.id").
			Where("block_providers.provider_id = ?", filter.ProviderId)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blocks: %w", err)
	}

	var blocks []model.BlockModel
	err := query.
		Preload("Currency").
		Preload("Providers").
		Order("block.stored_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&blocks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blocks: %w", err)
	}

	return blocks, total, nil
}

// GetByKey fetches the block for (currency name, block number).
func (r *blockRepo) GetByKey(ctx context.Context, currencyName string, blockNumber int64) (*model.BlockModel, error) {
	var block model.BlockModel
	err := r.db.WithContext(ctx).
		Joins("JOIN currency ON currency.id = block.currency_id").
		Where("LOWER(currency.name) = LOWER(?) AND block.block_number = ?", currencyName, blockNumber).
		Preload("Currency").
		Preload("Providers").
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Block not found")
		}
		return nil, fmt.Errorf("failed to query block: %w", err)
	}
	return &block, nil
}

func (r *blockRepo) GetById(ctx context.Context, id int64) (*model.BlockModel, error) {
	var block model.BlockModel
	err := r.db.WithContext(ctx).
		Preload("Currency").
		Preload("Providers").
		First(&block, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Block not found")
		}
		return nil, fmt.Errorf("failed to query block: %w", err)
	}
	return &block, nil
}

func (r *blockRepo) Exists(ctx context.Context, currencyId, blockNumber int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlockModel{}).
		Where("currency_id = ? AND block_number = ?", currencyId, blockNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block existence: %w", err)
	}
	return count > 0, nil
}

// Insert stores a new block with its provider associations. A concurrent
// writer can win the (currency, block_number) race; the unique index turns
// that into ErrDuplicatedKey and the winner's row is returned instead.
func (r *blockRepo) Insert(ctx context.Context, block *model.BlockModel, providers []model.ProviderModel) (*model.BlockModel, error) {
	block.Providers = providers

	err := r.db.WithContext(ctx).Create(block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing model.BlockModel
			getErr := r.db.WithContext(ctx).
				Where("currency_id = ? AND block_number = ?", block.CurrencyId, block.BlockNumber).
				Preload("Currency").
				Preload("Providers").
				First(&existing).Error
			if getErr != nil {
				return nil, fmt.Errorf("failed to load existing block: %w", getErr)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to insert block: %w", err)
	}

	return block, nil
}

func (r *blockRepo) GetOrCreateCurrency(ctx context.Context, name string) (*model.CurrencyModel, error) {
	var currency model.CurrencyModel
	err := r.db.WithContext(ctx).
		Where(model.CurrencyModel{Name: name}).
		FirstOrCreate(&currency).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create currency %q: %w", name, err)
	}
	return &currency, nil
}

func (r *blockRepo) GetOrCreateProvider(ctx context.Context, name, defaultAPIKey string) (*model.ProviderModel, error) {
	var provider model.ProviderModel
	err := r.db.WithContext(ctx).
		Where(model.ProviderModel{Name: name}).
		Attrs(model.ProviderModel{APIKey: defaultAPIKey}).
		FirstOrCreate(&provider).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create provider %q: %w", name, err)
	}
	return &provider, nil
}

func (r *blockRepo) ListCurrencies(ctx context.Context) ([]model.CurrencyModel, error) {
	var currencies []model.CurrencyModel
	if err := r.db.WithContext(ctx).Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *blockRepo) ListProviders(ctx context.Context) ([]model.ProviderModel, error) {
	var providers []model.ProviderModel
	if err := r.db.WithContext(ctx).Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}
