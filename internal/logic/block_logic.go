package logic

import (
	"context"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/model"
	"github.com/blues/chainstats/internal/repository"
)

// BlockList is the listing envelope returned to the API.
type BlockList struct {
	Blocks   []model.BlockModel `json:"blocks"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// BlockLogic serves block listing and lookup on top of the repository.
type BlockLogic struct {
	repo        repository.BlockRepository
	pageSizeMax int
}

// NewBlockLogic creates the block listing service.
func NewBlockLogic(repo repository.BlockRepository, pageSizeMax int) *BlockLogic {
	if pageSizeMax <= 0 {
		pageSizeMax = 100
	}
	return &BlockLogic{repo: repo, pageSizeMax: pageSizeMax}
}

// ListBlocks returns one page of blocks, newest stored first. Both filters
// are optional and combine with AND; the currency match is case-insensitive.
// Out-of-range paging is rejected before the store is touched.
func (l *BlockLogic) ListBlocks(ctx context.Context, page, pageSize int, currencyName string, providerId int64) (*BlockList, error) {
	if page < 1 {
		return nil, apperr.Invalid("page must be >= 1")
	}
	if pageSize < 1 || pageSize > l.pageSizeMax {
		return nil, apperr.Invalid("page_size must be between 1 and %d", l.pageSizeMax)
	}

	filter := repository.BlockFilter{
		CurrencyName: currencyName,
		ProviderId:   providerId,
	}
	offset := (page - 1) * pageSize

	blocks, total, err := l.repo.FindBlocks(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, err
	}

	// Keep the envelope's list non-null in JSON.
	if blocks == nil {
		blocks = []model.BlockModel{}
	}

	return &BlockList{
		Blocks:   blocks,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetBlockByKey fetches a block by currency name and block number.
func (l *BlockLogic) GetBlockByKey(ctx context.Context, currencyName string, blockNumber int64) (*model.BlockModel, error) {
	return l.repo.GetByKey(ctx, currencyName, blockNumber)
}

// GetBlockById fetches a block by its application id.
func (l *BlockLogic) GetBlockById(ctx context.Context, id int64) (*model.BlockModel, error) {
	return l.repo.GetById(ctx, id)
}

// ListProviders returns the full provider list, unpaginated.
func (l *BlockLogic) ListProviders(ctx context.Context) ([]model.ProviderModel, error) {
	providers, err := l.repo.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []model.ProviderModel{}
	}
	return providers, nil
}

// ListCurrencies returns the full currency list, unpaginated.
func (l *BlockLogic) ListCurrencies(ctx context.Context) ([]model.CurrencyModel, error) {
	currencies, err := l.repo.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	if currencies == nil {
		currencies = []model.CurrencyModel{}
	}
	return currencies, nil
}
