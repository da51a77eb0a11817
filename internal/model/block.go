package model

import (
	"time"
)

// BlockModel is one recorded observation of a chain's best block.
//
// CreatedAt is the chain-observed block time reported by the upstream source;
// StoredAt is stamped when the row is inserted. Rows are written once by the
// ingestion job and never mutated.
type BlockModel struct {
	Id int64 `json:"id" gorm:"primaryKey"`

	// One block per (currency, block_number); the unique index is the real
	// enforcement, the job's exists-check is only the fast path.
	CurrencyId  int64         `json:"-" gorm:"not null;uniqueIndex:idx_block_currency_number"`
	Currency    CurrencyModel `json:"currency" gorm:"foreignKey:CurrencyId;constraint:OnDelete:CASCADE"`
	BlockNumber int64         `json:"block_number" gorm:"not null;default:0;uniqueIndex:idx_block_currency_number"`

	Providers []ProviderModel `json:"providers" gorm:"many2many:block_providers;joinForeignKey:BlockId;joinReferences:ProviderId"`

	CreatedAt time.Time `json:"created_at"`
	StoredAt  time.Time `json:"stored_at"`
}

// TableName sets a singular table name.
func (BlockModel) TableName() string {
	return "block"
}
