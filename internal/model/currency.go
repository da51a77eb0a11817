package model

// CurrencyModel is a blockchain/network a block belongs to.
type CurrencyModel struct {
	Id   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null;uniqueIndex"`
}

// TableName sets a singular table name.
func (CurrencyModel) TableName() string {
	return "currency"
}
