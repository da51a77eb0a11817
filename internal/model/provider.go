package model

// ProviderModel is an external data source credentialed to supply block
// observations. APIKey is a label for some providers, not always a secret.
type ProviderModel struct {
	Id     int64  `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:150;not null;uniqueIndex"`
	APIKey string `json:"api_key" gorm:"size:150;column:api_key"`
}

// TableName sets a singular table name.
func (ProviderModel) TableName() string {
	return "provider"
}
