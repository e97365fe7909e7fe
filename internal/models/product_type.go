package models

// ProductType is a product category. Names are unique case-insensitively:
// the unique index sits on the lowercased NameKey, so the database rejects
// "widget" next to "Widget" even when two imports race. The importer creates
// a type on first encounter and reuses it afterwards.
type ProductType struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name    string `json:"name" gorm:"not null;type:varchar(255)" validate:"required"`
	NameKey string `json:"-" gorm:"uniqueIndex;not null;type:varchar(255)"`
}
