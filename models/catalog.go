package models

import "time"

// CatalogItem is the locally cached copy of an upstream bookable service.
// Synced periodically per location; upstream stays the system of record.
type CatalogItem struct {
	ID           string        `bson:"id" json:"id"`                   // Upstream catalog item identifier (sync key).
	Name         string        `bson:"name" json:"name"`               // Display name, e.g. "Botox".
	Category     string        `bson:"category" json:"category"`       // Upstream category name.
	LocationKey  string        `bson:"locationKey" json:"locationKey"` // Internal location slug, e.g. "westfield".
	DurationMin  int           `bson:"durationMin" json:"durationMin"` // Minutes.
	DurationMax  int           `bson:"durationMax" json:"durationMax"` // Minutes.
	PriceMin     int           `bson:"priceMin" json:"priceMin"`       // Cents.
	PriceMax     int           `bson:"priceMax" json:"priceMax"`       // Cents.
	OptionGroups []OptionGroup `bson:"optionGroups,omitempty" json:"optionGroups,omitempty"`
	SyncedAt     time.Time     `bson:"syncedAt" json:"syncedAt"`
}

// OptionGroup is a named choice set attached to a catalog item.
type OptionGroup struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	MinSelected int          `bson:"minSelected" json:"minSelected"`
	MaxSelected int          `bson:"maxSelected" json:"maxSelected"`
	Options     []ItemOption `bson:"options" json:"options"`
}

// ItemOption is a single selectable add-on inside an option group.
type ItemOption struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	DurationDelta int    `bson:"durationDelta" json:"durationDelta"` // Minutes added when selected.
	PriceDelta    int    `bson:"priceDelta" json:"priceDelta"`       // Cents added when selected.
}
