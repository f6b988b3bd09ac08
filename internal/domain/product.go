package domain

import "time"

// ProductStatus is the availability state stored with each product.
type ProductStatus string

const (
	StatusInStock ProductStatus = "in_stock"
	StatusOnOrder ProductStatus = "on_order"
)

// Product is the catalog record as persisted by the admin subsystem.
// This module only reads it; all prices are in the base currency.
type Product struct {
	ID          string        `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
	MaxPrice    *float64      `bson:"max_price,omitempty" json:"maxPrice,omitempty"`
	Image       string        `bson:"image" json:"image"`
	Category    string        `bson:"category" json:"category"`
	Status      ProductStatus `bson:"status" json:"status"`
	Tags        []string      `bson:"tags" json:"tags"`
	IsFeatured  bool          `bson:"is_featured" json:"isFeatured"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}
