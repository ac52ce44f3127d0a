package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TagModel mirrors the 'tags' table: one row per (dimension, key).
type TagModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Dimension string `gorm:"type:varchar(20);not null;uniqueIndex:idx_tags_dimension_key"`
	Key       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_dimension_key"`
	Label     string `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}

// RestaurantModel mirrors the 'restaurants' table.
type RestaurantModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Address   string     `gorm:"type:varchar(500)"`
	Latitude  float64    `gorm:"not null;index:idx_restaurants_lat_lng;check:chk_restaurants_latitude,latitude >= -90 AND latitude <= 90"`
	Longitude float64    `gorm:"not null;index:idx_restaurants_lat_lng;check:chk_restaurants_longitude,longitude >= -180 AND longitude <= 180"`
	PlaceID   string     `gorm:"type:varchar(255);not null;unique"`
	IsActive  bool       `gorm:"not null"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// ItemModel mirrors the 'items' table. Multi-valued tags live in the 'item_tags' join table;
// spiciness is a nullable single reference.
type ItemModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	RestaurantID   int64           `gorm:"not null;uniqueIndex:idx_items_restaurant_name"`
	Name           string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_restaurant_name"`
	Description    string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_items_price,price >= 0"`
	IsActive       bool            `gorm:"not null"`
	SpicinessTagID *int64
	CreatedAt      time.Time

	Restaurant *RestaurantModel `gorm:"foreignKey:RestaurantID"`
	Spiciness  *TagModel        `gorm:"foreignKey:SpicinessTagID"`
	Tags       []TagModel       `gorm:"many2many:item_tags;joinForeignKey:ItemID;joinReferences:TagID"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

// ItemTagModel mirrors the 'item_tags' join table created for ItemModel.Tags.
// Writes go through it directly so tag rows are never upserted as a side effect.
type ItemTagModel struct {
	ItemID int64 `gorm:"primaryKey"`
	TagID  int64 `gorm:"primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (ItemTagModel) TableName() string {
	return "item_tags"
}
