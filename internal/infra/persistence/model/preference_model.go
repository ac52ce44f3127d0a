package model

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceEntryModel mirrors the 'preference_entries' table, the one relation holding
// every (profile, tag) score across all seven dimensions.
type PreferenceEntryModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_preference_profile_tag"`
	Dimension string    `gorm:"type:varchar(20);not null;index"`
	TagID     int64     `gorm:"not null;uniqueIndex:idx_preference_profile_tag"`
	Score     int       `gorm:"not null"`
	UpdatedAt time.Time

	Tag *TagModel `gorm:"foreignKey:TagID"`
}

// TableName explicitly sets the table name for GORM.
func (PreferenceEntryModel) TableName() string {
	return "preference_entries"
}

// All returns every persistence model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&AuthenticationModel{},
		&UserProfileModel{},
		&TagModel{},
		&RestaurantModel{},
		&ItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PreferenceEntryModel{},
	}
}
