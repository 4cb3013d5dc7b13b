package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Counters are denormalized and maintained by
// the profile and recipe services.
type User struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Email          string           `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string           `gorm:"not null" json:"-"`
	Name           string           `gorm:"size:100;not null" json:"name"`
	Username       string           `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Avatar         string           `gorm:"size:512" json:"avatar"`
	Bio            string           `gorm:"type:text" json:"bio"`
	IsChef         bool             `gorm:"default:false" json:"is_chef"`
	Specialties    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"specialties"`
	FollowerCount  int              `gorm:"default:0" json:"follower_count"`
	FollowingCount int              `gorm:"default:0" json:"following_count"`
	RecipeCount    int              `gorm:"default:0" json:"recipe_count"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Follow records that Follower follows Followee.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"followee_id"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
