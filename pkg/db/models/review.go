package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Submissions start unapproved and only
// appear publicly after moderation.
type Review struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index:reviews_product_id_idx"`
	UserID             *uuid.UUID `gorm:"column:user_id;type:uuid"`
	AuthorName         string     `gorm:"column:author_name;not null"`
	AuthorEmail        string     `gorm:"column:author_email;not null"`
	Rating             int        `gorm:"column:rating;not null"`
	Title              *string    `gorm:"column:title"`
	Content            *string    `gorm:"column:content"`
	IsVerifiedPurchase bool       `gorm:"column:is_verified_purchase;not null;default:false"`
	IsApproved         bool       `gorm:"column:is_approved;not null;default:false"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
