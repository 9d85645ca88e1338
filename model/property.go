package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/raigadbazaar/marketplace/constant"
)

// ImageList stores property image URLs as a JSON column.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported image list source %T", src)
	}
	if len(raw) == 0 {
		*l = ImageList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// PropertyEntity represents the property table entity.
// status, locked_by and locked_at are written only through the lock engine.
type PropertyEntity struct {
	ID          uint64                  `db:"id" json:"id"`
	Title       string                  `db:"title" json:"title"`
	Description string                  `db:"description" json:"description"`
	Price       float64                 `db:"price" json:"price"`
	Location    string                  `db:"location" json:"location"`
	SizeSqft    *float64                `db:"size_sqft" json:"size_sqft,omitempty"`
	Images      ImageList               `db:"images" json:"images"`
	OwnerID     uint64                  `db:"owner_id" json:"owner_id"`
	OwnerName   string                  `db:"owner_name" json:"owner_name"`
	OwnerPhone  string                  `db:"owner_phone" json:"owner_phone,omitempty"`
	Status      constant.PropertyStatus `db:"status" json:"status"`
	LockedBy    *uint64                 `db:"locked_by" json:"locked_by,omitempty"`
	LockedAt    *time.Time              `db:"locked_at" json:"locked_at,omitempty"`
	CreatedAt   time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time              `db:"updated_at" json:"updated_at,omitempty"`
}

// PropertyFilter for searching properties
type PropertyFilter struct {
	Query  string
	Status constant.PropertyStatus
}

// CreatePropertyRequest mirrors the POST /properties payload
type CreatePropertyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Location    string   `json:"location" validate:"required"`
	SizeSqft    *float64 `json:"size_sqft" validate:"omitempty,gt=0"`
	Images      []string `json:"images"`
	OwnerID     uint64   `json:"owner_id" validate:"required"`
	OwnerName   string   `json:"owner_name" validate:"required"`
	OwnerPhone  string   `json:"owner_phone"`
}

// LockRequest mirrors the POST /properties/lock payload
type LockRequest struct {
	PropertyID uint64 `json:"property_id" validate:"required"`
	BuyerID    uint64 `json:"buyer_id" validate:"required"`
}

// LockResponse reports the lock outcome
type LockResponse struct {
	PropertyID uint64                  `json:"property_id"`
	Status     constant.PropertyStatus `json:"status"`
	LockedBy   uint64                  `json:"locked_by"`
	LockedAt   time.Time               `json:"locked_at"`
	ExpiresAt  time.Time               `json:"expires_at"`
}

// ReleaseRequest for owner-initiated lock release
type ReleaseRequest struct {
	PropertyID uint64 `json:"property_id" validate:"required"`
	OwnerID    uint64 `json:"owner_id" validate:"required"`
}

// MarkSoldRequest for owner-initiated sale
type MarkSoldRequest struct {
	PropertyID uint64 `json:"property_id" validate:"required"`
	OwnerID    uint64 `json:"owner_id" validate:"required"`
}

// ReleaseExpiredRequest is posted by the lock expiration consumer; it pins
// the exact lock the sweep was scheduled for.
type ReleaseExpiredRequest struct {
	BuyerID  uint64    `json:"buyer_id" validate:"required"`
	LockedAt time.Time `json:"locked_at" validate:"required"`
}

// StatusResponse is the generic transition acknowledgement
type StatusResponse struct {
	PropertyID uint64                  `json:"property_id"`
	Status     constant.PropertyStatus `json:"status"`
}
