package model

// ContactRequest mirrors the POST /properties/contact payload
type ContactRequest struct {
	PropertyID uint64 `json:"property_id" validate:"required"`
	BuyerID    uint64 `json:"buyer_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

// ContactResponse acknowledges a dispatched contact request
type ContactResponse struct {
	PropertyID uint64 `json:"property_id"`
	Detail     string `json:"detail"`
}
