package request_models

type CreateOrderRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

type CaptureOrderRequest struct {
	ListingID  string `json:"listing_id" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
}
