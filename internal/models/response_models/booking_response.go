package response_models

type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

type CaptureOrderResponse struct {
	OK           bool   `json:"ok"`
	PaypalStatus string `json:"paypal_status"`
	BookingID    string `json:"booking_id"`
}
