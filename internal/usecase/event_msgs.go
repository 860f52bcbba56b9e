package usecase

// Sent by the fulfillment backoffice on Kafka when an order progresses.
type OrderStatusChangedMsg struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}
