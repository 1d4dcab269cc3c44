package model

import "time"

// Customer holds the checkout form fields. Notes is optional; every other
// field is required.
type Customer struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes,omitempty"`
}

// Order is derived at checkout time and discarded after the message is
// composed. It is never persisted.
type Order struct {
	Items      []CartItem `json:"items"`
	Customer   Customer   `json:"customer"`
	ComposedAt time.Time  `json:"composedAt"`
}

// CheckoutResult is what a successful checkout hands back to the caller:
// the composed message and the deep link that carries it.
type CheckoutResult struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}
