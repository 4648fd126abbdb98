package receipt

import (
	"github.com/shopspring/decimal"
)

// Amount is a monetary value decoded leniently from JSON. Storefront
// clients send amounts as numbers, numeric strings, or not at all;
// anything that does not parse as a number decodes as zero rather
// than failing the request.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromFloat builds an Amount from a float64.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON decodes numbers and numeric strings; null and
// malformed values coerce to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// OrderDetails is the order record supplied by the storefront with a
// confirmation request or reconstructed from a payment webhook. Every
// field is optional; missing fields render as empty or zero.
type OrderDetails struct {
	OrderID         string     `json:"orderId"`
	Items           []LineItem `json:"items"`
	ShippingAddress *Address   `json:"shippingAddress"`
	BillingAddress  *Address   `json:"billingAddress"`
	PaymentStatus   string     `json:"paymentStatus"`
	DeliveryMethod  string     `json:"deliveryMethod"`
	Subtotal        Amount     `json:"subtotal"`
	Tax             Amount     `json:"tax"`
	ShippingFee     Amount     `json:"shippingFee"`
	Discount        Amount     `json:"discount"`
	Donation        Amount     `json:"donation"`
	TotalAmount     Amount     `json:"totalAmount"`
}

// LineItem is one product entry in an order.
type LineItem struct {
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	Price        Amount `json:"price"`
	SelectedSize string `json:"selectedSize,omitempty"`
	Image        string `json:"image,omitempty"`
}

// Address is a shipping or billing address. All fields are optional
// strings; missing values render empty.
type Address struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// IsEmpty reports whether no address field is set.
func (a *Address) IsEmpty() bool {
	if a == nil {
		return true
	}
	return *a == Address{}
}
