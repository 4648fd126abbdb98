package receipt

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) Amount {
	return Amount{Decimal: decimal.RequireFromString(s)}
}

func TestResolveTotal(t *testing.T) {
	tests := []struct {
		name     string
		details  OrderDetails
		expected string
	}{
		{
			name: "full breakdown",
			details: OrderDetails{
				Subtotal:    amt("99.99"),
				Tax:         amt("8.25"),
				ShippingFee: amt("15.99"),
				Discount:    amt("10.00"),
				Donation:    amt("5.00"),
			},
			expected: "119.23",
		},
		{
			name:     "no subtotal falls back to totalAmount",
			details:  OrderDetails{TotalAmount: amt("50.00")},
			expected: "50.00",
		},
		{
			name: "zero subtotal also falls back",
			details: OrderDetails{
				Subtotal:    amt("0"),
				Tax:         amt("8.25"),
				TotalAmount: amt("42.00"),
			},
			expected: "42.00",
		},
		{
			name:     "everything absent",
			details:  OrderDetails{},
			expected: "0.00",
		},
		{
			name: "subtotal only",
			details: OrderDetails{
				Subtotal: amt("25.50"),
			},
			expected: "25.50",
		},
		{
			name: "discount larger than subtotal is not clamped",
			details: OrderDetails{
				Subtotal: amt("10.00"),
				Discount: amt("25.00"),
			},
			expected: "-15.00",
		},
		{
			name: "result rounded to two decimals",
			details: OrderDetails{
				Subtotal: amt("10.004"),
				Tax:      amt("0.002"),
			},
			expected: "10.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTotal(&tt.details)
			if got.StringFixed(2) != tt.expected {
				t.Errorf("Expected total %s, got %s", tt.expected, got.StringFixed(2))
			}
		})
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		item     LineItem
		expected string
	}{
		{"rounds half up", LineItem{Name: "Shirt", Quantity: 2, Price: amt("19.995")}, "39.99"},
		{"zero quantity", LineItem{Name: "Cap", Quantity: 0, Price: amt("12.00")}, "0.00"},
		{"zero price", LineItem{Name: "Sticker", Quantity: 3, Price: amt("0")}, "0.00"},
		{"negative price propagates", LineItem{Name: "Adjustment", Quantity: 1, Price: amt("-5.00")}, "-5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.item)
			if got.StringFixed(2) != tt.expected {
				t.Errorf("Expected line total %s, got %s", tt.expected, got.StringFixed(2))
			}
		})
	}
}

func TestComputeReceipt_CashOnDelivery(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{
		OrderID:       "ORD-1001",
		PaymentStatus: "CASH ON DELIVERY",
	})

	if view.StatusBadge.Icon != "💵" {
		t.Errorf("Expected cash icon, got %q", view.StatusBadge.Icon)
	}
	if view.CashNotice == "" {
		t.Error("Expected a cash notice for CASH ON DELIVERY")
	}
}

func TestComputeReceipt_UnknownStatus(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{PaymentStatus: "Unknown"})

	if view.StatusBadge.Icon != "📦" {
		t.Errorf("Expected default package icon, got %q", view.StatusBadge.Icon)
	}
	if view.CashNotice != "" {
		t.Errorf("Expected no cash notice, got %q", view.CashNotice)
	}
}

func TestComputeReceipt_DefaultsToCashOnDelivery(t *testing.T) {
	// The storefront omits paymentStatus for unpaid checkouts.
	view := ComputeReceipt(&OrderDetails{})

	if view.PaymentStatus != "Cash on Delivery" {
		t.Errorf("Expected default status Cash on Delivery, got %q", view.PaymentStatus)
	}
	if view.CashNotice == "" {
		t.Error("Expected cash notice for defaulted status")
	}
}

func TestComputeReceipt_SameAddressHeuristic(t *testing.T) {
	shipping := &Address{
		FullName:     "Jordan Smith",
		AddressLine1: "123 Main St",
		City:         "Springfield",
		Phone:        "555-0100",
		Email:        "jordan@example.com",
	}
	billing := &Address{
		FullName:     "Jordan Smith",
		AddressLine1: "123 Main St",
		City:         "Springfield",
		Phone:        "555-9999",
		Email:        "billing@example.com",
	}

	view := ComputeReceipt(&OrderDetails{
		ShippingAddress: shipping,
		BillingAddress:  billing,
	})

	if !view.HasBilling {
		t.Fatal("Expected billing block to be present")
	}
	if !view.BillingSameAsShipping {
		t.Error("Expected billing marked same as shipping despite differing phone/email")
	}
}

func TestComputeReceipt_DistinctBillingAddress(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{
		ShippingAddress: &Address{FullName: "Jordan Smith", AddressLine1: "123 Main St", City: "Springfield"},
		BillingAddress:  &Address{FullName: "Casey Smith", AddressLine1: "9 Elm Ave", City: "Shelbyville"},
	})

	if view.BillingSameAsShipping {
		t.Error("Expected distinct billing address")
	}
	if view.Billing.FullName != "Casey Smith" {
		t.Errorf("Expected billing name preserved, got %q", view.Billing.FullName)
	}
}

func TestComputeReceipt_BillingFallsBackToShipping(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{
		ShippingAddress: &Address{FullName: "Jordan Smith", AddressLine1: "123 Main St", City: "Springfield"},
	})

	if !view.HasBilling {
		t.Fatal("Expected billing block populated from shipping")
	}
	if !view.BillingSameAsShipping {
		t.Error("Expected billing marked same as shipping")
	}
}

func TestComputeReceipt_NoAddresses(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{OrderID: "ORD-7"})

	if view.HasBilling {
		t.Error("Expected no billing block without any address")
	}
	if view.Shipping != (AddressView{}) {
		t.Errorf("Expected empty shipping block, got %+v", view.Shipping)
	}
}

func TestComputeReceipt_Idempotent(t *testing.T) {
	details := OrderDetails{
		OrderID:        "ORD-42",
		PaymentStatus:  "Paid",
		DeliveryMethod: "usps2day",
		Subtotal:       amt("99.99"),
		Tax:            amt("8.25"),
		Items: []LineItem{
			{Name: "Gown", Quantity: 1, Price: amt("79.99"), SelectedSize: "L"},
			{Name: "Cap", Quantity: 2, Price: amt("10.00")},
		},
		ShippingAddress: &Address{FullName: "Jordan Smith", City: "Springfield"},
	}

	first := ComputeReceipt(&details)
	second := ComputeReceipt(&details)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical views for repeated calls on the same input")
	}
}

func TestComputeReceipt_LineItems(t *testing.T) {
	view := ComputeReceipt(&OrderDetails{
		Items: []LineItem{
			{Name: "Shirt", Quantity: 2, Price: amt("19.995"), SelectedSize: "M"},
			{Name: "Tassel", Quantity: 1, Price: amt("4.50")},
		},
	})

	if len(view.LineItems) != 2 {
		t.Fatalf("Expected 2 line items, got %d", len(view.LineItems))
	}
	if view.LineItems[0].LineTotal.StringFixed(2) != "39.99" {
		t.Errorf("Expected 39.99, got %s", view.LineItems[0].LineTotal.StringFixed(2))
	}
	if view.LineItems[0].SizeLabel != "M" {
		t.Errorf("Expected size label M, got %q", view.LineItems[0].SizeLabel)
	}
	if view.LineItems[1].SizeLabel != "" {
		t.Errorf("Expected empty size label, got %q", view.LineItems[1].SizeLabel)
	}
}

func TestAmountCoercion(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"number", `{"subtotal": 12.34}`, "12.34"},
		{"numeric string", `{"subtotal": "56.78"}`, "56.78"},
		{"null", `{"subtotal": null}`, "0.00"},
		{"garbage string", `{"subtotal": "twelve"}`, "0.00"},
		{"absent", `{}`, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var details OrderDetails
			if err := json.Unmarshal([]byte(tt.payload), &details); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if details.Subtotal.StringFixed(2) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, details.Subtotal.StringFixed(2))
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.RequireFromString("7.5")); got != "$7.50" {
		t.Errorf("Expected $7.50, got %s", got)
	}
	if got := FormatPrice(decimal.Zero); got != "$0.00" {
		t.Errorf("Expected $0.00, got %s", got)
	}
}
