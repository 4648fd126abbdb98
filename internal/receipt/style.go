package receipt

// StatusStyle is the badge styling for a payment status.
type StatusStyle struct {
	Background string
	Color      string
	Border     string
	Icon       string
}

// DeliveryInfo describes a delivery method for display.
type DeliveryInfo struct {
	Label string
	Icon  string
	ETA   string
}

// Matching against these tables is case-sensitive by contract. The
// storefront sends both "Cash on Delivery" and "CASH ON DELIVERY",
// so both casings are listed; callers wanting case-insensitive
// behavior must normalize before calling.
var statusStyles = map[string]StatusStyle{
	"Paid":             {Background: "#FFEBDA", Color: "#E65300", Border: "#FF8A3D", Icon: "✓"},
	"CARD PAYMENT":     {Background: "#FFEBDA", Color: "#E65300", Border: "#FF8A3D", Icon: "💳"},
	"Cash on Delivery": {Background: "#FFF4E5", Color: "#CC4A00", Border: "#FFB27D", Icon: "💵"},
	"CASH ON DELIVERY": {Background: "#FFF4E5", Color: "#CC4A00", Border: "#FFB27D", Icon: "💵"},
	"IN-STORE CASH":    {Background: "#FFF9EC", Color: "#B54300", Border: "#FFD2AD", Icon: "💵"},
	"IN-STORE CARD":    {Background: "#FFF0E0", Color: "#D94C00", Border: "#FFC299", Icon: "💳"},
	"Failed":           {Background: "#FEE2E2", Color: "#DC2626", Border: "#FCA5A5", Icon: "✕"},
}

var defaultStatusStyle = StatusStyle{
	Background: "#FFF0E0",
	Color:      "#D94C00",
	Border:     "#FFC299",
	Icon:       "📦",
}

var deliveryMethods = map[string]DeliveryInfo{
	"store":       {Label: "In-Store Pickup", Icon: "🏪", ETA: "Ready for pickup within 24 hours"},
	"uspsground":  {Label: "USPS Ground", Icon: "📦", ETA: "Estimated delivery: 4-7 business days"},
	"usps2day":    {Label: "USPS 2-Day Air", Icon: "✈️", ETA: "2-3 business days"},
	"uspsnextday": {Label: "USPS Next-Day Air", Icon: "✈️", ETA: "1-2 business days"},
}

var defaultDelivery = DeliveryInfo{
	Label: "Home Delivery",
	Icon:  "🚚",
	ETA:   "Estimated delivery: 3-5 business days",
}

// StyleForStatus returns the badge style for a payment status. Unknown
// statuses get the neutral package style; the function is total.
func StyleForStatus(status string) StatusStyle {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return defaultStatusStyle
}

// DescribeDelivery returns the display description for a delivery
// method code. Unknown or empty codes describe home delivery.
func DescribeDelivery(method string) DeliveryInfo {
	if d, ok := deliveryMethods[method]; ok {
		return d
	}
	return defaultDelivery
}
