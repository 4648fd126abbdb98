package mail

import (
	"bytes"
	"html/template"

	"github.com/commencementdepot/storefront-orders-service/internal/receipt"
)

// RenderReceipt renders a resolved receipt view into the order
// confirmation email body.
func RenderReceipt(view receipt.ReceiptView) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"price": receipt.FormatPrice,
}).Parse(receiptTemplateHTML))

// Table-based layout; email clients do not handle flexbox or floats.
const receiptTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Order Confirmation</title>
</head>
<body style="margin:0; padding:0; background-color:#f3f4f6; font-family:'Segoe UI', Arial, sans-serif;">
  <table border="0" cellpadding="0" cellspacing="0" width="100%" style="max-width:650px; margin:0 auto; background-color:#f3f4f6;">
    <tr>
      <td style="padding:20px;">
        <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#FF6B00; border-radius:8px 8px 0 0;">
          <tr>
            <td align="center" style="padding:30px 20px;">
              <h1 style="margin:0; font-size:28px; color:#ffffff; font-weight:600;">Order Confirmation</h1>
              <p style="margin:5px 0 0; font-size:16px; color:#ffffff;">Thank you for your purchase!</p>
            </td>
          </tr>
        </table>

        <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#ffffff; border-radius:0 0 8px 8px;">
          <tr>
            <td style="padding:25px;">
              <h2 style="margin-top:0; font-size:20px; color:#1f2937;">Order Details</h2>

              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#f9fafb; border-radius:6px; border:1px solid #e5e7eb; margin-bottom:20px;">
                <tr>
                  <td style="padding:20px;">
                    <table border="0" cellpadding="0" cellspacing="0" width="100%">
                      <tr>
                        <td width="50%" valign="top">
                          <p style="color:#4b5563; font-size:14px; margin:0;">Order ID</p>
                          <p style="font-family:monospace; font-size:16px; color:#111827; margin:4px 0;">{{if .OrderID}}{{.OrderID}}{{else}}N/A{{end}}</p>
                        </td>
                        <td width="50%" valign="top" align="right">
                          <p style="color:#4b5563; font-size:14px; margin:0;">Total Amount</p>
                          <p style="font-size:18px; font-weight:bold; color:#FF6B00; margin:4px 0;">{{price .Total}}</p>
                        </td>
                      </tr>
                    </table>

                    <table border="0" cellpadding="0" cellspacing="0" width="100%" style="border-top:1px solid #e5e7eb; margin-top:15px; padding-top:15px;">
                      <tr>
                        <td><p style="color:#4b5563; font-size:14px; margin:0;">Delivery Method</p></td>
                        <td align="right">
                          <span style="display:inline-block; background-color:#FFF0E0; color:#E65300; border:1px solid #FFB27D; padding:4px 12px; border-radius:9999px; font-size:14px; font-weight:500;">{{.Delivery.Icon}} {{.Delivery.Label}}</span>
                        </td>
                      </tr>
                      <tr>
                        <td colspan="2" style="padding-top:8px;">
                          <p style="margin:0; color:#FF6B00; font-size:14px;">{{.Delivery.ETA}}</p>
                        </td>
                      </tr>
                    </table>

                    <table border="0" cellpadding="0" cellspacing="0" width="100%" style="border-top:1px solid #e5e7eb; margin-top:15px; padding-top:15px;">
                      <tr>
                        <td><p style="color:#4b5563; font-size:14px; margin:0;">Payment Method:</p></td>
                        <td align="right">
                          <span style="display:inline-block; background-color:{{.StatusBadge.Background}}; color:{{.StatusBadge.Color}}; border:1px solid {{.StatusBadge.Border}}; padding:4px 12px; border-radius:9999px; font-size:14px; font-weight:500;">{{.StatusBadge.Icon}} {{.PaymentStatus}}</span>
                        </td>
                      </tr>
                    </table>
                    {{if .CashNotice}}
                    <table border="0" cellpadding="0" cellspacing="0" width="100%" style="margin-top:10px;">
                      <tr>
                        <td style="background-color:#FFF4E5; border:1px solid #FFB27D; border-radius:4px; padding:10px;">
                          <p style="margin:0; color:#E65300; font-size:14px;">💡 {{.CashNotice}}</p>
                        </td>
                      </tr>
                    </table>
                    {{end}}
                  </td>
                </tr>
              </table>

              {{if .LineItems}}
              <h3 style="font-size:18px; color:#1f2937; margin:20px 0 10px;">Items Ordered</h3>
              {{range .LineItems}}
              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="margin-bottom:15px; border:1px solid #e5e7eb; border-radius:6px;">
                <tr>
                  <td style="padding:15px;">
                    <table border="0" cellpadding="0" cellspacing="0" width="100%">
                      <tr>
                        <td width="70%">
                          <h4 style="margin:0 0 5px; font-size:16px; color:#111827;">{{.Name}}</h4>
                          <p style="margin:0; color:#6b7280; font-size:14px;">Quantity: {{.Quantity}}{{if .SizeLabel}} • Size: {{.SizeLabel}}{{end}}</p>
                        </td>
                        <td width="30%" align="right" style="text-align:right; font-size:16px; font-weight:bold; color:#111827;">{{price .LineTotal}}</td>
                      </tr>
                    </table>
                  </td>
                </tr>
              </table>
              {{end}}
              {{end}}

              <h3 style="font-size:18px; color:#1f2937; margin:20px 0 10px;">Shipping Address</h3>
              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#f9fafb; border-radius:6px; border:1px solid #e5e7eb;">
                <tr>
                  <td style="padding:15px;">
                    <p style="margin:0; font-size:16px; color:#111827; font-weight:bold;">{{.Shipping.FullName}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Shipping.AddressLine1}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Shipping.City}}, {{.Shipping.State}} {{.Shipping.Zip}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Shipping.Country}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">Phone: {{.Shipping.Phone}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">Email: {{.Shipping.Email}}</p>
                  </td>
                </tr>
              </table>

              {{if .HasBilling}}
              <h3 style="font-size:18px; color:#1f2937; margin:20px 0 10px;">Billing Address</h3>
              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#f9fafb; border-radius:6px; border:1px solid #e5e7eb;">
                <tr>
                  <td style="padding:15px;">
                    {{if .BillingSameAsShipping}}
                    <p style="margin:0; color:#4b5563; font-size:14px; font-style:italic;">Same as shipping address</p>
                    {{else}}
                    <p style="margin:0; font-size:16px; color:#111827; font-weight:bold;">{{.Billing.FullName}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Billing.AddressLine1}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Billing.City}}, {{.Billing.State}} {{.Billing.Zip}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">{{.Billing.Country}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">Phone: {{.Billing.Phone}}</p>
                    <p style="margin:5px 0; color:#4b5563; font-size:14px;">Email: {{.Billing.Email}}</p>
                    {{end}}
                  </td>
                </tr>
              </table>
              {{end}}

              <h3 style="font-size:18px; color:#1f2937; margin:20px 0 10px;">Order Summary</h3>
              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color:#f9fafb; border-radius:6px; border:1px solid #e5e7eb;">
                <tr>
                  <td style="padding:15px;">
                    <table border="0" cellpadding="0" cellspacing="0" width="100%">
                      <tr>
                        <td width="70%" style="padding:5px 0; color:#4b5563; font-size:14px;">Subtotal:</td>
                        <td width="30%" align="right" style="padding:5px 0; text-align:right; font-size:14px; color:#111827;">{{if .Subtotal.IsZero}}{{price .Total}}{{else}}{{price .Subtotal}}{{end}}</td>
                      </tr>
                      {{if not .Tax.IsZero}}
                      <tr>
                        <td width="70%" style="padding:5px 0; color:#4b5563; font-size:14px;">Tax:</td>
                        <td width="30%" align="right" style="padding:5px 0; text-align:right; font-size:14px; color:#111827;">{{price .Tax}}</td>
                      </tr>
                      {{end}}
                      <tr>
                        <td width="70%" style="padding:5px 0; color:#4b5563; font-size:14px;">Shipping Fee:</td>
                        <td width="30%" align="right" style="padding:5px 0; text-align:right; font-size:14px; color:#111827;">{{price .ShippingFee}}</td>
                      </tr>
                      {{if not .Donation.IsZero}}
                      <tr>
                        <td width="70%" style="padding:5px 0; color:#4b5563; font-size:14px;">Donation:</td>
                        <td width="30%" align="right" style="padding:5px 0; text-align:right; font-size:14px; color:#111827;">{{price .Donation}}</td>
                      </tr>
                      {{end}}
                      {{if not .Discount.IsZero}}
                      <tr>
                        <td width="70%" style="padding:5px 0; color:#4b5563; font-size:14px;">Discount:</td>
                        <td width="30%" align="right" style="padding:5px 0; text-align:right; font-size:14px; color:#FF6B00;">-{{price .Discount}}</td>
                      </tr>
                      {{end}}
                      <tr>
                        <td colspan="2" style="padding:0; height:1px; background-color:#e5e7eb;"></td>
                      </tr>
                      <tr>
                        <td width="70%" style="padding:10px 0 5px 0; color:#111827; font-size:16px; font-weight:bold;">Total:</td>
                        <td width="30%" align="right" style="padding:10px 0 5px 0; text-align:right; font-size:16px; font-weight:bold; color:#FF6B00;">{{price .Total}}</td>
                      </tr>
                    </table>
                  </td>
                </tr>
              </table>

              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="margin-top:30px; border-top:1px solid #e5e7eb; padding-top:20px;">
                <tr>
                  <td align="center">
                    <p style="margin:5px 0; font-size:14px; color:#6b7280;">Need help? Contact us at <a href="mailto:info@commencementdepot.com" style="color:#FF6B00; text-decoration:none;">info@commencementdepot.com</a></p>
                    <p style="margin:5px 0; font-size:14px; color:#6b7280;">{{.Delivery.ETA}}</p>
                    <p style="margin:15px 0 5px 0; font-size:14px; color:#6b7280;">© 2025 Commencement Depot. All rights reserved.</p>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`
