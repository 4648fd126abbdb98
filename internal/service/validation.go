package service

import (
	"regexp"

	"github.com/commencementdepot/storefront-orders-service/internal/apperrors"
)

// Deliberately loose: one non-whitespace run, an @, a dot somewhere in
// the domain. Real deliverability is the SMTP transport's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether an address looks like an email.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateConfirmOrderRequest checks an order confirmation request.
// Order details themselves are never rejected; the receipt formatter
// tolerates any shape.
func ValidateConfirmOrderRequest(req *ConfirmOrderRequest) error {
	if !ValidateEmail(req.CustomerEmail) {
		return apperrors.NewValidationError("customerEmail", "invalid email address")
	}
	return nil
}
