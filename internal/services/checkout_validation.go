package services

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"devicestore/internal/models"
)

// amountTolerance is the permitted drift between the submitted amount and
// the cart-computed subtotal.
const amountTolerance = 0.01

// PaymentForm is the payment input submitted at checkout. Card fields are
// only required for the credit card method.
type PaymentForm struct {
	Method      string  `json:"method" validate:"required,oneof=credit_card cash_on_delivery"`
	CardNumber  string  `json:"card_number,omitempty"`
	ExpiryMonth int     `json:"expiry_month,omitempty"`
	ExpiryYear  int     `json:"expiry_year,omitempty"`
	CVV         string  `json:"cvv,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{13,19}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// validatePaymentForm checks the payment fields against the cart subtotal
// and returns every problem at once, so the form can be redisplayed with
// an itemized error list.
func validatePaymentForm(form PaymentForm, subtotal float64, now time.Time) *models.ValidationError {
	var reasons []string

	if math.Abs(form.Amount-subtotal) > amountTolerance {
		reasons = append(reasons, fmt.Sprintf("amount %.2f does not match cart subtotal %.2f", form.Amount, subtotal))
	}

	if form.Method == models.PaymentCreditCard {
		switch {
		case !cardNumberPattern.MatchString(form.CardNumber):
			reasons = append(reasons, "card number must be 13-19 digits")
		case !luhnValid(form.CardNumber):
			reasons = append(reasons, "card number failed checksum")
		}

		if form.ExpiryMonth < 1 || form.ExpiryMonth > 12 {
			reasons = append(reasons, "expiry month must be between 1 and 12")
		} else if cardExpired(form.ExpiryMonth, form.ExpiryYear, now) {
			reasons = append(reasons, "card is expired")
		}

		if !cvvPattern.MatchString(form.CVV) {
			reasons = append(reasons, "CVV must be 3 or 4 digits")
		}
	}

	if len(reasons) > 0 {
		return &models.ValidationError{Reasons: reasons}
	}
	return nil
}

// luhnValid reports whether the digit string passes the Luhn checksum.
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// cardExpired reports whether a card expiring at the end of month/year is
// already past. Two-digit years are taken as 20xx.
func cardExpired(month, year int, now time.Time) bool {
	if year < 100 {
		year += 2000
	}
	// Valid through the last instant of the expiry month.
	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return !now.Before(endOfMonth)
}

// cardLast4 returns the last four digits of a card number, or empty when
// the number is shorter than four characters.
func cardLast4(number string) string {
	if len(number) < 4 {
		return ""
	}
	return number[len(number)-4:]
}
