package controllers

import (
	"strings"

	"github.com/ayush-roy-21/RoyElegance/models"
)

// Pricing rules shared by the cart view and checkout.
const (
	freeShippingAbove = 999
	flatShippingFee   = 99

	welcomeCoupon = "welcome10"
	welcomeValue  = 0.10
)

// shippingFor: free above the threshold, flat fee otherwise. The boundary is
// strict: a subtotal of exactly 999 still pays shipping.
func shippingFor(subtotal float64) float64 {
	if subtotal > freeShippingAbove {
		return 0
	}
	return flatShippingFee
}

// discountFor applies the single hardcoded coupon, case-insensitively.
// Anything else is worth nothing.
func discountFor(couponCode string, subtotal float64) float64 {
	if strings.EqualFold(strings.TrimSpace(couponCode), welcomeCoupon) {
		return subtotal * welcomeValue
	}
	return 0
}

// statusFor maps the payment method to the initial order status. There is no
// payment capture: online orders simply start as processing.
func statusFor(paymentMethod string) string {
	if paymentMethod == models.PaymentCOD {
		return models.OrderStatusPending
	}
	return models.OrderStatusProcessing
}
