package service

import (
	"strconv"

	"requisition/internal/model"

	"github.com/shopspring/decimal"
)

// autoApprovalLimit is the exclusive upper bound for automatic approval.
var autoApprovalLimit = decimal.NewFromInt(500)

const (
	// maxPriceScale is the most fractional digits a price may carry.
	maxPriceScale = 18
	// maxPriceIntegerDigits bounds the digits left of the decimal point.
	maxPriceIntegerDigits = 24
)

// ValidatePrice rejects negative prices and prices whose magnitude or
// precision would blow up formatting and storage, e.g. "1e200000000".
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	exp := int(price.Exponent())
	if exp < -maxPriceScale || exp > maxPriceIntegerDigits || price.NumDigits()+exp > maxPriceIntegerDigits {
		return ErrPriceOutOfRange
	}
	return nil
}

// SumLineItems adds up the item prices.
func SumLineItems(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// EvaluateApproval applies the threshold rule: totals below 500 are approved
// on the spot, everything else waits for a manual decision.
func EvaluateApproval(total decimal.Decimal, staffID string, requisitionID int64) (status string, reference string) {
	if total.LessThan(autoApprovalLimit) {
		return model.StatusApproved, ApprovalReference(staffID, requisitionID)
	}
	return model.StatusPending, ""
}

// ApprovalReference is the staff id followed by the last three characters of
// the requisition id.
func ApprovalReference(staffID string, requisitionID int64) string {
	id := strconv.FormatInt(requisitionID, 10)
	if len(id) > 3 {
		id = id[len(id)-3:]
	}
	return staffID + id
}
