package domain

import (
	"fmt"
	"strings"
)

// WizardStep names a step of the order composition wizard.
type WizardStep string

const (
	StepCustomerSelection WizardStep = "customer-selection"
	StepProductsAndReview WizardStep = "products-and-review"
)

// AdjustmentField names an order-level field editable on the review step.
type AdjustmentField string

const (
	FieldPaymentMethod AdjustmentField = "paymentMethod"
	FieldPaymentStatus AdjustmentField = "paymentStatus"
	FieldShippingCost  AdjustmentField = "shippingCost"
	FieldDiscount      AdjustmentField = "discount"
	FieldNotes         AdjustmentField = "notes"
)

// AdjustmentFields lists the editable fields in form order.
var AdjustmentFields = []AdjustmentField{
	FieldPaymentMethod, FieldPaymentStatus, FieldShippingCost, FieldDiscount, FieldNotes,
}

// ParseAdjustmentField accepts camelCase, snake_case and kebab-case spellings.
func ParseAdjustmentField(name string) (AdjustmentField, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	for _, f := range AdjustmentFields {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: paymentMethod, paymentStatus, shippingCost, discount, notes)", ErrUnknownField, name)
}

// WizardSnapshot is a read-only view of the wizard state for front ends.
type WizardSnapshot struct {
	Reference   string      `json:"reference"`
	Step        WizardStep  `json:"step"`
	Busy        bool        `json:"busy"`
	Customer    *Customer   `json:"customer,omitempty"`
	Lines       []CartLine  `json:"lines"`
	Adjustments Adjustments `json:"adjustments"`
	Totals      Totals      `json:"totals"`
	CanAdvance  bool        `json:"can_advance"`
	CanSubmit   bool        `json:"can_submit"`
}

// NoticeLevel grades a user-facing notification.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)
