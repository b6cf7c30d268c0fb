package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// RenderReview shows the draft as the review step presents it: customer,
// cart lines, adjustments and the running totals.
func RenderReview(snap domain.WizardSnapshot, currency string) string {
	var b strings.Builder

	step := "Step 1 of 2 · Customer"
	if snap.Step == domain.StepProductsAndReview {
		step = "Step 2 of 2 · Products & review"
	}
	b.WriteString("\n  " + headerStyle.Render("New order") + "  " + dimStyle.Render(step) + "\n")
	b.WriteString("  " + separatorLine + "\n")

	// ── Customer ──
	if snap.Customer != nil {
		fmt.Fprintf(&b, "  %s %s  %s\n", titleStyle.Render("Customer"), snap.Customer.Name, dimStyle.Render(contactLine(*snap.Customer)))
	} else {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("Customer"), warnStyle.Render("none selected"))
	}
	b.WriteString("\n")

	// ── Lines ──
	if len(snap.Lines) == 0 {
		b.WriteString("  " + dimStyle.Render("Cart is empty.") + "\n")
	}
	for _, l := range snap.Lines {
		fmt.Fprintf(&b, "  %s %s %s x %s  %s\n",
			faintStyle.Render(padRight(l.ProductID, 10)),
			padRight(l.Name, 24),
			dimStyle.Render(fmt.Sprintf("%3d", l.Quantity)),
			dimStyle.Render(domain.FormatAmount(l.UnitPrice, currency)),
			domain.FormatAmount(l.LineTotal(), currency),
		)
	}
	b.WriteString("\n")

	// ── Adjustments ──
	adj := snap.Adjustments
	values := map[domain.AdjustmentField]string{
		domain.FieldPaymentMethod: adj.PaymentMethod,
		domain.FieldPaymentStatus: adj.PaymentStatus,
		domain.FieldShippingCost:  domain.FormatAmount(adj.ShippingCost, currency),
		domain.FieldDiscount:      domain.FormatAmount(adj.Discount, currency),
		domain.FieldNotes:         adj.Notes,
	}
	for _, f := range domain.AdjustmentFields {
		v := values[f]
		if v == "" {
			v = faintStyle.Render("-")
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(FieldLabel(f), 16)), v)
	}
	b.WriteString("\n  " + separatorLine + "\n")

	// ── Totals ──
	t := snap.Totals
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(fmt.Sprintf("Subtotal (%d items)", t.ItemCount), 24)), domain.FormatAmount(t.Subtotal, currency))
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("Shipping", 24)), domain.FormatAmount(t.ShippingCost, currency))
	fmt.Fprintf(&b, "  %s -%s\n", dimStyle.Render(padRight("Discount", 24)), domain.FormatAmount(t.Discount, currency))

	totalStyle := amountStyle
	if t.Negative {
		totalStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)
	}
	fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(padRight("Total", 24)), totalStyle.Render(domain.FormatAmount(t.Total, currency)))
	if t.Negative {
		b.WriteString("  " + failStyle.Render("Discount exceeds subtotal plus shipping.") + "\n")
	}

	if snap.Busy {
		b.WriteString("\n  " + warnStyle.Render("Submitting…") + "\n")
	}
	return b.String()
}

// RenderConfirmation boxes the result of a successful submission.
func RenderConfirmation(conf domain.OrderConfirmation, currency string) string {
	number := conf.OrderNumber
	if number == "" {
		number = conf.ID
	}
	title := headerStyle.Render("Order created")
	body := titleStyle.Render(number) + "\n" + amountStyle.Render(domain.FormatAmount(conf.Total, currency))
	if conf.Status != "" {
		body += "\n" + dimStyle.Render(conf.Status)
	}
	return boxStyle.Render(title+"\n\n"+body) + "\n"
}
