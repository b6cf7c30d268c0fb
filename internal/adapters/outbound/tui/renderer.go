package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	noticeColors = map[domain.NoticeLevel]lipgloss.Color{
		domain.NoticeInfo:    info,
		domain.NoticeSuccess: success,
		domain.NoticeWarning: warning,
		domain.NoticeError:   danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	amountStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderCustomers lists customers, marking the selected one.
func RenderCustomers(customers []domain.Customer, selectedID string) string {
	if len(customers) == 0 {
		return "  " + dimStyle.Render("No customers found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Customers") + "  " + dimStyle.Render(fmt.Sprintf("%d", len(customers))) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, c := range customers {
		marker := faintStyle.Render("○")
		if c.ID == selectedID {
			marker = passStyle.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s %s  %s\n",
			marker,
			faintStyle.Render(padRight(c.ID, 10)),
			padRight(c.Name, 24),
			dimStyle.Render(contactLine(c)),
		)
	}
	return b.String()
}

// RenderProducts lists products with price and stock.
func RenderProducts(products []domain.Product, currency string) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("No products found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Products") + "  " + dimStyle.Render(fmt.Sprintf("%d", len(products))) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, p := range products {
		fmt.Fprintf(&b, "  %s %s %s  %s  %s\n",
			faintStyle.Render(padRight(p.ID, 10)),
			padRight(p.Name, 24),
			dimStyle.Render(padRight(p.SKU, 12)),
			amountStyle.Render(domain.FormatAmount(p.Price, currency)),
			stockLabel(p.Stock),
		)
	}
	return b.String()
}

// RenderNotice formats one notification line.
func RenderNotice(level domain.NoticeLevel, message string) string {
	color, ok := noticeColors[level]
	if !ok {
		color = fg
	}
	tag := lipgloss.NewStyle().Foreground(color).Bold(true).Render(padRight(string(level), 7))
	return fmt.Sprintf("  %s %s\n", tag, message)
}

// RenderJournal lists previously submitted orders, newest last.
func RenderJournal(entries []domain.JournalEntry, currency string) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No orders recorded yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Order Journal") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		number := e.OrderNumber
		if number == "" {
			number = e.OrderID
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
			dimStyle.Render(date),
			faintStyle.Render(padRight(number, 12)),
			padRight(e.CustomerName, 24),
			dimStyle.Render(fmt.Sprintf("%d lines", e.Lines)),
			amountStyle.Render(domain.FormatAmount(e.Total, currency)),
		)
	}
	return b.String()
}

// FieldLabel turns an adjustment field name into words: shippingCost → "Shipping cost".
func FieldLabel(f domain.AdjustmentField) string {
	words := camelcase.Split(string(f))
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	label := strings.Join(words, " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func contactLine(c domain.Customer) string {
	parts := make([]string, 0, 2)
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	return strings.Join(parts, " · ")
}

func stockLabel(stock *int) string {
	if stock == nil {
		return faintStyle.Render("stock n/a")
	}
	switch {
	case *stock <= 0:
		return failStyle.Render("out of stock")
	case *stock < 5:
		return warnStyle.Render(fmt.Sprintf("%d left", *stock))
	default:
		return dimStyle.Render(fmt.Sprintf("%d in stock", *stock))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
