package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ordercraft/ordercraft/internal/application"
	"github.com/ordercraft/ordercraft/internal/domain"
)

// sessionView is what most tools return: the session id plus a snapshot.
type sessionView struct {
	SessionID string                `json:"session_id"`
	Snapshot  domain.WizardSnapshot `json:"snapshot"`
}

// registerTools registers all OrderCraft MCP tools on the given server.
func registerTools(s *server.MCPServer, sessions *application.SessionManager) {
	sessionArg := mcplib.WithString("session_id",
		mcplib.Required(),
		mcplib.Description("Session id returned by ordercraft_open"),
	)

	// 1. ordercraft_open
	s.AddTool(
		mcplib.NewTool("ordercraft_open",
			mcplib.WithDescription("Start a new order wizard session. Loads customers and active products once."),
		),
		handleOpen(sessions),
	)

	// 2. ordercraft_state
	s.AddTool(
		mcplib.NewTool("ordercraft_state",
			mcplib.WithDescription("Returns the current step, selected customer, cart lines, adjustments and totals"),
			sessionArg,
		),
		handleState(sessions),
	)

	// 3. ordercraft_search_customers
	s.AddTool(
		mcplib.NewTool("ordercraft_search_customers",
			mcplib.WithDescription("Case-insensitive search over customer name, email and phone"),
			sessionArg,
			mcplib.WithString("query", mcplib.Description("Search text; empty lists every loaded customer")),
		),
		handleSearchCustomers(sessions),
	)

	// 4. ordercraft_select_customer
	s.AddTool(
		mcplib.NewTool("ordercraft_select_customer",
			mcplib.WithDescription("Select the customer the order is for"),
			sessionArg,
			mcplib.WithString("customer_id", mcplib.Required(), mcplib.Description("Id of a loaded customer")),
		),
		handleSelectCustomer(sessions),
	)

	// 5. ordercraft_next
	s.AddTool(
		mcplib.NewTool("ordercraft_next",
			mcplib.WithDescription("Advance to products and review. Requires a selected customer."),
			sessionArg,
		),
		handleNext(sessions),
	)

	// 6. ordercraft_back
	s.AddTool(
		mcplib.NewTool("ordercraft_back",
			mcplib.WithDescription("Return to customer selection, keeping the cart"),
			sessionArg,
		),
		handleBack(sessions),
	)

	// 7. ordercraft_search_products
	s.AddTool(
		mcplib.NewTool("ordercraft_search_products",
			mcplib.WithDescription("Case-insensitive search over product name and SKU"),
			sessionArg,
			mcplib.WithString("query", mcplib.Description("Search text; empty lists every loaded product")),
		),
		handleSearchProducts(sessions),
	)

	// 8. ordercraft_add_product
	s.AddTool(
		mcplib.NewTool("ordercraft_add_product",
			mcplib.WithDescription("Add a product to the cart, merging with an existing line"),
			sessionArg,
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Id of a loaded product")),
			mcplib.WithNumber("quantity", mcplib.Description("Units to add (default 1)")),
		),
		handleAddProduct(sessions),
	)

	// 9. ordercraft_set_quantity
	s.AddTool(
		mcplib.NewTool("ordercraft_set_quantity",
			mcplib.WithDescription("Set a line's quantity. Zero or less removes the line."),
			sessionArg,
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Id of the cart line")),
			mcplib.WithNumber("quantity", mcplib.Required(), mcplib.Description("New quantity")),
		),
		handleSetQuantity(sessions),
	)

	// 10. ordercraft_remove_product
	s.AddTool(
		mcplib.NewTool("ordercraft_remove_product",
			mcplib.WithDescription("Remove a line from the cart"),
			sessionArg,
			mcplib.WithString("product_id", mcplib.Required(), mcplib.Description("Id of the cart line")),
		),
		handleRemoveProduct(sessions),
	)

	// 11. ordercraft_set_adjustment
	s.AddTool(
		mcplib.NewTool("ordercraft_set_adjustment",
			mcplib.WithDescription("Set an order-level field. Amounts that are blank, malformed or negative become 0."),
			sessionArg,
			mcplib.WithString("field",
				mcplib.Required(),
				mcplib.Enum("paymentMethod", "paymentStatus", "shippingCost", "discount", "notes"),
				mcplib.Description("Field to set"),
			),
			mcplib.WithString("value", mcplib.Description("New value")),
		),
		handleSetAdjustment(sessions),
	)

	// 12. ordercraft_submit
	s.AddTool(
		mcplib.NewTool("ordercraft_submit",
			mcplib.WithDescription("Submit the order. On success the session closes and the confirmation is returned."),
			sessionArg,
		),
		handleSubmit(sessions),
	)

	// 13. ordercraft_cancel
	s.AddTool(
		mcplib.NewTool("ordercraft_cancel",
			mcplib.WithDescription("Discard the session and its draft"),
			sessionArg,
		),
		handleCancel(sessions),
	)
}

// wizardOp is a handler body that runs against one session's wizard.
type wizardOp func(ctx context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error)

// withWizard resolves session_id before running op.
func withWizard(sessions *application.SessionManager, op wizardOp) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return errorResult("session_id is required"), nil
		}
		w, err := sessions.Get(id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return op(ctx, request, w)
	}
}

// snapshotResult answers with the session's current state, or err if set.
func snapshotResult(id string, w *application.Wizard, err error) (*mcplib.CallToolResult, error) {
	if err != nil {
		return errorResult(err.Error()), nil
	}
	snap, err := w.Snapshot()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(sessionView{SessionID: id, Snapshot: snap})
}

func handleOpen(sessions *application.SessionManager) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, w := sessions.Open(ctx)
		snap, err := w.Snapshot()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(struct {
			sessionView
			Customers int `json:"customers_loaded"`
			Products  int `json:"products_loaded"`
		}{sessionView{id, snap}, len(w.Customers()), len(w.Products())})
	}
}

func handleState(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		return snapshotResult(request.GetString("session_id", ""), w, nil)
	})
}

func handleSearchCustomers(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		customers, err := w.SearchCustomers(request.GetString("query", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if customers == nil {
			customers = []domain.Customer{}
		}
		return jsonResult(customers)
	})
}

func handleSelectCustomer(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		customerID, err := request.RequireString("customer_id")
		if err != nil {
			return errorResult("customer_id is required"), nil
		}
		return snapshotResult(request.GetString("session_id", ""), w, w.SelectCustomer(customerID))
	})
}

func handleNext(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		moved, err := w.Next()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !moved {
			return errorResult("select a customer before continuing"), nil
		}
		return snapshotResult(request.GetString("session_id", ""), w, nil)
	})
}

func handleBack(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		return snapshotResult(request.GetString("session_id", ""), w, w.Back())
	})
}

func handleSearchProducts(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		products, err := w.SearchProducts(request.GetString("query", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if products == nil {
			products = []domain.Product{}
		}
		return jsonResult(products)
	})
}

func handleAddProduct(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		productID, err := request.RequireString("product_id")
		if err != nil {
			return errorResult("product_id is required"), nil
		}
		quantity := request.GetInt("quantity", 1)
		return snapshotResult(request.GetString("session_id", ""), w, w.AddProductQuantity(productID, quantity))
	})
}

func handleSetQuantity(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		productID, err := request.RequireString("product_id")
		if err != nil {
			return errorResult("product_id is required"), nil
		}
		quantity, err := request.RequireInt("quantity")
		if err != nil {
			return errorResult("quantity is required"), nil
		}
		return snapshotResult(request.GetString("session_id", ""), w, w.SetQuantity(productID, quantity))
	})
}

func handleRemoveProduct(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		productID, err := request.RequireString("product_id")
		if err != nil {
			return errorResult("product_id is required"), nil
		}
		return snapshotResult(request.GetString("session_id", ""), w, w.RemoveProduct(productID))
	})
}

func handleSetAdjustment(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(_ context.Context, request mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		field, err := request.RequireString("field")
		if err != nil {
			return errorResult("field is required"), nil
		}
		value := request.GetString("value", "")
		return snapshotResult(request.GetString("session_id", ""), w, w.SetAdjustment(field, value))
	})
}

func handleSubmit(sessions *application.SessionManager) server.ToolHandlerFunc {
	return withWizard(sessions, func(ctx context.Context, _ mcplib.CallToolRequest, w *application.Wizard) (*mcplib.CallToolResult, error) {
		conf, err := w.Submit(context.WithoutCancel(ctx))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(conf)
	})
}

func handleCancel(sessions *application.SessionManager) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return errorResult("session_id is required"), nil
		}
		if err := sessions.Cancel(id); err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(fmt.Sprintf("session %s cancelled", id)), nil
	}
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
