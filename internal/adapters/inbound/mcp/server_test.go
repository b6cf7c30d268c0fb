package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/ordercraft/ordercraft/internal/adapters/inbound/mcp"
	"github.com/ordercraft/ordercraft/internal/application"
)

func TestNewOrderCraftMCPServer(t *testing.T) {
	s := mcpadapter.NewOrderCraftMCPServer(application.NewSessionManager(application.WizardDeps{}, nil))
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewOrderCraftMCPServer(application.NewSessionManager(application.WizardDeps{}, nil))
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"ordercraft_open",
		"ordercraft_state",
		"ordercraft_search_customers",
		"ordercraft_select_customer",
		"ordercraft_next",
		"ordercraft_back",
		"ordercraft_search_products",
		"ordercraft_add_product",
		"ordercraft_set_quantity",
		"ordercraft_remove_product",
		"ordercraft_set_adjustment",
		"ordercraft_submit",
		"ordercraft_cancel",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
