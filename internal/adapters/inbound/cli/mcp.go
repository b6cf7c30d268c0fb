package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/ordercraft/ordercraft/internal/adapters/inbound/mcp"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/notify"
	"github.com/ordercraft/ordercraft/internal/application"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the OrderCraft MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(flags))
	return cmd
}

func newMCPServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start OrderCraft MCP server (stdio)",
		Long:  "Start the OrderCraft MCP server using stdio transport. AI assistants can open wizard sessions, build a cart and submit orders.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			deps := e.deps
			deps.Notifier = notify.NewLog(e.logger)
			sessions := application.NewSessionManager(deps, e.logger, e.wizardOptions()...)
			defer sessions.Close()

			return server.ServeStdio(mcpadapter.NewOrderCraftMCPServer(sessions))
		},
	}
}
