package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/budget-doctor/cmd/mcp/response"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterSubscriptionTools registers the subscription listing tool with the MCP server
func RegisterSubscriptionTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List all Azure subscriptions the current credential has access to"),
		),
		makeListSubscriptionsHandler(),
	)
}

func makeListSubscriptionsHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure credential: %v", err)), nil
		}

		client, err := armsubscriptions.NewClient(credential, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create subscriptions client: %v", err)), nil
		}

		var subscriptions []response.AzureSubscription
		pager := client.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
			}

			for _, sub := range page.Value {
				if sub.SubscriptionID == nil {
					continue
				}

				displayName := *sub.SubscriptionID
				if sub.DisplayName != nil {
					displayName = *sub.DisplayName
				}

				state := "Unknown"
				if sub.State != nil {
					state = string(*sub.State)
				}

				// Only include enabled subscriptions
				if state == "Enabled" {
					subscriptions = append(subscriptions, response.AzureSubscription{
						SubscriptionID: *sub.SubscriptionID,
						DisplayName:    displayName,
						State:          state,
					})
				}
			}
		}

		data, _ := json.MarshalIndent(subscriptions, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
