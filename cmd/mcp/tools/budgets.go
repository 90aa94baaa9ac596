package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elC0mpa/budget-doctor/cmd/mcp/response"
	"github.com/elC0mpa/budget-doctor/model"
	"github.com/elC0mpa/budget-doctor/service/assessment"
	azurebudgets "github.com/elC0mpa/budget-doctor/service/azure/budgets"
	azureconfig "github.com/elC0mpa/budget-doctor/service/azure/config"
	azurecostquery "github.com/elC0mpa/budget-doctor/service/azure/costquery"
	azurehierarchy "github.com/elC0mpa/budget-doctor/service/azure/hierarchy"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
	"github.com/elC0mpa/budget-doctor/service/orchestrator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterBudgetTools registers the budget assessment tools with the MCP server
func RegisterBudgetTools(s *server.MCPServer, rootGroup string, months int, scopes string, configPath string) {
	s.AddTool(
		mcp.NewTool("budget_list_root",
			mcp.WithDescription("List the Consumption budgets configured on the root management group. Requires AZURE_ROOT_MANAGEMENT_GROUP environment variable."),
		),
		makeBudgetListHandler(rootGroup, configPath),
	)

	s.AddTool(
		mcp.NewTool("budget_suggest",
			mcp.WithDescription("Compute a suggested budget amount from recent monthly spend: max of the latest month and the rolling average, plus headroom, rounded up."),
			mcp.WithNumber("last_month_cost",
				mcp.Required(),
				mcp.Description("Total spend of the most recent complete month"),
			),
			mcp.WithNumber("prev_month_cost",
				mcp.Description("Total spend of the month before that"),
			),
			mcp.WithNumber("prev2_month_cost",
				mcp.Description("Total spend two months before the most recent one"),
			),
		),
		makeBudgetSuggestHandler(),
	)

	s.AddTool(
		mcp.NewTool("budget_assessment_run",
			mcp.WithDescription("Run a full budget assessment over the management group hierarchy: budgets, last months' costs, current month forecast and suggested budget amounts per scope. Requires AZURE_ROOT_MANAGEMENT_GROUP environment variable. Can take several minutes on large tenants."),
		),
		makeAssessmentRunHandler(rootGroup, months, scopes, configPath),
	)
}

func makeBudgetListHandler(rootGroup, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if rootGroup == "" {
			return mcp.NewToolResultError("AZURE_ROOT_MANAGEMENT_GROUP environment variable is required"), nil
		}

		cfgSvc, err := azureconfig.NewService(configPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure config: %v", err)), nil
		}
		tuning := cfgSvc.GetTuning()

		restService := azurerest.NewService(cfgSvc.GetCredential(), &azurerest.Options{
			MaxRetries: tuning.MaxRetries,
		})
		budgetService := azurebudgets.NewService(restService, tuning.APIVersions.Budgets)

		budgets, err := budgetService.ListAtScope(ctx, model.ManagementGroupScope(rootGroup).Path())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list budgets: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertBudgets(budgets), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeBudgetSuggestHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lastMonth, err := request.RequireFloat("last_month_cost")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var priorMonths []float64
		for _, key := range []string{"prev_month_cost", "prev2_month_cost"} {
			if value := request.GetFloat(key, -1); value >= 0 {
				priorMonths = append(priorMonths, value)
			}
		}

		tuning := azureconfig.DefaultTuning()
		assessService := assessment.NewService(assessment.Config{
			HeadroomPct: tuning.HeadroomPct,
			RoundTo:     tuning.RoundTo,
		})

		resp := response.BudgetSuggestion{
			LastMonthCost:   lastMonth,
			PriorMonths:     priorMonths,
			SuggestedBudget: assessService.SuggestedBudget(lastMonth, priorMonths),
		}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAssessmentRunHandler(rootGroup string, months int, scopes string, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if rootGroup == "" {
			return mcp.NewToolResultError("AZURE_ROOT_MANAGEMENT_GROUP environment variable is required"), nil
		}

		flags := model.Flags{
			RootManagementGroup: rootGroup,
			Months:              months,
		}
		for _, tier := range strings.Split(strings.ToLower(scopes), ",") {
			switch strings.TrimSpace(tier) {
			case "mg":
				flags.IncludeManagementGroups = true
			case "sub":
				flags.IncludeSubscriptions = true
			case "rg":
				flags.IncludeResourceGroups = true
			}
		}

		cfgSvc, err := azureconfig.NewService(configPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure config: %v", err)), nil
		}
		tuning := cfgSvc.GetTuning()

		restService := azurerest.NewService(cfgSvc.GetCredential(), &azurerest.Options{
			MaxRetries: tuning.MaxRetries,
		})
		orchestratorService := orchestrator.NewService(
			azurehierarchy.NewService(restService, tuning.APIVersions.ManagementGroups, tuning.APIVersions.ResourceGroups),
			azurebudgets.NewService(restService, tuning.APIVersions.Budgets),
			azurecostquery.NewService(restService, tuning.APIVersions.CostQuery),
			assessment.NewService(assessment.Config{
				HeadroomPct: tuning.HeadroomPct,
				RoundTo:     tuning.RoundTo,
			}),
		)

		result, err := orchestratorService.Run(ctx, flags)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run assessment: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertRunResult(rootGroup, result), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
