package main

import (
	"github.com/elC0mpa/budget-doctor/service/assessment"
	azurebudgets "github.com/elC0mpa/budget-doctor/service/azure/budgets"
	azureconfig "github.com/elC0mpa/budget-doctor/service/azure/config"
	azurecostquery "github.com/elC0mpa/budget-doctor/service/azure/costquery"
	azurehierarchy "github.com/elC0mpa/budget-doctor/service/azure/hierarchy"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
	"github.com/elC0mpa/budget-doctor/service/flag"
	"github.com/elC0mpa/budget-doctor/service/orchestrator"
	"github.com/elC0mpa/budget-doctor/utils"
)

func main() {
	utils.DrawBanner()

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		panic(err)
	}

	utils.StartSpinner()

	cfgService, err := azureconfig.NewService(flags.ConfigPath)
	if err != nil {
		panic(err)
	}
	tuning := cfgService.GetTuning()

	restService := azurerest.NewService(cfgService.GetCredential(), &azurerest.Options{
		MaxRetries: tuning.MaxRetries,
	})

	hierarchyService := azurehierarchy.NewService(restService, tuning.APIVersions.ManagementGroups, tuning.APIVersions.ResourceGroups)
	budgetService := azurebudgets.NewService(restService, tuning.APIVersions.Budgets)
	costService := azurecostquery.NewService(restService, tuning.APIVersions.CostQuery)
	assessService := assessment.NewService(assessment.Config{
		HeadroomPct: tuning.HeadroomPct,
		RoundTo:     tuning.RoundTo,
	})

	orchestratorService := orchestrator.NewService(hierarchyService, budgetService, costService, assessService)

	err = orchestratorService.Orchestrate(flags)
	if err != nil {
		panic(err)
	}
}
