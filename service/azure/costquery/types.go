package azurecostquery

import (
	"context"
	"time"

	"github.com/elC0mpa/budget-doctor/model"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

type service struct {
	rest       azurerest.RestService
	apiVersion string

	// injectable so month windows are deterministic in tests
	now func() time.Time
}

type CostQueryService interface {
	MonthlyCosts(ctx context.Context, scopePath string, months int) (model.MonthlySeries, []error)
	CurrentMonthForecast(ctx context.Context, scopePath string) (*float64, error)
}

// query wire shapes, matching the Cost Management query API

type queryRequest struct {
	Type            string       `json:"type"`
	Timeframe       string       `json:"timeframe"`
	TimePeriod      *queryPeriod `json:"timePeriod,omitempty"`
	Dataset         queryDataset `json:"dataSet"`
	IncludeForecast bool         `json:"includeForecast,omitempty"`
}

type queryPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type queryDataset struct {
	Granularity string                      `json:"granularity"`
	Aggregation map[string]queryAggregation `json:"aggregation"`
}

type queryAggregation struct {
	Name     string `json:"name"`
	Function string `json:"function"`
}

type queryResponse struct {
	Properties struct {
		Columns []queryColumn   `json:"columns"`
		Rows    [][]interface{} `json:"rows"`
	} `json:"properties"`
}

type queryColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
