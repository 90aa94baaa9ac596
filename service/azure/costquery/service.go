package azurecostquery

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elC0mpa/budget-doctor/model"
	azurerest "github.com/elC0mpa/budget-doctor/service/azure/rest"
)

func NewService(rest azurerest.RestService, apiVersion string) *service {
	return &service{
		rest:       rest,
		apiVersion: apiVersion,
		now:        time.Now,
	}
}

// MonthWindows returns the n fully elapsed calendar months strictly before
// the month of now, most recent first
func MonthWindows(now time.Time, n int) []model.MonthWindow {
	windows := make([]model.MonthWindow, 0, n)
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	for i := 0; i < n; i++ {
		windows = append(windows, model.MonthWindow{
			Start: cursor,
			End:   cursor.AddDate(0, 1, -1),
		})
		cursor = cursor.AddDate(0, -1, 0)
	}
	return windows
}

// MonthlyCosts issues one aggregated cost query per historical month. A
// failed month becomes a nil entry and does not stop the remaining months;
// the collected errors come back alongside the series for warning output.
func (s *service) MonthlyCosts(ctx context.Context, scopePath string, months int) (model.MonthlySeries, []error) {
	series := make(model.MonthlySeries, 0, months)
	var errs []error

	for _, window := range MonthWindows(s.now(), months) {
		total, err := s.queryWindowTotal(ctx, scopePath, window)
		if err != nil {
			errs = append(errs, fmt.Errorf("month %s: %w", window.Start.Format("2006-01"), err))
			series = append(series, nil)
			continue
		}
		series = append(series, &total)
	}
	return series, errs
}

func (s *service) queryWindowTotal(ctx context.Context, scopePath string, window model.MonthWindow) (float64, error) {
	body := queryRequest{
		Type:      "Usage",
		Timeframe: "Custom",
		TimePeriod: &queryPeriod{
			From: window.Start.Format("2006-01-02") + "T00:00:00Z",
			To:   window.End.AddDate(0, 0, 1).Format("2006-01-02") + "T00:00:00Z",
		},
		Dataset: queryDataset{
			Granularity: "None",
			Aggregation: map[string]queryAggregation{
				"totalCost": {Name: "Cost", Function: "Sum"},
			},
		},
	}

	resp, err := s.query(ctx, scopePath, body)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, row := range resp.Properties.Rows {
		if len(row) > 0 {
			total += numericValue(row[0])
		}
	}
	return round2(total), nil
}

// CurrentMonthForecast sums the forecast-flagged portion of a month-to-date
// daily query. Older response shapes without an IsForecast column fall back
// to summing every row.
func (s *service) CurrentMonthForecast(ctx context.Context, scopePath string) (*float64, error) {
	body := queryRequest{
		Type:      "Usage",
		Timeframe: "MonthToDate",
		Dataset: queryDataset{
			Granularity: "Daily",
			Aggregation: map[string]queryAggregation{
				"totalCost": {Name: "Cost", Function: "Sum"},
			},
		},
		IncludeForecast: true,
	}

	resp, err := s.query(ctx, scopePath, body)
	if err != nil {
		return nil, err
	}

	costIdx, forecastIdx := -1, -1
	for i, col := range resp.Properties.Columns {
		switch col.Name {
		case "Cost":
			costIdx = i
		case "IsForecast":
			forecastIdx = i
		}
	}

	var total float64
	if costIdx == -1 || forecastIdx == -1 {
		for _, row := range resp.Properties.Rows {
			if len(row) > 0 {
				total += numericValue(row[0])
			}
		}
	} else {
		for _, row := range resp.Properties.Rows {
			if len(row) <= costIdx || len(row) <= forecastIdx {
				continue
			}
			if isForecastFlag(row[forecastIdx]) {
				total += numericValue(row[costIdx])
			}
		}
	}

	result := round2(total)
	return &result, nil
}

func (s *service) query(ctx context.Context, scopePath string, body queryRequest) (*queryResponse, error) {
	url := fmt.Sprintf("%s%s/providers/Microsoft.CostManagement/query?api-version=%s",
		s.rest.BaseURL(), scopePath, s.apiVersion)

	data, err := s.rest.Call(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cost query response: %w", err)
	}
	return &resp, nil
}

// numericValue reads a cost cell; non-numeric rows contribute nothing
// instead of failing the month
func numericValue(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func isForecastFlag(v interface{}) bool {
	switch strings.ToLower(fmt.Sprint(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
