// internal/report/surge_report.go
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
)

// SurgeReportKey builds the object key for a dashboard export.
func SurgeReportKey(date time.Time) string {
	return fmt.Sprintf("reports/price_surge_%s.csv", date.Format("20060102"))
}

// BuildSurgeReport renders the surge dashboard as CSV, one row per
// medicine, in the order given (highest surge probability first).
func BuildSurgeReport(forecasts []domain.SurgeForecast) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"medicine_id", "medicine_name", "current_price", "predicted_price",
		"price_change_percent", "surge_probability", "recommended_stock_quantity",
		"contributing_factors",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, f := range forecasts {
		row := []string{
			strconv.FormatInt(f.MedicineID, 10),
			f.MedicineName,
			strconv.FormatFloat(f.CurrentPrice, 'f', 2, 64),
			strconv.FormatFloat(f.PredictedPrice, 'f', 2, 64),
			strconv.FormatFloat(f.PriceChangePercent, 'f', 2, 64),
			strconv.FormatFloat(f.SurgeProbability, 'f', 2, 64),
			strconv.Itoa(f.RecommendedStockQuantity),
			strings.Join(f.ContributingFactors, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}

	return buf.Bytes(), nil
}
