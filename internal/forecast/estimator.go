// internal/forecast/estimator.go
package forecast

import (
	"math"

	"github.com/pharmadash/backend-go/internal/domain"
)

// DefaultSampleWindow is the number of recent price samples the estimator
// looks at.
const DefaultSampleWindow = 30

// monthlyWindow is the number of recent transactions summed as a proxy for
// monthly sales volume.
const monthlyWindow = 30

const (
	factorSeasonal = "Seasonal demand patterns"
	factorSupplier = "Supplier price fluctuations"
	maxFactors     = 4
)

// Estimator scores medicines by how likely their price is to surge. The
// output is a ranking signal, not a statistical forecast with calibrated
// error bounds.
type Estimator struct {
	sampleWindow int
}

// NewEstimator creates an estimator over the given sample window.
func NewEstimator(sampleWindow int) *Estimator {
	if sampleWindow <= 0 {
		sampleWindow = DefaultSampleWindow
	}
	return &Estimator{sampleWindow: sampleWindow}
}

// Estimate computes a surge forecast from the sales history of one medicine.
// sales must be ordered by sale date ascending. Sparse history never fails:
// with fewer than 2 samples, volatility and trend degrade to zero and the
// probability clamps to its floor.
func (e *Estimator) Estimate(medicineID int64, medicineName string, currentPrice float64, currentStock int, sales []domain.SalesRecord) domain.SurgeForecast {
	recent := sales
	if len(recent) > e.sampleWindow {
		recent = recent[len(recent)-e.sampleWindow:]
	}

	prices := make([]float64, len(recent))
	for i, s := range recent {
		prices[i] = s.UnitPrice.InexactFloat64()
	}

	// 1. Volatility: coefficient of variation over the recent price series.
	volatility := 0.0
	avg := mean(prices)
	if len(prices) >= 2 && avg > 0 {
		volatility = stddev(prices, avg) / avg
	}

	// 2. Trend: least-squares slope of price vs. sample index, normalized
	// by the mean price.
	trend := 0.0
	if len(prices) >= 2 && avg > 0 {
		trend = slope(prices) / avg
	}

	// 3. Surge probability, clamped to [5, 95].
	surge := volatility * 100
	if trend > 0 {
		surge += 30
	}
	surge = clamp(surge, 5, 95)

	// 4. Predicted price: up to 30% of the current price at full confidence.
	increase := 0.0
	if surge > 50 {
		increase = (surge / 100) * 0.3 * currentPrice
	}
	predicted := currentPrice + increase
	changePct := 0.0
	if currentPrice > 0 {
		changePct = increase / currentPrice * 100
	}

	// 5. Recommended restock: two months of demand minus what's on hand,
	// only when the surge signal is strong.
	monthly := sales
	if len(monthly) > monthlyWindow {
		monthly = monthly[len(monthly)-monthlyWindow:]
	}
	avgMonthlySales := 0
	for _, s := range monthly {
		avgMonthlySales += s.Quantity
	}
	recommended := 0
	if surge > 60 {
		recommended = avgMonthlySales*2 - currentStock
		if recommended < 0 {
			recommended = 0
		}
	}

	// 6. Contributing factors, in threshold order, capped at maxFactors.
	factors := make([]string, 0, maxFactors)
	if volatility > 0.1 {
		factors = append(factors, "High price volatility")
	}
	if trend > 0.05 {
		factors = append(factors, "Upward price trend")
	}
	if avgMonthlySales > 100 {
		factors = append(factors, "High sales volume")
	}
	if currentStock < avgMonthlySales {
		factors = append(factors, "Stock below monthly demand")
	}
	factors = append(factors, factorSeasonal, factorSupplier)
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	return domain.SurgeForecast{
		MedicineID:               medicineID,
		MedicineName:             medicineName,
		CurrentPrice:             currentPrice,
		PredictedPrice:           predicted,
		PriceChangePercent:       changePct,
		SurgeProbability:         surge,
		RecommendedStockQuantity: recommended,
		ContributingFactors:      factors,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, avg float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// slope is the ordinary least-squares slope of values against their index.
func slope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
