// Package detail owns the single-coin detail view state: one fetched
// cryptocurrency plus a display-only price series for charting.
//
// The upstream API exposes no historical prices, so the chart series is
// synthetic: random noise around the current price with a slight trend in
// the direction of the real 24h change. It is presentation filler, not a
// historical or predictive signal, and every Load regenerates it.
package detail

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/models"
)

// ErrBusy reports that a load was ignored because another one is in flight.
var ErrBusy = errors.New("load already in progress")

// ErrorMessageKey is the static translation key surfaced on any load failure.
const ErrorMessageKey = "detail.errorMessage"

// Series generation parameters.
const (
	// SeriesPoints is the fixed length of the synthetic series, one point
	// per hour of the charted day.
	SeriesPoints = 24
	// seriesVolatility bounds the uniform per-point noise at ±5%.
	seriesVolatility = 0.05
	// seriesTrend is the full-series drift magnitude, signed by the real
	// 24h change.
	seriesTrend = 0.01
)

// SyntheticSeries generates a display-only price series around basePrice.
// Each point is basePrice × (1 + noise + trend·i/n) with noise uniform in
// [-seriesVolatility, +seriesVolatility] and the trend signed by
// change24h. The caller provides the random source so tests can fix a seed.
func SyntheticSeries(rng *rand.Rand, basePrice, change24h float64) []float64 {
	trend := -seriesTrend
	if change24h > 0 {
		trend = seriesTrend
	}

	series := make([]float64, SeriesPoints)
	for i := range series {
		noise := (rng.Float64() - 0.5) * 2 * seriesVolatility
		drift := trend * float64(i) / float64(SeriesPoints)
		series[i] = basePrice * (1 + noise + drift)
	}
	return series
}

// Getter is the slice of the market data client the controller needs.
type Getter interface {
	GetTicker(ctx context.Context, id string) (models.Cryptocurrency, error)
}

// Controller manages one coin's detail state.
type Controller struct {
	client Getter
	log    *logrus.Logger
	rng    *rand.Rand

	inFlight atomic.Bool

	mu       sync.RWMutex
	coin     *models.Cryptocurrency
	series   []float64
	errorKey string
}

// New creates a detail controller. rng seeds the synthetic series; pass a
// fixed-seed source in tests for reproducible charts.
func New(client Getter, rng *rand.Rand, log *logrus.Logger) *Controller {
	return &Controller{
		client: client,
		log:    log,
		rng:    rng,
	}
}

// Load fetches the coin and regenerates the synthetic chart series.
// Retrying after a failure is simply calling Load again. On failure the
// previously loaded coin and series are kept. Returns ErrBusy when another
// load is in flight.
func (c *Controller) Load(ctx context.Context, id string) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.inFlight.Store(false)

	coin, err := c.client.GetTicker(ctx, id)
	if err != nil {
		c.log.WithError(err).WithField("id", id).Warn("detail load failed")
		c.mu.Lock()
		c.errorKey = ErrorMessageKey
		c.mu.Unlock()
		return err
	}

	series := SyntheticSeries(c.rng, coin.PriceUSD, coin.PercentChange24h)

	c.mu.Lock()
	c.coin = &coin
	c.series = series
	c.errorKey = ""
	c.mu.Unlock()
	return nil
}

// Coin returns the loaded cryptocurrency, or nil before the first successful
// Load.
func (c *Controller) Coin() *models.Cryptocurrency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coin
}

// Series returns a copy of the current synthetic chart series.
func (c *Controller) Series() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]float64, len(c.series))
	copy(out, c.series)
	return out
}

// ErrorKey returns the static message key of the last failure, or "".
func (c *Controller) ErrorKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorKey
}
