// Package tracker owns the paginated cryptocurrency list: initial load,
// refresh, append-on-scroll, and client-side filtering.
//
// The controller is a small state machine (idle → loading-initial → loaded,
// with loading-more and error excursions). A single-slot in-flight guard
// rejects triggers that arrive while a fetch is running: the overlapping call
// returns ErrBusy and nothing else happens, matching UI-serialized usage
// where a second pull-to-refresh during a fetch should simply be ignored.
//
// A failed fetch never clears previously loaded data: the error state and the
// stale list coexist so the caller can show both.
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/models"
)

// ErrBusy reports that a fetch was ignored because another one is in flight.
var ErrBusy = errors.New("fetch already in progress")

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle means nothing has been fetched yet.
	StateIdle State = iota
	// StateLoadingInitial means the first page is being fetched.
	StateLoadingInitial
	// StateLoaded means at least one page is available.
	StateLoaded
	// StateLoadingMore means a follow-up page is being appended.
	StateLoadingMore
	// StateError means the last fetch failed; previously loaded data is kept.
	StateError
)

// ErrorMessageKey is the static translation key surfaced on any fetch
// failure. A 404 and a timeout render identically.
const ErrorMessageKey = "home.errorMessage"

// Lister is the slice of the market data client the controller needs.
type Lister interface {
	ListTickers(ctx context.Context, start, limit int) ([]models.Cryptocurrency, error)
}

// Controller manages the paginated list. Fetches are serialized by the
// in-flight guard; accessors may be called from any goroutine.
type Controller struct {
	client   Lister
	log      *logrus.Logger
	pageSize int

	inFlight atomic.Bool

	mu       sync.RWMutex
	coins    []models.Cryptocurrency
	cursor   int
	state    State
	errorKey string
}

// New creates a list controller with the given page size (DefaultPageSize of
// the client when zero).
func New(client Lister, pageSize int, log *logrus.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Controller{
		client:   client,
		log:      log,
		pageSize: pageSize,
		state:    StateIdle,
	}
}

// Refresh fetches page zero and replaces the entire list with the result.
// The previous list is not merged or de-duplicated against; the cursor resets
// to one page. Returns ErrBusy when another fetch is in flight.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.inFlight.Store(false)

	c.setLoading(StateLoadingInitial)

	coins, err := c.client.ListTickers(ctx, 0, c.pageSize)
	if err != nil {
		c.log.WithError(err).Warn("refresh failed")
		c.setError()
		return err
	}

	c.mu.Lock()
	c.coins = coins
	c.cursor = c.pageSize
	c.state = StateLoaded
	c.errorKey = ""
	c.mu.Unlock()
	return nil
}

// FetchMore fetches the page at the current cursor and appends it to the
// list, advancing the cursor by one page. Overlapping pages from the server
// are appended verbatim: the controller does not detect duplicate IDs.
// Returns ErrBusy when another fetch is in flight.
func (c *Controller) FetchMore(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.inFlight.Store(false)

	c.mu.RLock()
	start := c.cursor
	c.mu.RUnlock()

	c.setLoading(StateLoadingMore)

	coins, err := c.client.ListTickers(ctx, start, c.pageSize)
	if err != nil {
		c.log.WithError(err).Warn("fetch more failed")
		c.setError()
		return err
	}

	c.mu.Lock()
	c.coins = append(c.coins, coins...)
	c.cursor = start + c.pageSize
	c.state = StateLoaded
	c.errorKey = ""
	c.mu.Unlock()
	return nil
}

// Coins returns a copy of the currently loaded list.
func (c *Controller) Coins() []models.Cryptocurrency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Cryptocurrency, len(c.coins))
	copy(out, c.coins)
	return out
}

// Filter returns the coins whose name or symbol contains query,
// case-insensitively. An empty or whitespace-only query returns the full
// list. Filtering never mutates the stored list.
func (c *Controller) Filter(query string) []models.Cryptocurrency {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return c.Coins()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]models.Cryptocurrency, 0)
	for _, coin := range c.coins {
		if strings.Contains(strings.ToLower(coin.Name), normalized) ||
			strings.Contains(strings.ToLower(coin.Symbol), normalized) {
			matched = append(matched, coin)
		}
	}
	return matched
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ErrorKey returns the static message key of the last failure, or "" when
// the controller is not in the error state.
func (c *Controller) ErrorKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorKey
}

// Cursor returns the offset the next FetchMore would use.
func (c *Controller) Cursor() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor
}

func (c *Controller) setLoading(s State) {
	c.mu.Lock()
	c.state = s
	c.errorKey = ""
	c.mu.Unlock()
}

// setError enters the error state, keeping coins and cursor untouched.
func (c *Controller) setError() {
	c.mu.Lock()
	c.state = StateError
	c.errorKey = ErrorMessageKey
	c.mu.Unlock()
}
