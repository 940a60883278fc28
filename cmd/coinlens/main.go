package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/coinlore"
	"github.com/coinlens/coinlens/internal/config"
	"github.com/coinlens/coinlens/internal/detail"
	"github.com/coinlens/coinlens/internal/i18n"
	"github.com/coinlens/coinlens/internal/logger"
	"github.com/coinlens/coinlens/internal/models"
	"github.com/coinlens/coinlens/internal/prefs"
	"github.com/coinlens/coinlens/internal/session"
	"github.com/coinlens/coinlens/internal/tracker"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging
	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.WithField("path", *configPath).Info("Configuration loaded")

	// Open preference store
	store, err := prefs.Open(cfg.Prefs.DBPath)
	if err != nil {
		logg.WithError(err).Fatal("Failed to open preference store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.WithError(err).Error("Failed to close preference store")
		}
	}()

	// Build translation tables
	translator, err := i18n.NewTranslator()
	if err != nil {
		logg.WithError(err).Fatal("Failed to load translation tables")
	}

	// Session services
	favorites := session.NewFavorites(store, logg)
	favorites.Load()
	language := session.NewLanguage(store, translator, logg)
	theme := session.NewTheme(store, systemColorScheme())

	logg.WithFields(logrus.Fields{
		"language":  language.Active(),
		"theme":     theme.Active(),
		"favorites": len(favorites.IDs()),
	}).Info("Session state restored")

	// Market data client and controllers
	client := coinlore.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logg)
	list := tracker.New(client, cfg.API.PageSize, logg)
	details := detail.New(client, seededRand(), logg)

	// Optional metrics endpoint
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logg.WithField("addr", cfg.Metrics.ListenAddr).Info("Serving metrics")
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				logg.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logg.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	logg.WithFields(logrus.Fields{
		"interval":  cfg.Watch.RefreshInterval,
		"page_size": cfg.API.PageSize,
		"top_n":     cfg.Watch.TopN,
	}).Info("Starting watch loop")

	ticker := time.NewTicker(cfg.Watch.RefreshInterval)
	defer ticker.Stop()

	// Run the first cycle immediately
	runCycle(ctx, client, list, details, language, favorites, cfg.Watch.TopN, logg)

	for {
		select {
		case <-ctx.Done():
			logg.Info("Service stopped")
			return

		case <-ticker.C:
			runCycle(ctx, client, list, details, language, favorites, cfg.Watch.TopN, logg)
		}
	}
}

// runCycle refreshes the global snapshot and the ticker list, then renders
// the top rows localized with the active language.
func runCycle(
	ctx context.Context,
	client *coinlore.Client,
	list *tracker.Controller,
	details *detail.Controller,
	language *session.Language,
	favorites *session.Favorites,
	topN int,
	logg *logrus.Logger,
) {
	start := time.Now()

	global, err := client.GetGlobal(ctx)
	if err != nil {
		logg.WithError(err).Warn(language.T("common.error", nil))
	} else {
		logg.WithFields(logrus.Fields{
			"total_mcap":    global.FormattedTotalMarketCap(),
			"total_volume":  global.FormattedTotalVolume(),
			"btc_dominance": global.FormattedBTCDominance(),
			"mcap_change":   global.FormattedMarketCapChange(),
		}).Info(language.T("home.marketOverview", nil))
	}

	if err := list.Refresh(ctx); err != nil {
		logg.WithError(err).Warn(language.T(list.ErrorKey(), nil))
		return
	}

	coins := list.Coins()
	if topN > len(coins) {
		topN = len(coins)
	}
	for _, coin := range coins[:topN] {
		marker := " "
		if favorites.IsFavorite(coin.ID) {
			marker = "★"
		}
		logg.WithFields(logrus.Fields{
			"rank":   coin.Rank,
			"symbol": coin.Symbol,
			"price":  coin.FormattedPrice(),
			"change": coin.FormattedPercentChange24h(),
			"mcap":   coin.FormattedMarketCap(),
			"fav":    marker,
		}).Info(coin.Name)
	}

	// Show the first favorite's detail view, chart included.
	if ids := favorites.IDs(); len(ids) > 0 {
		if err := details.Load(ctx, ids[0]); err != nil {
			logg.WithError(err).Warn(language.T(details.ErrorKey(), nil))
		} else if coin := details.Coin(); coin != nil {
			series := details.Series()
			low, high := series[0], series[0]
			for _, p := range series {
				if p < low {
					low = p
				}
				if p > high {
					high = p
				}
			}
			logg.WithFields(logrus.Fields{
				"price":      coin.FormattedPrice(),
				"supply":     coin.FormattedCSupply(),
				"chart_low":  models.FormatUSD(low),
				"chart_high": models.FormatUSD(high),
			}).Info(language.T("detail.priceChart", nil) + ": " + coin.Name)
		}
	}

	logg.WithField("duration", time.Since(start)).Debug("Cycle completed")
}

// systemColorScheme reports the host's preferred scheme. Terminals expose no
// reliable signal, so the COLORFGBG convention is the closest stand-in: a
// light background reports "light", everything else defaults to dark.
func systemColorScheme() string {
	if v := os.Getenv("COLORFGBG"); v != "" {
		// "15;0" means light text on dark background.
		if len(v) > 0 && v[len(v)-1] == '0' {
			return session.ThemeDark
		}
		return session.ThemeLight
	}
	return session.ThemeLight
}

// seededRand builds the random source for synthetic chart series.
// Kept in main so the detail controller itself stays deterministic in tests.
func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
