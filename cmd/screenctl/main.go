// Package main provides screenctl, a command line interface to the equity
// screener: run screens, rate single stocks and list growth rankings without
// starting the dashboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/loader"
	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/rating"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	svc        *screener.Service
)

var (
	flagQuery    string
	flagIndustry string
	flagQuality  bool
	flagGrowth   bool
	flagValue    bool
	flagDividend bool
	flagPEMin    float64
	flagPEMax    float64
	flagROEMin   float64
	flagDEMax    float64
	flagMCapMin  float64
	flagSort     string
	flagOrder    string
	flagLimit    int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	screenCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Substring of name or NSE code")
	screenCmd.Flags().StringVar(&flagIndustry, "industry", "", "Industry filter (empty or 'All' matches everything)")
	screenCmd.Flags().BoolVar(&flagQuality, "quality", false, "Only quality stocks (ROE >= 15, D/E <= 0.5)")
	screenCmd.Flags().BoolVar(&flagGrowth, "growth", false, "Only high-growth stocks (5y sales growth >= 15)")
	screenCmd.Flags().BoolVar(&flagValue, "value", false, "Only value stocks (P/E <= 20)")
	screenCmd.Flags().BoolVar(&flagDividend, "dividend", false, "Only dividend payers")
	screenCmd.Flags().Float64Var(&flagPEMin, "pe-min", 0, "Minimum P/E (0 disables)")
	screenCmd.Flags().Float64Var(&flagPEMax, "pe-max", 0, "Maximum P/E (0 disables)")
	screenCmd.Flags().Float64Var(&flagROEMin, "roe-min", 0, "Minimum ROE (0 disables)")
	screenCmd.Flags().Float64Var(&flagDEMax, "de-max", 0, "Maximum debt-to-equity (0 disables)")
	screenCmd.Flags().Float64Var(&flagMCapMin, "mcap-min", 0, "Minimum market cap in Crores (0 disables)")
	screenCmd.Flags().StringVar(&flagSort, "sort", "", "Sort field (defaults to configured sort)")
	screenCmd.Flags().StringVar(&flagOrder, "order", "", "Sort order: asc or desc")
	screenCmd.Flags().IntVar(&flagLimit, "limit", 0, "Limit output rows (0 shows all)")

	topCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of stocks to show")

	rootCmd.AddCommand(screenCmd, rateCmd, topCmd)
}

var rootCmd = &cobra.Command{
	Use:     "screenctl",
	Short:   "Screen and rate stocks from the command line",
	Long:    `screenctl loads the configured watchlist and runs the screener pipeline locally: filter, rate and rank without the dashboard.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger("warn")

	httpClientCfg := loader.DefaultHTTPClientConfig()
	httpClientCfg.Timeout = cfg.FetchTimeout()
	fetcher := loader.NewHTTPClient(httpClientCfg, appLog)

	watchlist := store.NewWatchlist(cfg.Watchlist.Source, fetcher, appLog)
	if err := watchlist.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load watchlist from %s: %w", cfg.Watchlist.Source, err)
	}

	// No cache: every invocation is a fresh pass.
	svc = screener.NewService(watchlist, rating.NewEngine(), nil, appLog)
	return nil
}

func buildFilter() screener.Filter {
	f := screener.Filter{
		Search:       flagQuery,
		Industry:     flagIndustry,
		QualityOnly:  flagQuality,
		HighGrowth:   flagGrowth,
		ValueOnly:    flagValue,
		DividendOnly: flagDividend,
		ROEMin:       flagROEMin,
		MCapMin:      flagMCapMin,
	}
	if flagPEMin > 0 {
		f.PEMin = models.Float(flagPEMin)
	}
	if flagPEMax > 0 {
		f.PEMax = models.Float(flagPEMax)
	}
	if flagDEMax > 0 {
		f.DEMax = models.Float(flagDEMax)
	}
	return f
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run a screen over the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortField := flagSort
		if sortField == "" {
			sortField = cfg.Screener.DefaultSort
		}
		order := flagOrder
		if order == "" {
			order = cfg.Screener.DefaultOrder
		}

		rated, err := svc.Screen(buildFilter(), sortField, order == "asc")
		if err != nil {
			return err
		}
		if flagLimit > 0 && len(rated) > flagLimit {
			rated = rated[:flagLimit]
		}

		printStockTable(rated)
		fmt.Printf("\n%d of %d stocks matched\n", len(rated), svc.Watchlist().Len())
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate CODE",
	Short: "Rate a single stock by NSE code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stock, err := svc.Watchlist().Get(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToUpper(args[0]), err)
		}

		engine := svc.Engine()
		ratingLabel, score := engine.Rate(stock)

		fmt.Printf("%s (%s)\n", stock.Name, stock.NSECode)
		fmt.Printf("Rating:       %s (%.1f/5)\n", ratingLabel, score)
		fmt.Printf("Growth score: %.1f\n", engine.GrowthScore(stock))
		fmt.Printf("Price:        %s\n", models.FormatPrice(stock.CurrentPrice))
		fmt.Printf("Market cap:   %s\n", models.FormatCrore(stock.MarketCap))
		fmt.Printf("ROE:          %s\n", models.FormatNumber(stock.ROE, "%"))
		fmt.Printf("P/E:          %s\n", models.FormatNumber(stock.PE, ""))
		fmt.Printf("D/E:          %s\n", models.FormatNumber(stock.DebtToEquity, ""))

		if strengths := engine.Strengths(stock); len(strengths) > 0 {
			fmt.Println("\nStrengths:")
			for _, s := range strengths {
				fmt.Printf("  + %s\n", s)
			}
		}
		if risks := engine.Risks(stock); len(risks) > 0 {
			fmt.Println("\nRisks:")
			for _, r := range risks {
				fmt.Printf("  - %s\n", r)
			}
		}
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List stocks ranked by growth score",
	RunE: func(cmd *cobra.Command, args []string) error {
		rated, err := svc.GrowthRanking(screener.Filter{}, flagLimit)
		if err != nil {
			return err
		}
		printStockTable(rated)
		return nil
	},
}

func printStockTable(rated []models.RatedStock) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tPRICE\tMKT CAP\tROE\tP/E\tGROWTH\tRATING")
	for i := range rated {
		s := &rated[i].Stock
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			s.NSECode,
			s.Name,
			models.FormatPrice(s.CurrentPrice),
			models.FormatCrore(s.MarketCap),
			models.FormatNumber(s.ROE, "%"),
			models.FormatNumber(s.PE, ""),
			rated[i].GrowthScore,
			rated[i].Rating,
		)
	}
	w.Flush()
}
