package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	devtobadge "github.com/azis14/devto-badge"
)

// cli carries state shared by the subcommands once the root command has
// loaded configuration.
type cli struct {
	cfgFile string
	verbose bool

	v      *viper.Viper
	cfg    devtobadge.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "devtobadge",
		Short: "SVG badges for dev.to articles",
		Long: `devtobadge renders a dev.to article as a self-contained SVG card that can be
embedded in a README or any Markdown page.

Example usage:
  devtobadge serve                                  # Serve GET /badge on :3000
  devtobadge render --url dev.to/foo/bar --out a.svg
  devtobadge version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is .devtobadge.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCmd(c), newRenderCmd(c), newVersionCmd())
	return root
}

func (c *cli) init() error {
	logger, err := newLogger(c.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	c.logger = logger

	cfg, err := loadConfig(c.v, c.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg

	c.logger.Debug("configuration loaded",
		zap.String("addr", cfg.Addr),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("article_host", cfg.ArticleHost),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}
