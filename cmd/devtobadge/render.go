package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	devtobadge "github.com/azis14/devto-badge"
	"github.com/azis14/devto-badge/badge"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		username, slug, articleURL string
		theme, hide, out           string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single badge to a file or stdout",
		Example: `  devtobadge render --username foo --slug bar > badge.svg
  devtobadge render --url https://dev.to/foo/bar --theme dark --hide tags --out badge.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for k, v := range map[string]string{
				"username": username,
				"slug":     slug,
				"url":      articleURL,
				"theme":    theme,
				"hide":     hide,
			} {
				if v != "" {
					q.Set(k, v)
				}
			}

			req, err := badge.ParseRequest(q, c.cfg.ArticleHost)
			if err != nil {
				return err
			}

			app := devtobadge.New(c.cfg, devtobadge.WithLogger(c.logger))
			rendered, err := app.Builder.Build(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("rendering %s/%s: %w", req.Username, req.Slug, err)
			}
			if len(rendered.Missing) > 0 {
				c.logger.Warn("badge rendered without some images", zap.Strings("missing", rendered.Missing))
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(rendered.Markup)
				return err
			}
			if err := os.WriteFile(out, rendered.Markup, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			c.logger.Info("badge written", zap.String("path", out))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&username, "username", "", "article author")
	f.StringVar(&slug, "slug", "", "article slug")
	f.StringVar(&articleURL, "url", "", "full article URL, used instead of --username/--slug")
	f.StringVar(&theme, "theme", "", "light or dark")
	f.StringVar(&hide, "hide", "", "comma separated: reactions,tags,minreads,image")
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
