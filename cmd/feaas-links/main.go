// Package main implements feaas-links, a command line tool that lists the
// FEAAS library stylesheets a layout needs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jssgo/jss-edge/internal/application/container"
	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
	"github.com/jssgo/jss-edge/internal/infrastructure/layoutservice"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/presentation/templates"
	"github.com/jssgo/jss-edge/pkg/config"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cmdRoot = &cobra.Command{
		Use:          "feaas-links",
		Short:        "list FEAAS library stylesheets for layout data",
		SilenceUsage: true,
	}
	cmdRoot.PersistentFlags().String("edge-url", "", "Sitecore Edge Platform URL (default from SITECORE_EDGE_URL)")
	cmdRoot.PersistentFlags().String("env-file", ".env", "env file with configuration overrides")
	cmdRoot.PersistentFlags().Bool("verbose", false, "log more information")

	cmdRoot.AddCommand(cmdResolve())
	cmdRoot.AddCommand(cmdURL())
	cmdRoot.AddCommand(cmdFetch())
	return cmdRoot
}

// loadConfig reads the configuration the server would use, with the
// --edge-url flag taking precedence. Override notices need --verbose.
func loadConfig(cmd *cobra.Command) *config.Config {
	config.Logger = log.New(io.Discard, "", 0)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		config.Logger = log.New(cmd.ErrOrStderr(), "", 0)
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	cfg := config.LoadFrom(envFile)
	if v, _ := cmd.Flags().GetString("edge-url"); v != "" {
		cfg.SitecoreEdgeURL = v
	}
	return cfg
}

func cmdResolve() *cobra.Command {
	format := formatJSON
	var cmd = &cobra.Command{
		Use:   "resolve [layout-file...]",
		Short: "resolve stylesheet links for layout data files (.json, .yaml); reads JSON from stdin without files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatHTML {
				return fmt.Errorf("unknown format %q", format)
			}
			resolver := feaas.NewResolver(feaas.DefaultServerURLs())
			edge := loadConfig(cmd).SitecoreEdgeURL

			if len(args) == 0 {
				data, err := decodeLayout(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to decode stdin: %w", err)
				}
				return writeLinks(cmd.OutOrStdout(), format, "", resolver.Links(data, edge))
			}

			results := make([]fileLinks, 0, len(args))
			for _, path := range args {
				data, err := loadLayoutFile(path)
				if err != nil {
					return err
				}
				results = append(results, fileLinks{File: path, Links: resolver.Links(data, edge)})
			}

			if format == formatJSON && len(results) > 1 {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				if err := writeLinks(cmd.OutOrStdout(), format, r.File, r.Links); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", format, "output format: json or html")
	return cmd
}

func cmdURL() *cobra.Command {
	var pageState string
	var cmd = &cobra.Command{
		Use:   "url <library-id>",
		Short: "print the stylesheet URL for a library id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := feaas.NewResolver(feaas.DefaultServerURLs())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resolver.StylesheetURL(args[0], layout.PageState(pageState), loadConfig(cmd).SitecoreEdgeURL))
			return err
		},
	}
	cmd.Flags().StringVar(&pageState, "page-state", pageState, "page state: normal, edit or preview")
	return cmd
}

func cmdFetch() *cobra.Command {
	var language, site string
	format := formatJSON
	timeout := 30 * time.Second
	var cmd = &cobra.Command{
		Use:   "fetch <item-path>",
		Short: "fetch layout data through the configured layout service and print its stylesheet links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if site == "" {
				site = cfg.SiteName
			}

			logger, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			app := container.NewContainer(cfg, layoutservice.NewClient(cfg), logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			head, err := app.LayoutService.PageHead(ctx, site, args[0], language, "")
			if err != nil {
				return err
			}
			return writeLinks(cmd.OutOrStdout(), format, "", head.Links)
		},
	}
	cmd.Flags().StringVar(&language, "lang", language, "language (default from DEFAULT_LANGUAGE)")
	cmd.Flags().StringVar(&site, "site", site, "site name (default from SITECORE_SITE_NAME)")
	cmd.Flags().StringVar(&format, "format", format, "output format: json or html")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "request timeout")
	return cmd
}

// cliLogger writes channeled logs to stderr so stdout stays parseable
func cliLogger(cmd *cobra.Command, cfg *config.Config) (*logging.ChanneledLogger, error) {
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.Console = cmd.ErrOrStderr()
	loggerConfig.JSONFormat = false
	loggerConfig.DefaultLevel = slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		loggerConfig.DefaultLevel = logging.ParseLevel(cfg.LogLevel)
	}
	return logging.NewChanneledLogger(loggerConfig)
}

type fileLinks struct {
	File  string                 `json:"file"`
	Links []feaas.StylesheetLink `json:"links"`
}

func writeLinks(w io.Writer, format, file string, links []feaas.StylesheetLink) error {
	if format == formatHTML {
		html, err := templates.RenderStylesheetLinks(links)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, string(html))
		return err
	}
	if file != "" {
		return writeJSON(w, fileLinks{File: file, Links: links})
	}
	return writeJSON(w, links)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
