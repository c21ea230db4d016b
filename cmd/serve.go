// =============================================================================
// Price Update Preparation Tool - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which starts the HTTP server that
// backs the browser editing workflow.
//
// COMMAND USAGE:
//   priceprep serve
//   priceprep serve --listen :9090
//
// =============================================================================

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/server"
)

// listenAddr overrides the configured listen address when set.
var listenAddr string

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editing server",
	Long: `Start the HTTP server backing the browser workflow: paste rows into a
session, refresh marketplace status, review validation and download the
filled upload workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		resolver := buildResolver(cfg, log)
		writer := buildWriter(cfg, log)

		// A missing template is worth knowing about at startup, but the
		// server still runs; the download endpoint reports it per request.
		if err := writer.Check(); err != nil {
			log.Warn("upload template not found", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, log, resolver, writer).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}
