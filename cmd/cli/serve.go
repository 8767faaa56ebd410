// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"net/http"
	"time"

	"birthday-manager/internal/api"
	"birthday-manager/internal/logger"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the birthday list over a JSON HTTP API",
	Long: `Starts an HTTP server exposing the birthday list:

  GET    /api/entries            list all entries
  POST   /api/entries            add an entry
  GET    /api/entries/{index}    show one entry
  PUT    /api/entries/{index}    replace an entry
  DELETE /api/entries/{index}    remove an entry
  GET    /api/upcoming?days=N    upcoming birthdays
  GET    /api/export             the data file contents
  POST   /api/import?replace=b   append (or replace with) entries in the line format

Every change is written to the data file immediately.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           api.NewServer(s).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		statusColor.Fprintf(cmd.OutOrStdout(), "Starting web server on %s (data file %s)\n", serveAddr, s.Path)
		logger.Info("Starting web server", "addr", serveAddr, "path", s.Path)
		if err := srv.ListenAndServe(); err != nil {
			fail(cmd, err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}
