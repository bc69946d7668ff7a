package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dailymenu/internal/app"
	"dailymenu/internal/digest"
	"dailymenu/internal/env"
	"dailymenu/internal/logger"
	"dailymenu/internal/menu"
)

var (
	dateFlag   string
	emailFlag  string
	dryRunFlag bool
	rootCmd    = &cobra.Command{
		Use:   "sendmenu",
		Short: "Send today's cafeteria menu to every active subscriber",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			log := logger.New("dailymenu-sendmenu", env.GetEnv(env.EnvLogLevel, "info"))

			a, err := app.Build(log)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDigest(ctx, a.Runner, a.Location, cmd.OutOrStdout())
		},
	}
)

type digestRunner interface {
	Run(ctx context.Context, opts digest.Options) (digest.Report, error)
}

// runDigest runs one digest for the flag values and prints the report as JSON.
// Per-subscriber failures are part of the report and do not fail the command.
func runDigest(ctx context.Context, r digestRunner, loc *time.Location, out io.Writer) error {
	opts := digest.Options{Email: strings.ToLower(strings.TrimSpace(emailFlag)), DryRun: dryRunFlag}
	if dateFlag != "" {
		date, err := time.ParseInLocation(menu.DateLayout, dateFlag, loc)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
		opts.Date = date
	}

	report, err := r.Run(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func main() {
	rootCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Menu date as YYYY-MM-DD (default today)")
	rootCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "Only send to this subscriber")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Render every email but only log it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

/*
This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team as well as helper endpoints to integrate with our apps.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
