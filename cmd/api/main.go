package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dailymenu/internal/app"
	"dailymenu/internal/auth"
	"dailymenu/internal/common"
	"dailymenu/internal/digest"
	"dailymenu/internal/env"
	"dailymenu/internal/logger"
	v0digest "dailymenu/internal/v0/digest"
	v0menu "dailymenu/internal/v0/menu"
	"dailymenu/internal/v0/subscriptions"
)

func main() {
	envErr := godotenv.Load()
	log := logger.New("dailymenu-api", env.GetEnv(env.EnvLogLevel, "info"))
	if envErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	a, err := app.Build(log)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("startup failed")
	}
	defer a.Close()

	// Daily digest
	if env.GetBool(env.EnvSchedulerEnabled, false) {
		scheduler, err := digest.Start(a.Runner, env.GetEnv(env.EnvDigestAt, "07:00"), a.Location, log)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler failed to start")
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				log.Error().Err(err).Msg("scheduler shutdown")
			}
		}()
	}

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		v0menu.RegisterRoutes(v0Group, v0menu.NewHandler(a.Fetcher, a.Stations, a.Location))
		subscriptions.RegisterRoutes(v0Group, subscriptions.NewHandler(a.Service))

		// Manual digest runs (protected by the admin token)
		guard, err := auth.NewAdminGuard(env.GetEnv(env.EnvAdminToken, ""), env.GetList(env.EnvAdminAllowedIPs), log)
		switch {
		case errors.Is(err, auth.ErrNoAdminToken):
			log.Warn().Msg("ADMIN_TOKEN not set, manual digest runs are disabled")
		case err != nil:
			log.Fatal().Err(err).Msg("invalid admin configuration")
		default:
			v0digest.RegisterRoutes(v0Group, v0digest.NewHandler(a.Runner, a.Location), guard.Require())
		}
	}

	port := env.GetInt(env.EnvPort, 9237)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
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
