// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/MoneyGuy/pkg/logging"
	"github.com/AleutianAI/MoneyGuy/services/llm"
	"github.com/AleutianAI/MoneyGuy/services/server/assistant"
	"github.com/AleutianAI/MoneyGuy/services/server/auth"
	"github.com/AleutianAI/MoneyGuy/services/server/config"
	"github.com/AleutianAI/MoneyGuy/services/server/handlers"
	"github.com/AleutianAI/MoneyGuy/services/server/observability"
	"github.com/AleutianAI/MoneyGuy/services/server/reports"
	"github.com/AleutianAI/MoneyGuy/services/server/routes"
	"github.com/AleutianAI/MoneyGuy/services/server/store"
)

const serviceName = "moneyguy-server"

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			logging.Default().Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	configPath := os.Getenv("MONEYGUY_CONFIG")
	if configPath == "" {
		configPath = "moneyguy.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: serviceName,
		JSON:    true,
	})
	defer logger.Close()

	if cfg.Tracing.Enabled {
		cleanup, err := initTracer(cfg.Tracing.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
	}

	st, err := store.Open(cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	artifacts, err := reports.OpenArtifacts(cfg.Reports.ArtifactDir, logger)
	if err != nil {
		log.Fatalf("failed to open artifact store: %v", err)
	}
	defer artifacts.Close()

	llmClient, err := llm.NewOpenAIClient()
	if err != nil {
		log.Fatalf("failed to initialize LLM client: %v", err)
	}

	jwtProvider, err := auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize auth: set JWT_SECRET (%v)", err)
	}

	metrics := observability.InitMetrics()
	h := handlers.New(st, assistant.New(st, llmClient, logger), jwtProvider, artifacts, logger).
		WithMetrics(metrics)
	h.SetAlertPolicy(cfg.AlertPolicy())
	h.SetStatusPolicy(cfg.StatusPolicy())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(metrics.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := routes.SetupRoutes(router, h, jwtProvider, st); err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Alert thresholds, budget status tiers and the log level follow
	// config edits without a restart.
	watcher, err := config.NewWatcher(configPath, logger, func(updated *config.Config) {
		h.SetAlertPolicy(updated.AlertPolicy())
		h.SetStatusPolicy(updated.StatusPolicy())
		logger.SetLevel(logging.ParseLevel(updated.Logging.Level))
	})
	if err != nil {
		logger.Warn("config watch unavailable", "error", err)
	} else {
		go watcher.Start(ctx)
	}

	logger.Info("starting server", "addr", cfg.Addr(), "driver", cfg.Database.Driver)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
