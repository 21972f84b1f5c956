// Copyright 2025 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of BLENDREADER.
//
//  BLENDREADER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  BLENDREADER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with BLENDREADER.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"blendreader/cnf"
	"blendreader/lexicon"
	"blendreader/monitoring"
	monitoringActions "blendreader/monitoring/handlers"
	"blendreader/openapi"
	"blendreader/rdb"
	"blendreader/reader"
	readerActions "blendreader/reader/handlers"
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type serverInfo struct {
	Name     string      `json:"name"`
	Version  versionInfo `json:"version"`
	NumTexts int         `json:"numTexts"`
}

func mkServerInfo(version versionInfo, tools *textTools) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			serverInfo{
				Name:     "BlendReader",
				Version:  version,
				NumTexts: len(tools.library.List()),
			},
		)
	}
}

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	version   versionInfo
	tools     *textTools
	sessions  *reader.Sessions
	jobLogger *monitoring.InductionLogger
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	rdActions := readerActions.NewActions(api.tools.library, api.sessions)
	monActions := monitoringActions.NewActions(api.jobLogger)

	engine.GET("/", mkServerInfo(api.version, api.tools))

	engine.GET("/openapi", openapi.MkHandleRequest(api.conf, api.version.Version))

	engine.GET("/texts", rdActions.ListTexts)

	sessions := engine.Group("/sessions").Use(AuthRequired(api.conf))

	sessions.POST(
		"", rdActions.CreateSession)

	sessions.GET(
		"/:sessionId", rdActions.GetSession)

	sessions.DELETE(
		"/:sessionId", rdActions.DeleteSession)

	sessions.POST(
		"/:sessionId/load", rdActions.LoadText)

	sessions.POST(
		"/:sessionId/start", rdActions.Start)

	sessions.POST(
		"/:sessionId/advance", rdActions.Advance)

	sessions.POST(
		"/:sessionId/reset", rdActions.Reset)

	sessions.GET(
		"/:sessionId/lexicon", rdActions.Lexicon)

	mon := engine.Group("/monitoring").Use(AuthRequired(api.conf))

	mon.GET(
		"/workers-load", monActions.WorkersLoad)

	mon.GET(
		"/workers-load/:workerId", monActions.SingleWorkerLoad)

	mon.GET(
		"/recent-records", monActions.RecentRecords)

	mon.GET(
		"/texts", monActions.TextsInduction)

	mon.GET(
		"/texts/:textId", monActions.TextInduction)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down BlendReader HTTP API server")
	return api.server.Shutdown(ctx)
}

func runApiServer(conf *cnf.Conf, version versionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tools, err := newTextTools(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text tools")
		return
	}
	log.Info().Int("numTexts", len(tools.library.List())).Msg("texts loaded")

	services := make([]service, 0, 4)

	var statusWriter monitoring.StatusWriter
	if conf.Monitoring.IsDBConfigured() {
		tsWriter, err := monitoring.NewTimescaleDBWriter(ctx, *conf.Monitoring.DB, conf.TimezoneLocation())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize TimescaleDB status writer")
			return
		}
		statusWriter = tsWriter
		services = append(services, tsWriter)
	}
	jobLogger := monitoring.NewInductionLogger(statusWriter, conf.TimezoneLocation())
	services = append(services, jobLogger)

	var store reader.SnapshotStore
	var models reader.ModelProvider
	if conf.HasRedis() {
		radapter := rdb.NewAdapter(conf.Redis, ctx)
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		store = radapter
		if conf.InductionWorkers {
			models = reader.NewWorkerInduction(
				radapter, conf.Blending.EMRounds, conf.InductionTimeout(), jobLogger)
			log.Info().Msg("lexicon induction delegated to workers")
		}
	}
	if models == nil {
		models = reader.NewLocalInduction(
			lexicon.NewInducer(tools.extractor, conf.Blending.EMRounds), jobLogger)
	}

	sessions := reader.NewSessions(
		func() *reader.Controller {
			return reader.NewController(tools.library, models, tools.extractor, conf.Blending)
		},
		store,
		conf.SessionTTL(),
	)
	services = append(services, sessions)

	server := &apiServer{
		conf:      conf,
		version:   version,
		tools:     tools,
		sessions:  sessions,
		jobLogger: jobLogger,
	}
	services = append(services, server)

	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")
	shutdownServices(services)
}

func shutdownServices(services []service) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
