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
	"blendreader/blend"
	"blendreader/cnf"
	"blendreader/corpus"
	"blendreader/lexicon"
	"blendreader/reader"
	"blendreader/tagger"
	"blendreader/textproc"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type versionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getEnv(name string) string {
	for _, p := range os.Environ() {
		items := strings.SplitN(p, "=", 2)
		if len(items) == 2 && items[0] == name {
			return items[1]
		}
	}
	return ""
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		if sessionID := ctx.Param("sessionId"); sessionID != "" {
			logging.AddLogEvent(ctx, "sessionId", sessionID)
		}
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin {
					allowedOrigin = origin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
			}

			if ctx.Request.Method == "OPTIONS" {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthHeaderName) > 0 &&
			!collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

// textTools are the components shared by the server, the worker
// and the offline actions
type textTools struct {
	library   *corpus.Library
	taggers   tagger.Registry
	extractor *textproc.Extractor
}

func newTextTools(conf *cnf.Conf) (*textTools, error) {
	library, err := corpus.LoadLibrary(conf.Texts)
	if err != nil {
		return nil, fmt.Errorf("failed to load texts: %w", err)
	}
	taggers, err := tagger.NewRegistry(conf.Tagging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize taggers: %w", err)
	}
	return &textTools{
		library:   library,
		taggers:   taggers,
		extractor: textproc.NewExtractor(taggers),
	}, nil
}

func (tt *textTools) newLocalController(conf *cnf.Conf) *reader.Controller {
	return reader.NewController(
		tt.library,
		reader.NewLocalInduction(lexicon.NewInducer(tt.extractor, conf.Blending.EMRounds), nil),
		tt.extractor,
		conf.Blending,
	)
}

// renderSentence formats a blended sentence for terminal output.
// Substituted words are shown as [target|source], substituted
// sentences as {{target}}.
func renderSentence(sent blend.Sentence) string {
	var buff strings.Builder
	for _, seg := range sent.Segments {
		switch seg.Kind {
		case blend.KindWord:
			fmt.Fprintf(&buff, "[%s|%s]", seg.Text, seg.Tooltip)
		case blend.KindSentence:
			fmt.Fprintf(&buff, "{{%s}}", seg.Text)
		default:
			buff.WriteString(seg.Text)
		}
	}
	return buff.String()
}

func renderText(sentences []blend.Sentence) string {
	return strings.Join(collections.SliceMap(
		sentences,
		func(s blend.Sentence, i int) string {
			return renderSentence(s)
		},
	), " ")
}

func runOfflineAction(conf *cnf.Conf, action, textID string) {
	if textID == "" {
		log.Fatal().Msgf("action %s requires a text ID", action)
		return
	}
	tools, err := newTextTools(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text tools")
		return
	}
	ctrl := tools.newLocalController(conf)
	if err := ctrl.LoadText(context.Background(), textID); err != nil {
		log.Fatal().Err(err).Msg("failed to load text")
		return
	}
	switch action {
	case "lexicon":
		for _, entry := range ctrl.Lexicon() {
			fmt.Printf("%s\t%s\n", entry.Source, entry.Target)
		}
	case "render":
		fmt.Println(renderText(ctrl.Blend()))
	}
}

func main() {
	version := versionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "BLENDREADER - progressive bilingual reading server\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] worker [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] lexicon [config.json] [text ID]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] render [config.json] [text ID]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("blendreader %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}
	conf := cnf.LoadConfig(flag.Arg(1))

	switch action {
	case "worker":
		var wPath string
		if conf.LogFile != "" {
			wPath = filepath.Join(filepath.Dir(conf.LogFile), "worker.log")
		}
		logging.SetupLogging(logging.LoggingConf{Path: wPath, Level: conf.LogLevel})
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()
	case "test":
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	default:
		logging.SetupLogging(logging.LoggingConf{Path: conf.LogFile, Level: conf.LogLevel})
	}

	log.Info().Str("version", version.Version).Msg("Starting BlendReader")
	cnf.ValidateAndDefaults(conf)

	switch action {
	case "server":
		runApiServer(conf, version)
	case "worker":
		runWorker(conf)
	case "lexicon", "render":
		runOfflineAction(conf, action, flag.Arg(2))
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
