// Copyright 2023 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package web

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackbister/wtrack/internal/metrics"
	internalParser "github.com/jackbister/wtrack/internal/parser"
	"github.com/jackbister/wtrack/pkg/wtrack/config"
	"github.com/jackbister/wtrack/pkg/wtrack/observation"
	"github.com/jackbister/wtrack/pkg/wtrack/parser"
	"github.com/jackbister/wtrack/pkg/wtrack/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"
)

// Records are single lines, anything larger than this is rejected.
const maxRecordBytes = 64 * 1024

type Web interface {
	Serve() error
	Handler() http.Handler
}

type WebParams struct {
	dig.In

	Cfg      *config.Config
	Registry *internalParser.Registry
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

type webImpl struct {
	cfg      *config.Config
	registry *internalParser.Registry
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

type webError struct {
	err  string
	code int
}

func (w webError) Error() string {
	return w.err
}

// ObservationView is the JSON form of a parsed observation.
type ObservationView struct {
	Timestamp    *float64          `json:"timestamp,omitempty"`
	Time         *time.Time        `json:"time,omitempty"`
	Frequency    string            `json:"frequency"`
	Signal       int               `json:"signal"`
	Type         *uint32           `json:"type"`
	Subtype      *uint32           `json:"subtype"`
	Src          string            `json:"src"`
	Dest         string            `json:"dest"`
	Station      string            `json:"station"`
	AP           bool              `json:"ap"`
	Valid        bool              `json:"valid"`
	FieldsLength int               `json:"fieldsLength"`
	Attrs        map[string]string `json:"attrs"`
}

type ExtractResponse struct {
	Fields map[string]string `json:"fields"`
}

func NewWeb(p WebParams) Web {
	return &webImpl{
		cfg:      p.Cfg,
		registry: p.Registry,
		metrics:  p.Metrics,
		gatherer: p.Gatherer,
		logger:   p.Logger,
	}
}

func (wi *webImpl) Serve() error {
	s := http.Server{
		Addr:    wi.cfg.Web.Address,
		Handler: wi.Handler(),
	}
	wi.logger.Info("starting web server", slog.String("address", wi.cfg.Web.Address))
	return s.ListenAndServe()
}

func (wi *webImpl) Handler() http.Handler {
	if !wi.cfg.Web.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), util.NewRequestId(), util.NewGinSlogger(slog.LevelInfo, wi.logger))
	r.SetTrustedProxies(nil)

	r.POST("/api/v1/observations/parse", func(c *gin.Context) {
		ft, wErr := wi.fileType(c)
		if wErr != nil {
			c.AbortWithStatusJSON(wErr.code, gin.H{"error": wErr.err})
			return
		}
		record, wErr := readRecord(c)
		if wErr != nil {
			c.AbortWithStatusJSON(wErr.code, gin.H{"error": wErr.err})
			return
		}
		o := observation.New(record)
		wi.metrics.Observe(o)
		c.JSON(http.StatusOK, wi.view(o, ft))
	})

	r.POST("/api/v1/observations/extract", func(c *gin.Context) {
		ft, wErr := wi.fileType(c)
		if wErr != nil {
			c.AbortWithStatusJSON(wErr.code, gin.H{"error": wErr.err})
			return
		}
		fp, ok := wi.registry.Get(ft.Name)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no parser for fileType " + ft.Name})
			return
		}
		record, wErr := readRecord(c)
		if wErr != nil {
			c.AbortWithStatusJSON(wErr.code, gin.H{"error": wErr.err})
			return
		}
		res, err := fp.Extract(record)
		if err != nil {
			if errors.Is(err, parser.ErrInvalidRecord) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ExtractResponse{Fields: res.Fields})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(wi.gatherer, promhttp.HandlerOpts{})))

	return r
}

func (wi *webImpl) fileType(c *gin.Context) (*config.FileTypeConfig, *webError) {
	name := c.DefaultQuery("fileType", config.DefaultFileType)
	ft, ok := wi.cfg.FileTypes[name]
	if !ok {
		return nil, &webError{
			err:  "unknown fileType " + name,
			code: http.StatusNotFound,
		}
	}
	return &ft, nil
}

func readRecord(c *gin.Context) (string, *webError) {
	b, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", &webError{
				err:  "record is too large",
				code: http.StatusRequestEntityTooLarge,
			}
		}
		return "", &webError{
			err:  "Got error when reading record: " + err.Error(),
			code: http.StatusBadRequest,
		}
	}
	return string(b), nil
}

func (wi *webImpl) view(o *observation.Observation, ft *config.FileTypeConfig) ObservationView {
	v := ObservationView{
		Frequency:    o.Frequency(),
		Signal:       o.Signal(),
		Type:         o.Type(),
		Subtype:      o.Subtype(),
		Src:          o.Src(),
		Dest:         o.Dest(),
		Station:      o.Station(),
		AP:           o.AP(),
		Valid:        o.Valid(),
		FieldsLength: o.FieldsLength(),
		Attrs:        o.Attrs(),
	}
	// encoding/json can not represent ±Inf or NaN.
	if ts := o.Timestamp(); !math.IsInf(ts, 0) && !math.IsNaN(ts) {
		v.Timestamp = &ts
	}
	raw, _ := o.Field(observation.FieldTimestamp)
	t, err := parser.ParseTime(ft.TimeLayout, raw)
	if err != nil {
		wi.logger.Debug("failed to parse time of observation",
			slog.String("fileType", ft.Name),
			slog.String("timeLayout", ft.TimeLayout),
			slog.Any("error", err))
	} else {
		v.Time = &t
	}
	return v
}
