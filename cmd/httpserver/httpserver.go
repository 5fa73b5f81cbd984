// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/payments-engine/internal/middleware"
	"github.com/go-petr/payments-engine/internal/replaydelivery"
	"github.com/go-petr/payments-engine/pkg/configpkg"
)

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated handlers and routes.
func New(service replaydelivery.Service, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	replayHandler := replaydelivery.NewHandler(service, config.MaxUploadBytes)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST("/replay", replayHandler.Replay)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("reportformat", replaydelivery.ValidFormat)
		if err != nil {
			return nil, errors.New("cannot register report format validator")
		}
	}

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}
