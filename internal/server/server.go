package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Port      int
	PublicURL string
	Store     store.Store
	Rules     engine.GameConfig
	Seed      uint64
	Logger    *logrus.Logger
}

func (o Options) logger() *logrus.Entry {
	if o.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.NewEntry(o.Logger)
}

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	log      *logrus.Entry
}

func New(opts Options) *Server {
	return &Server{
		handlers: NewHandlers(opts),
		port:     opts.Port,
		log:      opts.logger(),
	}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.handlers.Healthz)
	r.GET("/ws", s.handlers.WS)

	api := r.Group("/api")
	{
		api.POST("/tables", s.handlers.CreateTable)
		api.GET("/tables", s.handlers.ListTables)
		api.GET("/tables/:id", s.handlers.GetTable)
		api.DELETE("/tables/:id", s.handlers.CloseTable)
		api.GET("/tables/:id/state", s.handlers.GetState)
		api.GET("/tables/:id/qr", s.handlers.QR)

		api.GET("/saves", s.handlers.ListSaves)
		api.DELETE("/saves/:name", s.handlers.DeleteSave)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("http request")
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("roi & compagnie server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.handlers.Shutdown()
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.handlers.Shutdown()
	if err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
