package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/gops/agent"
	"github.com/julienschmidt/httprouter"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/grocerly/grocerly/auth"
	"github.com/grocerly/grocerly/connections"
	"github.com/grocerly/grocerly/controllers/api"
	"github.com/grocerly/grocerly/jobs"
	"github.com/grocerly/grocerly/middleware"
)

type myRouter struct {
	httprouter.Router
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (mr myRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	mr.Router.ServeHTTP(rw, r)
	log.WithFields(log.Fields{
		"method": r.Method,
		"IP":     r.RemoteAddr,
		"URI":    r.URL.Path,
		"status": rw.statusCode,
	}).Info("visit")
}

func newRouter() *myRouter {
	r := &myRouter{
		Router: *httprouter.New(),
	}
	return r
}

func main() {
	if err := connections.Migrate(context.Background()); err != nil {
		log.WithError(err).Fatal("Database Migration Failed")
	}

	log.Info("Start Jobs")
	startJobs()

	router := newRouter()

	// health check
	router.GET("/hello", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello World!"}`))
	})

	// auth apis
	router.POST("/api/auth/register", api.Register)
	router.POST("/api/auth/login", api.Login)
	router.POST("/api/auth/logout", api.Logout)
	router.GET("/api/auth/me", auth.SessionAuth(api.Me))

	// item apis
	router.GET("/api/items", auth.SessionAuth(api.ListItems))
	router.POST("/api/items", auth.SessionAuth(api.CreateItem))
	router.PUT("/api/items/:id", auth.SessionAuth(api.UpdateItem))
	// DELETE also serves /api/items/clear-completed and /api/items/clear-all
	router.DELETE("/api/items/:id", auth.SessionAuth(api.DeleteItem))
	router.PATCH("/api/items/:id/toggle", auth.SessionAuth(api.ToggleItemStatus))

	// stats api (public)
	router.GET("/api/stats", api.GetStats)

	// gops agent
	if err := agent.Listen(agent.Options{Addr: ":6060", ShutdownCleanup: true}); err != nil {
		log.Fatal(err)
	}

	// Web Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	log.Info("Web Server Start on Port " + port)
	srv := http.Server{
		Addr:    ":" + port,
		Handler: middleware.CORS(router),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("Shutdown Web Server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Web Server Shutdown Failed")
	}
	connections.ClosePostgres()
	connections.CloseRedis()
	log.Info("Web Server Was Been Shutdown")
}

func startJobs() {
	go jobs.NewStatsAggregator().Run()
	c := cron.New()
	c.AddJob("@hourly", jobs.NewStatsAggregator())
	c.Start()
}
