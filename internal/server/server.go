package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/enshire/job-board/internal/config"
	"github.com/enshire/job-board/internal/middleware"
)

type Server struct {
	cfg          config.Config
	DB           *mongo.Database
	router       *mux.Router
	SessionStore *sessions.CookieStore
}

func NewServer(
	cfg config.Config,
	db *mongo.Database,
	r *mux.Router,
	sessionStore *sessions.CookieStore,
) Server {
	// todo: move somewhere else
	raven.SetDSN(cfg.SentryDSN)

	return Server{
		cfg:          cfg,
		DB:           db,
		router:       r,
		SessionStore: sessionStore,
	}
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) TEXT(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func (s Server) Log(err error, msg string) {
	raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	log.Printf("%s: %+v", msg, err)
}

func (s Server) PingStore(r *http.Request) error {
	return s.DB.Client().Ping(r.Context(), readpref.Primary())
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		log.Printf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(
		addr,
		middleware.HTTPSMiddleware(
			middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env)),
			s.cfg.Env,
		),
	)
}
