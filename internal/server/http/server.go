package internalhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/s1290025/worldtime-calendar/internal/app"
	"github.com/s1290025/worldtime-calendar/internal/session"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Host string
	Port int
	// BaseURL is the externally visible URL used to build calendar invite
	// links. Defaults to http://host:port.
	BaseURL string
}

type Server struct {
	srv      *http.Server
	addr     string
	baseURL  string
	app      *app.App
	sessions *session.Store
}

func NewServer(config Config, calendar *app.App) *Server {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://" + addr
	}
	s := &Server{
		addr:     addr,
		baseURL:  baseURL,
		app:      calendar,
		sessions: session.NewStore(),
	}
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

// Handler builds the routed handler; exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := runtime.NewServeMux()

	handle(mux, "POST", "/v1/events", s.addEvent)
	handle(mux, "PUT", "/v1/events/{id}", s.updateEvent)
	handle(mux, "DELETE", "/v1/events/{id}", s.removeEvent)

	handle(mux, "GET", "/v1/grids/day", s.dayGrid)
	handle(mux, "GET", "/v1/grids/multizone", s.multiZoneGrid)
	handle(mux, "GET", "/v1/grids/month", s.monthGrid)

	handle(mux, "GET", "/v1/timezones", s.listTimezones)
	handle(mux, "GET", "/v1/timezones/countries", s.listCountries)

	handle(mux, "POST", "/v1/calendars", s.addCalendar)
	handle(mux, "GET", "/v1/calendars", s.listCalendars)
	handle(mux, "GET", "/v1/calendars/{id}", s.getCalendar)
	handle(mux, "POST", "/v1/calendars/{id}/participants", s.addParticipant)
	handle(mux, "GET", "/v1/calendars/{id}/participants", s.listParticipants)
	handle(mux, "GET", "/v1/calendars/{id}/export.ics", s.exportCalendar)

	handle(mux, "POST", "/v1/sessions", s.addSession)
	handle(mux, "GET", "/v1/sessions/{token}", s.getSession)
	handle(mux, "DELETE", "/v1/sessions/{token}", s.removeSession)

	return loggingMiddleware(mux)
}

func handle(mux *runtime.ServeMux, method, path string, h runtime.HandlerFunc) {
	if err := mux.HandlePath(method, path, h); err != nil {
		log.Errorf("failed to register route %s %s: %v", method, path, err)
	}
}

func (s *Server) Start(_ context.Context) error {
	log.Printf("starting http server on %s", s.addr)
	err := s.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func getIP(req *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}

	if parsed := net.ParseIP(ip); parsed == nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}
	return ip, nil
}
