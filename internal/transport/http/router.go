package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/monad-dog/dogpark/internal/config"
)

func NewRouter(st Store, cfg config.ServerConfig) *chi.Mux {
	h := NewHandlers(st, cfg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(CORSMiddleware())

	r.With(APILogMiddleware()).Get("/health", h.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/health", h.Health())
		r.Get("/leaderboard", h.Leaderboard())

		r.Route("/xp/{address}", func(r chi.Router) {
			r.Use(WalletAddressMiddleware())
			r.Get("/", h.GetXP())
			r.Post("/", h.PostXP())
		})
		r.Route("/stats/{address}", func(r chi.Router) {
			r.Use(WalletAddressMiddleware())
			r.Get("/", h.Stats())
		})
		r.Route("/collection/{address}", func(r chi.Router) {
			r.Use(WalletAddressMiddleware())
			r.Get("/", h.GetCollection())
			r.Post("/", h.PostCollection())
		})
		r.Route("/challenges/{address}", func(r chi.Router) {
			r.Use(WalletAddressMiddleware())
			r.Get("/", h.GetChallenges())
			r.Post("/", h.PostChallenges())
		})
	})

	r.With(APILogMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
