// Package landing serves the ServiLink landing page over HTTP.
package landing

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/ports/driving"
	"github.com/servilink/servilink-cli/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// FeaturedCount is the number of services shown on the landing page.
const FeaturedCount = 3

// ErrMissingSearchService is returned when no search service is provided.
var ErrMissingSearchService = errors.New("landing: search service is required")

// Step is one entry of the "how it works" section.
type Step struct {
	Title string
	Body  string
}

// Question is one FAQ entry.
type Question struct {
	Q string
	A string
}

var steps = []Step{
	{"Find a service", "Search the catalogue by text, price, rating and category."},
	{"Hire the vendor", "Pick a start date. The vendor accepts and the job begins."},
	{"Confirm and review", "Both sides confirm completion, then you leave a review."},
}

var faq = []Question{
	{"How do I hire a professional?", "Search for the service you need, check the vendor's reviews and send a hire request."},
	{"How do I pay?", "Pay the vendor directly once the job is confirmed by both sides."},
	{"Can I hire the same service again?", "Yes, once your previous job for it is completed or cancelled."},
}

type pageData struct {
	Featured []domain.Service
	Steps    []Step
	FAQ      []Question
	// Offline is set when the backend could not be reached.
	Offline bool
}

// Server renders the landing page.
type Server struct {
	search driving.SearchService
	engine *gin.Engine
}

// NewServer builds the gin engine. debug enables gin's request logger.
func NewServer(search driving.SearchService, debug bool) (*Server, error) {
	if search == nil {
		return nil, ErrMissingSearchService
	}

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": func(p float64) string { return "$" + strconv.FormatFloat(p, 'f', 2, 64) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	if debug {
		engine.Use(gin.Logger())
	}
	engine.SetHTMLTemplate(tmpl)

	s := &Server{search: search, engine: engine}
	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("landing: shutdown: %v", err)
		}
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleIndex(c *gin.Context) {
	data := pageData{Steps: steps, FAQ: faq}

	results, err := s.search.Search(c.Request.Context(), domain.SearchFilter{Sort: domain.SortRatingDesc})
	if err != nil {
		logger.Warn("landing: featured services: %v", err)
		data.Offline = true
	} else {
		data.Featured = featured(results, FeaturedCount)
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// featured returns up to n active services, best rated first.
func featured(results []domain.Service, n int) []domain.Service {
	out := make([]domain.Service, 0, n)
	for _, svc := range results {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgRating > out[j].AvgRating
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
