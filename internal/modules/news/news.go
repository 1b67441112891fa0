package news

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Post is an announcement shown to signed-in representatives.
type Post struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	ImageURL string    `json:"image_url,omitempty"`
}

// Feed lists the current announcements.
type Feed interface {
	List(ctx context.Context) ([]Post, error)
}

type staticFeed struct {
	now func() time.Time
}

// NewStaticFeed serves the built-in announcements, dated at request time.
func NewStaticFeed() Feed {
	return &staticFeed{now: time.Now}
}

func (f *staticFeed) List(_ context.Context) ([]Post, error) {
	now := f.now().UTC()
	return []Post{
		{
			ID:       "1",
			Title:    "Lançamento: Linha Niklaus Pro 2025",
			Content:  "Conheça a nova tecnologia de reconstrução capilar que está revolucionando os salões parceiros em todo o país.",
			Date:     now,
			ImageURL: "https://images.unsplash.com/photo-1522338242992-e1a54906a8da?q=80&w=800",
		},
		{
			ID:      "2",
			Title:   "Aviso Logístico: Feriado Nacional",
			Content: "Informamos que pedidos realizados entre os dias 15 e 17 terão prazo de entrega estendido em 48h.",
			Date:    now,
		},
	}, nil
}

type Handler struct {
	feed  Feed
	guard httpx.Guard
}

func NewHandler(feed Feed, guard httpx.Guard) *Handler {
	return &Handler{feed: feed, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(h.guard.Authenticate).Get("/api/v1/news", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feed.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, posts)
}
