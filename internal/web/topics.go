package web

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"goboard/internal/models"

	"github.com/gorilla/mux"
)

// TopicStore is the content collection the pages read and the admin panel
// writes. store.Topics implements it over Mongo.
type TopicStore interface {
	Insert(ctx context.Context, topic *models.Topic) error
	Get(ctx context.Context, id string) (*models.Topic, error)
	List(ctx context.Context, category string) ([]models.Topic, error)
	Search(ctx context.Context, query string) ([]models.Topic, error)
	Categories(ctx context.Context) ([]string, error)
}

type topicListData struct {
	Category   string
	Categories []string
	Topics     []models.Topic
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.listTopics(w, r, "")
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	h.listTopics(w, r, mux.Vars(r)["name"])
}

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request, category string) {
	sess := h.sessions.Get(w, r)
	topics, err := h.topics.List(r.Context(), category)
	if err != nil {
		log.Printf("listing topics: %v", err)
	}
	categories, err := h.topics.Categories(r.Context())
	if err != nil {
		log.Printf("listing categories: %v", err)
	}
	title := "Topics"
	if category != "" {
		title = category
	}
	h.render(w, r, sess, "index.html", title, topicListData{
		Category:   category,
		Categories: categories,
		Topics:     topics,
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	query := r.URL.Query().Get("q")
	var topics []models.Topic
	if query != "" {
		var err error
		topics, err = h.topics.Search(r.Context(), query)
		if err != nil {
			log.Printf("searching topics: %v", err)
		}
	}
	h.render(w, r, sess, "search.html", "Search", struct {
		Query  string
		Topics []models.Topic
	}{query, topics})
}

func (h *Handler) Topic(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	topic, err := h.topics.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.redirect(w, r, sess, "That topic does not exist.", "/")
		return
	}
	h.render(w, r, sess, "topic.html", topic.Title, struct{ Topic *models.Topic }{topic})
}

func (h *Handler) AdminForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	h.render(w, r, sess, "admin.html", "Admin", nil)
}

// Admin publishes a topic when the submitted admin password matches the
// configured one. An empty configured password disables the panel.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	supplied := r.FormValue("admin_password")
	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(supplied), []byte(h.adminPassword)) != 1 {
		h.redirect(w, r, sess, "Wrong admin password.", "/admin")
		return
	}
	title := r.FormValue("title")
	category := r.FormValue("category")
	body := r.FormValue("body")
	if title == "" || category == "" || body == "" {
		h.redirect(w, r, sess, "All fields are required.", "/admin")
		return
	}
	author := ""
	if user := h.auth.CurrentUser(r.Context(), sess); user != nil {
		if user.Name != "" {
			author = user.Name
		} else {
			author = user.Email
		}
	}
	topic := &models.Topic{
		Title:     title,
		Body:      body,
		Category:  category,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.topics.Insert(r.Context(), topic); err != nil {
		log.Printf("inserting topic: %v", err)
		h.redirect(w, r, sess, "Something went wrong, please try again.", "/admin")
		return
	}
	h.redirect(w, r, sess, "Topic published.", "/topic/"+topic.ID.Hex())
}
