package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tiaraw/portfolio-backend/database"
	"github.com/tiaraw/portfolio-backend/errs"
	"github.com/tiaraw/portfolio-backend/models"
)

// relatedProjectLimit caps the "more like this" strip on the detail view.
const relatedProjectLimit = 3

type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *database.ContentStore
}

func newContentHandler(store *database.ContentStore) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// projectView is a project with its polymorphic image resolved to one URL.
type projectView struct {
	models.Project
	ImageURL string `json:"image_url"`
}

func newProjectView(p models.Project) projectView {
	return projectView{Project: p, ImageURL: p.ImageURL()}
}

// ProjectCollection represents all projects with a total count
type ProjectCollection struct {
	Projects []projectView `json:"projects"`
	Total    int           `json:"total"`
}

// ProjectDetail is the detail view: the project plus others in its category.
type ProjectDetail struct {
	Project projectView   `json:"project"`
	Related []projectView `json:"related"`
}

// getContent returns the full site content in one payload; the snapshot the
// home page renders from. Fetch failures surface as empty sections.
func (h contentHandler) getContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.store.Snapshot(r.Context()))
	}
}

func (h contentHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := h.store.Projects()

		views := make([]projectView, 0, len(projects))
		for _, project := range projects {
			views = append(views, newProjectView(project))
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: views,
			Total:    len(views),
		})
	}
}

func (h contentHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectIDStr := chi.URLParam(r, "projectID")
		projectID, err := strconv.ParseInt(projectIDStr, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project := h.store.Project(projectID)
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		related := h.store.RelatedProjects(*project, relatedProjectLimit)
		relatedViews := make([]projectView, 0, len(related))
		for _, p := range related {
			relatedViews = append(relatedViews, newProjectView(p))
		}

		h.responder.WriteJSON(w, ProjectDetail{
			Project: newProjectView(*project),
			Related: relatedViews,
		})
	}
}

func (h contentHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.store.Profile())
	}
}

func (h contentHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := h.store.Stats()
		if stats == nil {
			stats = []models.Stat{}
		}
		h.responder.WriteJSON(w, stats)
	}
}

func (h contentHandler) getFAQ() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faq := h.store.FAQ()
		if faq == nil {
			faq = []models.FAQ{}
		}
		h.responder.WriteJSON(w, faq)
	}
}

// getSocialLinks returns the raw handles alongside the render-ready hrefs
// (mailto:, wa.me) so the page never rebuilds them.
func (h contentHandler) getSocialLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := h.store.SocialLinks()
		if links == nil {
			h.responder.WriteJSON(w, nil)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"links": links,
			"hrefs": links.Hrefs(),
		})
	}
}

func (h contentHandler) getCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.store.CV())
	}
}

// getPopup returns the welcome popup settings only while the popup is
// switched on; otherwise null, and the page shows nothing.
func (h contentHandler) getPopup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		popup := h.store.PopupSettings()
		if popup == nil || !popup.IsActive {
			h.responder.WriteJSON(w, nil)
			return
		}
		h.responder.WriteJSON(w, popup)
	}
}
