package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tiaraw/portfolio-backend/database"
	"github.com/tiaraw/portfolio-backend/errs"
	"github.com/tiaraw/portfolio-backend/models"
)

// maxUploadSize bounds multipart uploads (CV files, images).
const maxUploadSize = 32 << 20 // 32MB

// uploadBuckets are the only buckets the admin panel may write to.
var uploadBuckets = map[string]bool{
	"project-images": true,
	"profile-images": true,
	"cv-files":       true,
	"popup-images":   true,
}

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *database.ContentStore
}

func newAdminHandler(store *database.ContentStore) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getCollection returns the raw rows of a collection for the editor. For
// singleton collections the single row (or null) is returned instead of a
// list.
func (h adminHandler) getCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := models.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			h.responder.WriteError(w, errs.NewUnknownCollectionError(chi.URLParam(r, "collection")))
			return
		}

		if collection.IsSingleton() {
			h.responder.WriteJSON(w, map[string]any{
				"collection": collection,
				"data":       h.store.GetOne(collection),
			})
			return
		}

		records := h.store.Get(collection)
		if records == nil {
			records = []database.Record{}
		}
		h.responder.WriteJSON(w, map[string]any{
			"collection": collection,
			"data":       records,
		})
	}
}

// setCollection writes a full replacement payload to a collection through the
// facade; the write strategy is the collection's own.
func (h adminHandler) setCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := models.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			h.responder.WriteError(w, errs.NewUnknownCollectionError(chi.URLParam(r, "collection")))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var payload any
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if collection == models.CollectionProjects {
			if apiErr := validateProjectPayload(bodyBytes); apiErr != nil {
				h.responder.WriteError(w, apiErr)
				return
			}
		}

		if err := h.store.Set(collection, payload); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", string(collection), err))
			return
		}

		if gate, err := ctxGetGate(r.Context()); err == nil {
			h.logger.Info().
				Str("sessionId", gate.SessionID()).
				Str("collection", string(collection)).
				Msg("Content saved")
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "content saved successfully",
		})
	}
}

// validateProjectPayload enforces the fields the project form requires.
func validateProjectPayload(body []byte) *errs.ApiErr {
	var project models.Project
	if err := json.Unmarshal(body, &project); err != nil {
		return errs.NewBadRequestError("malformed project payload")
	}
	if project.Title == "" {
		return errs.NewBadRequestErrorWithField("missing required field", "title", "title is required")
	}
	if !models.ValidCategory(project.Category) {
		return errs.NewBadRequestErrorWithField("invalid field", "category", "category must be one of the portfolio categories")
	}
	return nil
}

func (h adminHandler) deleteRow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := models.ParseCollection(chi.URLParam(r, "collection"))
		if !ok {
			h.responder.WriteError(w, errs.NewUnknownCollectionError(chi.URLParam(r, "collection")))
			return
		}

		rowID, err := strconv.ParseInt(chi.URLParam(r, "rowID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid row id"))
			return
		}

		if !h.store.Delete(collection, rowID) {
			h.responder.WriteError(w, errs.NewInternalError("failed to delete row"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "row deleted successfully",
		})
	}
}

// uploadFile stores a multipart file in the named bucket and returns its
// public URL. An upload that fails yields no URL; the admin retriggers it
// manually.
func (h adminHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucket := chi.URLParam(r, "bucket")
		if !uploadBuckets[bucket] {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("unknown bucket", "bucket", "bucket is not an upload target"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "file", "file part is required"))
			return
		}
		defer file.Close()

		url := h.store.UploadFile(r.Context(), bucket, header.Filename, file, header.Header.Get("Content-Type"))
		if url == "" {
			h.responder.WriteError(w, errs.NewInternalError("upload failed"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status": "success",
			"url":    url,
		})
	}
}
