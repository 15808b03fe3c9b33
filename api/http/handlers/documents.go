package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/document"
)

type DocumentHandler struct {
	store *document.Store
}

func NewDocumentHandler(store *document.Store) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// @Summary     Generated CV document
// @Description The deferred link handed out on mobile. The browser opens it directly, no token needed: the link expires after an hour and on the owner's logout.
// @Tags        cv
// @Produce     html
// @Param       id path string true "document id"
// @Success     200 {string} string "HTML"
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	d, err := h.store.Get(id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	// the url is the credential; keep it out of caches and referrers
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderReferrerPolicy, "no-referrer")
	return presenter.HTML(c, http.StatusOK, d.HTML)
}
