package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// maxUploadBytes bounds CV uploads for import.
const maxUploadBytes = 10 << 20

type ProfileHandler struct {
	resolver *profile.Resolver
	importer *profile.Importer
	auth     auth.Provider
	log      *logging.Logger
}

func NewProfileHandler(resolver *profile.Resolver, importer *profile.Importer, provider auth.Provider, log *logging.Logger) *ProfileHandler {
	return &ProfileHandler{resolver: resolver, importer: importer, auth: provider, log: log}
}

// @Summary     Current profile
// @Description Served from the cache while younger than 24h, otherwise re-read from the store.
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} profile.Profile
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.auth)
	if !ok {
		return unauthorized(c)
	}
	p, err := h.resolver.Resolve(c.UserContext(), u)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Update profile
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    input body profile.Edit true "editable profile fields; email is taken from the session"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.auth)
	if !ok {
		return unauthorized(c)
	}
	var e profile.Edit
	if err := c.BodyParser(&e); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.resolver.Update(c.UserContext(), u, e)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary     Import profile from a CV file
// @Description Extracts text from a PDF or DOCX upload and fills the non-empty profile fields found in it.
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CV (.pdf, .docx)"
// @Security    BearerAuth
// @Success     200 {object} profile.Profile
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /profile/import [post]
func (h *ProfileHandler) Import(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.auth)
	if !ok {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return presenter.Error(c, http.StatusBadRequest, "file is too large")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "only .pdf and .docx are supported")
	}
	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read file")
	}

	p, err := h.importer.Import(c.UserContext(), u, fh.Filename, data)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}
