package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/coverletter"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
	"github.com/artem13815/jobsearch/pkg/session"
)

type CoverLetterHandler struct {
	svc      *coverletter.Service
	profiles *profile.Resolver
	sessions *session.Registry
	auth     auth.Provider
	log      *logging.Logger
}

func NewCoverLetterHandler(svc *coverletter.Service, profiles *profile.Resolver, sessions *session.Registry, provider auth.Provider, log *logging.Logger) *CoverLetterHandler {
	return &CoverLetterHandler{svc: svc, profiles: profiles, sessions: sessions, auth: provider, log: log}
}

type draftRequest struct {
	JobID string `json:"jobId"`
}

// @Summary     Draft a cover letter
// @Description Drafts introduction, body and conclusion for a job of the current result set. Nothing is stored.
// @Tags        cover-letters
// @Accept      json
// @Produce     json
// @Param       input body draftRequest true "job id"
// @Security    BearerAuth
// @Success     200 {object} coverletter.Draft
// @Failure     404 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /cover-letters/draft [post]
func (h *CoverLetterHandler) Draft(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.auth)
	if !ok {
		return unauthorized(c)
	}
	var req draftRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	j, found := h.sessions.Workspace(u.ID).Browser.Job(req.JobID)
	if !found {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	p, err := h.profiles.Resolve(c.UserContext(), u)
	if err != nil {
		return fail(c, h.log, err)
	}
	d, err := h.svc.Draft(c.UserContext(), p, j)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}
