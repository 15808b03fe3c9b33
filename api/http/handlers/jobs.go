package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/listing"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/search"
	"github.com/artem13815/jobsearch/pkg/session"
)

// JobsHandler drives the job list of the caller's workspace.
type JobsHandler struct {
	searcher search.Searcher
	sessions *session.Registry
	auth     auth.Provider
	log      *logging.Logger
}

func NewJobsHandler(searcher search.Searcher, sessions *session.Registry, provider auth.Provider, log *logging.Logger) *JobsHandler {
	return &JobsHandler{searcher: searcher, sessions: sessions, auth: provider, log: log}
}

func (h *JobsHandler) browser(c *fiber.Ctx) (*listing.Browser, bool) {
	u, ok := currentUser(c, h.auth)
	if !ok {
		return nil, false
	}
	return h.sessions.Workspace(u.ID).Browser, true
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// @Summary     Search jobs
// @Description Runs the external search and replaces the current result set. Filters, query and page are reset.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       input body searchRequest true "search term"
// @Security    BearerAuth
// @Success     200 {object} listing.View
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Router      /jobs/search [post]
func (h *JobsHandler) Search(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	term := strings.TrimSpace(req.SearchTerm)
	jobs, err := h.searcher.Search(c.UserContext(), term)
	if err != nil {
		return fail(c, h.log, err)
	}
	b.SetJobs(term, jobs)
	return presenter.JSON(c, http.StatusOK, b.View())
}

// @Summary  Current job list view
// @Tags     jobs
// @Produce  json
// @Param    page query int false "switch to this page first"
// @Security BearerAuth
// @Success  200 {object} listing.View
// @Router   /jobs [get]
func (h *JobsHandler) View(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	if page, ok := parsePage(c); ok {
		b.SetPage(page)
	}
	return presenter.JSON(c, http.StatusOK, b.View())
}

type pageRequest struct {
	Page int `json:"page"`
}

// @Summary  Set page
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Param    input body pageRequest true "page number, 1-based"
// @Security BearerAuth
// @Success  200 {object} listing.View
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /jobs/page [put]
func (h *JobsHandler) SetPage(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	var req pageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	b.SetPage(req.Page)
	return presenter.JSON(c, http.StatusOK, b.View())
}

type toggleRequest struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

// @Summary     Toggle a filter value
// @Description Adds the value to the dimension's set if absent, removes it otherwise. Resets the page to 1.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       input body toggleRequest true "employmentType | municipality | experience"
// @Security    BearerAuth
// @Success     200 {object} listing.View
// @Failure     400 {object} presenter.ErrorResponse
// @Router      /jobs/filters/toggle [post]
func (h *JobsHandler) Toggle(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	d, err := listing.ParseDimension(req.Dimension)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := b.Toggle(d, req.Value); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, b.View())
}

// @Summary  Clear all filters
// @Tags     jobs
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} listing.View
// @Router   /jobs/filters [delete]
func (h *JobsHandler) ClearFilters(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	b.ClearFilters()
	return presenter.JSON(c, http.StatusOK, b.View())
}

type queryRequest struct {
	Query string `json:"query"`
}

// @Summary  Keyword filter within the current result set
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Param    input body queryRequest true "keyword"
// @Security BearerAuth
// @Success  200 {object} listing.View
// @Router   /jobs/query [put]
func (h *JobsHandler) SetQuery(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	b.SetQuery(req.Query)
	return presenter.JSON(c, http.StatusOK, b.View())
}

// @Summary  Job from the current result set
// @Tags     jobs
// @Produce  json
// @Param    id path string true "job id"
// @Security BearerAuth
// @Success  200 {object} job.Job
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id} [get]
func (h *JobsHandler) GetByID(c *fiber.Ctx) error {
	b, ok := h.browser(c)
	if !ok {
		return unauthorized(c)
	}
	j, found := b.Job(c.Params("id"))
	if !found {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return presenter.JSON(c, http.StatusOK, j)
}
