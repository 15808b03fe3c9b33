package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/jobfile"
	"github.com/artem13815/jobsearch/pkg/logging"
)

// JobFileHandler serves local job lists at /api/jobs.
type JobFileHandler struct {
	lookup *jobfile.Lookup
	log    *logging.Logger
}

func NewJobFileHandler(lookup *jobfile.Lookup, log *logging.Logger) *JobFileHandler {
	return &JobFileHandler{lookup: lookup, log: log}
}

// Get handles GET /api/jobs?filename=<name>. It lives outside /api/v1 and
// needs no token.
func (h *JobFileHandler) Get(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("filename"))
	if name == "" {
		return presenter.JSON(c, http.StatusBadRequest, presenter.FetchError{Error: "Filename is required"})
	}
	raw, err := h.lookup.Find(name)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return presenter.JSON(c, http.StatusBadRequest, presenter.FetchError{Error: "Invalid filename"})
		}
		h.log.Warn("job file lookup failed", "filename", name, "err", err)
		return presenter.JSON(c, http.StatusNotFound, presenter.FetchError{Error: "Failed to fetch jobs"})
	}
	return presenter.RawJSON(c, http.StatusOK, raw)
}
