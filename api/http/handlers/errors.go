package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/coverletter"
	"github.com/artem13815/jobsearch/pkg/cv"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// fail maps a use-case error onto an HTTP status. Upstream failures are
// logged and answered with a generic message.
func fail(c *fiber.Ctx, log *logging.Logger, err error) error {
	switch {
	case errors.Is(err, cv.ErrAuthRequired):
		return presenter.Error(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, cv.ErrTemplateNotFree):
		return presenter.Error(c, http.StatusForbidden, "template is not free")
	case errors.Is(err, cv.ErrSubmitInFlight):
		return presenter.Error(c, http.StatusConflict, "a submission is already in flight")
	case errors.Is(err, cv.ErrInvalidTransition), errors.Is(err, cv.ErrDialogClosed):
		return presenter.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrValidation):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, profile.ErrLLMUnavailable), errors.Is(err, coverletter.ErrLLMUnavailable):
		return presenter.Error(c, http.StatusServiceUnavailable, "llm is not configured")
	case errors.Is(err, cv.ErrProfileFetchFailed), errors.Is(err, profile.ErrFetchFailed):
		log.Error("profile fetch failed", "path", c.Path(), "err", err)
		return presenter.Error(c, http.StatusServiceUnavailable, "profile is temporarily unavailable")
	case errors.Is(err, apperr.ErrUpstream):
		log.Error("upstream call failed", "path", c.Path(), "err", err)
		return presenter.Error(c, http.StatusBadGateway, "external service failed, please try again")
	default:
		log.Error("request failed", "path", c.Path(), "err", err)
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}

// currentUser reads the user bound by the JWT middleware.
func currentUser(c *fiber.Ctx, p auth.Provider) (auth.User, bool) {
	return p.CurrentUser(c.UserContext())
}

func unauthorized(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "cannot identify user")
}
