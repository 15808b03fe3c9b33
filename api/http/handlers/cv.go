package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/api/http/presenter"
	"github.com/artem13815/jobsearch/pkg/cv"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/session"
)

// CVHandler exposes the "create CV" dialogs of the caller's workspace.
type CVHandler struct {
	deps     cv.Deps
	sessions *session.Registry
	log      *logging.Logger
}

func NewCVHandler(deps cv.Deps, sessions *session.Registry, log *logging.Logger) *CVHandler {
	return &CVHandler{deps: deps, sessions: sessions, log: log}
}

// @Summary Template catalog
// @Tags    cv
// @Produce json
// @Success 200 {array} cv.Template
// @Router  /cv/templates [get]
func (h *CVHandler) Templates(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, h.deps.Catalog.List())
}

type openDialogRequest struct {
	JobID         string `json:"jobId"`
	ViewportWidth int    `json:"viewportWidth"`
}

// @Summary     Open a CV dialog
// @Description Opens a dialog for a job of the current result set and loads the profile.
// @Tags        cv
// @Accept      json
// @Produce     json
// @Param       input body openDialogRequest true "job and viewport width in px (0 = unknown)"
// @Security    BearerAuth
// @Success     201 {object} cv.Snapshot
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /cv/dialogs [post]
func (h *CVHandler) Open(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.deps.Auth)
	if !ok {
		return fail(c, h.log, cv.ErrAuthRequired)
	}
	var req openDialogRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	ws := h.sessions.Workspace(u.ID)
	j, found := ws.Browser.Job(req.JobID)
	if !found {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}

	d := cv.NewDialog(h.deps, j, req.ViewportWidth)
	ws.AddDialog(d)
	if err := d.Open(c.UserContext()); err != nil {
		// a failed profile fetch leaves the dialog open for a retry
		if d.Snapshot().State != cv.StateFailed {
			ws.CloseDialog(d.ID())
		}
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, d.Snapshot())
}

func (h *CVHandler) dialog(c *fiber.Ctx) (*session.Workspace, *cv.Dialog, error) {
	u, ok := currentUser(c, h.deps.Auth)
	if !ok {
		return nil, nil, cv.ErrAuthRequired
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, nil, fiber.NewError(http.StatusBadRequest, "invalid dialog id")
	}
	ws := h.sessions.Workspace(u.ID)
	d, err := ws.Dialog(id)
	if err != nil {
		return nil, nil, err
	}
	return ws, d, nil
}

func (h *CVHandler) dialogError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenter.Error(c, fe.Code, fe.Message)
	}
	return fail(c, h.log, err)
}

// @Summary  Dialog snapshot
// @Tags     cv
// @Produce  json
// @Param    id path string true "dialog id"
// @Security BearerAuth
// @Success  200 {object} cv.Snapshot
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /cv/dialogs/{id} [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	_, d, err := h.dialog(c)
	if err != nil {
		return h.dialogError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, d.Snapshot())
}

// @Summary     Retry a failed profile load
// @Tags        cv
// @Produce     json
// @Param       id path string true "dialog id"
// @Security    BearerAuth
// @Success     200 {object} cv.Snapshot
// @Failure     409 {object} presenter.ErrorResponse
// @Failure     503 {object} presenter.ErrorResponse
// @Router      /cv/dialogs/{id}/reload [post]
func (h *CVHandler) Reload(c *fiber.Ctx) error {
	_, d, err := h.dialog(c)
	if err != nil {
		return h.dialogError(c, err)
	}
	if err := d.Open(c.UserContext()); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, d.Snapshot())
}

type viewportRequest struct {
	Width int `json:"width"`
}

// @Summary  Report a viewport resize
// @Tags     cv
// @Accept   json
// @Produce  json
// @Param    id    path string          true "dialog id"
// @Param    input body viewportRequest true "width in px"
// @Security BearerAuth
// @Success  200 {object} cv.Snapshot
// @Router   /cv/dialogs/{id}/viewport [put]
func (h *CVHandler) Viewport(c *fiber.Ctx) error {
	_, d, err := h.dialog(c)
	if err != nil {
		return h.dialogError(c, err)
	}
	var req viewportRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := d.SetViewport(req.Width); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, d.Snapshot())
}

// @Summary     Generate the CV
// @Description Desktop: {mode:new_tab} with html or url, the dialog closes. Mobile: {mode:deferred} with a link to the stored document, the dialog stays open.
// @Tags        cv
// @Accept      json
// @Produce     json
// @Param       id    path string        true "dialog id"
// @Param       input body cv.SubmitForm true "template and edited profile"
// @Security    BearerAuth
// @Success     200 {object} cv.Presentation
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     409 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Router      /cv/dialogs/{id}/submit [post]
func (h *CVHandler) Submit(c *fiber.Ctx) error {
	ws, d, err := h.dialog(c)
	if err != nil {
		return h.dialogError(c, err)
	}
	var form cv.SubmitForm
	if err := c.BodyParser(&form); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := d.Submit(c.UserContext(), form)
	if err != nil {
		return fail(c, h.log, err)
	}
	if d.Closed() {
		ws.CloseDialog(d.ID())
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Close a dialog
// @Tags     cv
// @Param    id path string true "dialog id"
// @Security BearerAuth
// @Success  204
// @Router   /cv/dialogs/{id} [delete]
func (h *CVHandler) Close(c *fiber.Ctx) error {
	u, ok := currentUser(c, h.deps.Auth)
	if !ok {
		return fail(c, h.log, cv.ErrAuthRequired)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid dialog id")
	}
	h.sessions.Workspace(u.ID).CloseDialog(id)
	return c.SendStatus(http.StatusNoContent)
}
