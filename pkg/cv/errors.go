package cv

import (
	"errors"
	"fmt"

	"github.com/artem13815/jobsearch/pkg/apperr"
)

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrProfileFetchFailed = errors.New("profile fetch failed")

	ErrUnknownTemplate = fmt.Errorf("%w: unknown template", apperr.ErrValidation)
	ErrTemplateNotFree = fmt.Errorf("%w: template is not free", apperr.ErrValidation)

	ErrGenerationRequestFailed = fmt.Errorf("%w: cv generation request failed", apperr.ErrUpstream)
	// ErrNoContentReturned is a 2xx reply with neither html nor url.
	ErrNoContentReturned = fmt.Errorf("%w: no content returned", apperr.ErrMalformedResponse)

	ErrSubmitInFlight    = errors.New("a submission is already in flight")
	ErrInvalidTransition = errors.New("invalid dialog transition")
	ErrDialogClosed      = errors.New("dialog is closed")
)
