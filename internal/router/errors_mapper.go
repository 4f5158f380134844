package router

import (
	"context"
	"errors"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/credential"
	"github.com/hackmd-tools/hackmd-cli/internal/service"
	"github.com/hackmd-tools/hackmd-cli/internal/template"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// classify translates a handler error into a classified command error.
// Handlers may return a ready-made [models.CommandError] (parameter
// validation does); everything else is matched against the sentinel
// errors of the layers below.
func classify(err error) *models.CommandError {
	var cmdErr *models.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr
	}

	class := models.ClassLocalIOError
	switch {
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, credential.ErrNoCredential),
		errors.Is(err, adapter.ErrNoToken),
		errors.Is(err, adapter.ErrUnauthorized):
		class = models.ClassUnauthenticated

	case errors.Is(err, service.ErrLoginRejected):
		class = models.ClassAuthError

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, template.ErrNotFound):
		class = models.ClassClientError

	case errors.Is(err, adapter.ErrTransient),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		class = models.ClassTransientError

	case errors.Is(err, service.ErrLocalIO):
		class = models.ClassLocalIOError
	}

	return &models.CommandError{Class: class, Message: err.Error()}
}
