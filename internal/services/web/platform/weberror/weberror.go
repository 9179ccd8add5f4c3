// Package weberror renders the shared shell error responses.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/rpominov/reason-next/internal/services/web/platform/errors"
	"github.com/rpominov/reason-next/internal/services/web/platform/pagerender"
	"github.com/rpominov/reason-next/internal/services/web/templates"
)

// Options carries the request-scoped presentation state for error pages.
type Options struct {
	AppName   string
	Lang      string
	Localizer templates.Localizer
}

// ShouldRenderAppError reports whether status should use the error page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes the error page inside the shell container.
// HTMX requests receive the container fragment only.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, opts Options) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      templates.PageTitle(opts.Localizer, templates.ErrorPageTitle(statusCode, opts.Localizer), opts.AppName),
		AppName:    opts.AppName,
		Lang:       opts.Lang,
		StatusCode: statusCode,
		Body:       templates.AppContainer(opts.AppName).Wrap(templates.ErrorState(statusCode, opts.Localizer)),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// Write maps err to a status and writes the matching response.
// Statuses outside the error page set are written as plain text without
// leaking the internal message.
func Write(w http.ResponseWriter, r *http.Request, err error, opts Options) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, opts)
		return
	}
	http.Error(w, PublicMessage(opts.Localizer, err), statusCode)
}
