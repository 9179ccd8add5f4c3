package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPageTitle returns the browser title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, "error.title") + " " + http.StatusText(normalizeErrorStatus(statusCode))
}

// ErrorState renders the localized error body shown inside the shell container.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	statusCode = normalizeErrorStatus(statusCode)
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := NewHTMLWriter(w)
		hw.Raw(`<section id="app-error"`)
		hw.Attr("data-status", strconv.Itoa(statusCode))
		hw.Raw("><h1>")
		hw.Text(http.StatusText(statusCode))
		hw.Raw("</h1><p>")
		hw.Text(errorMessage(statusCode, loc))
		hw.Raw("</p>")
		hw.Link("/", T(loc, "error.back_home"))
		hw.Raw("</section>")
		return hw.Err()
	})
}

func errorMessage(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, "error.not_found")
	case http.StatusBadRequest:
		return T(loc, "error.bad_request")
	case http.StatusServiceUnavailable:
		return T(loc, "error.unavailable")
	default:
		return T(loc, "error.internal")
	}
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode < http.StatusBadRequest || http.StatusText(statusCode) == "" {
		return http.StatusInternalServerError
	}
	return statusCode
}
