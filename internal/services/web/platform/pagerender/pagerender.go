// Package pagerender centralizes shell page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rpominov/reason-next/internal/services/web/platform/httpx"
	"github.com/rpominov/reason-next/internal/services/web/templates"
)

// Page describes a shell response for both full-page and HTMX flows.
type Page struct {
	Title      string
	AppName    string
	Lang       string
	StatusCode int
	// Data is embedded as the client data script on full-page responses.
	Data any
	// Body is the container output. HTMX requests receive it alone.
	Body templ.Component
}

// WritePage renders page into a buffer and writes it with its status.
// Nothing is written when rendering fails.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		doc := templates.Document(templates.DocumentOptions{
			Title:   page.Title,
			AppName: page.AppName,
			Lang:    page.Lang,
			Data:    page.Data,
		})
		if err := doc.Render(templ.WithChildren(ctx, body), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
