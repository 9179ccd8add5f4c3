package templates

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/rpominov/reason-next/internal/services/web/shell"
)

// ShellDataID is the id of the script element carrying the render payload.
const ShellDataID = "__SHELL_DATA__"

// StylesheetPath is the stylesheet linked from every document.
const StylesheetPath = "/static/shell.css"

// DocumentOptions configures the full HTML document around the shell.
type DocumentOptions struct {
	Title   string
	AppName string
	Lang    string
	// Data is serialized into the shell data script when non-nil.
	Data any
}

// Titled is implemented by pages that contribute a document title.
type Titled interface {
	Title(loc Localizer, props shell.Props) string
}

// TitleOf returns the title page contributes, or "" when it has none.
func TitleOf(page any, loc Localizer, props shell.Props) string {
	titled, ok := page.(Titled)
	if !ok {
		return ""
	}
	return strings.TrimSpace(titled.Title(loc, props))
}

// PageTitle joins a page title and the app name.
func PageTitle(loc Localizer, title, appName string) string {
	title = strings.TrimSpace(title)
	appName = strings.TrimSpace(appName)
	switch {
	case title == "":
		return appName
	case appName == "":
		return title
	default:
		return T(loc, "title.suffix", title, appName)
	}
}

// Document renders a full HTML document whose body is the context children.
func Document(opts DocumentOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := strings.TrimSpace(opts.Lang)
		if lang == "" {
			lang = "en-US"
		}
		hw := NewHTMLWriter(w)
		hw.Raw("<!doctype html><html")
		hw.Attr("lang", lang)
		hw.Raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		hw.Text(strings.TrimSpace(opts.Title))
		hw.Raw(`</title><link rel="stylesheet"`)
		hw.Attr("href", StylesheetPath)
		hw.Raw("></head><body>")
		if hw.Err() != nil {
			return hw.Err()
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		if opts.Data != nil {
			if err := ShellData(opts.Data).Render(ctx, w); err != nil {
				return err
			}
		}
		hw.Raw("</body></html>")
		return hw.Err()
	})
}

// ShellData renders data as a JSON script element for client code.
func ShellData(data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		hw := NewHTMLWriter(w)
		hw.Raw("<script")
		hw.Attr("id", ShellDataID)
		hw.Attr("type", "application/json")
		hw.Raw(">")
		hw.Raw(string(payload))
		hw.Raw("</script>")
		return hw.Err()
	})
}
