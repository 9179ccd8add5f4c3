package templates

import (
	"io"

	"github.com/a-h/templ"
)

// HTMLWriter emits markup in sequence and keeps the first write error.
type HTMLWriter struct {
	w   io.Writer
	err error
}

// NewHTMLWriter returns a writer emitting markup to w.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

// Raw writes s without escaping.
func (hw *HTMLWriter) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s as escaped text content.
func (hw *HTMLWriter) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Attr writes a leading-space attribute with an escaped value.
func (hw *HTMLWriter) Attr(name, value string) {
	hw.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Link writes an anchor to href labelled with escaped text.
func (hw *HTMLWriter) Link(href, label string) {
	hw.Raw("<a")
	hw.Attr("href", href)
	hw.Raw(">")
	hw.Text(label)
	hw.Raw("</a>")
}

// Err returns the first write error.
func (hw *HTMLWriter) Err() error {
	return hw.err
}
