// Package web serves every page of the app through one shared shell.
//
// The engine resolves the route and locale for each request, runs the route
// loader, and renders the page inside the app container. Full page loads get
// an HTML document with the client data script; HTMX requests get the
// container fragment only.
package web
