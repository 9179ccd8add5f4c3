// Package pages holds the pages served by the web service and the routes
// that mount them.
package pages
