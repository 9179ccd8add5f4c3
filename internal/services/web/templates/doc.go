// Package templates holds the shared document, container and error components.
package templates
