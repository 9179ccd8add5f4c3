// Package routepath stores canonical HTTP paths for web pages.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root               = "/"
	RootPattern        = "/{$}"
	Health             = "/healthz"
	StaticPrefix       = "/static/"
	Hello              = "/hello"
	HelloPrefix        = "/hello/"
	HelloPattern       = HelloPrefix + "{name}"
	LegacyHelloPrefix  = "/hi/"
	LegacyHelloPattern = LegacyHelloPrefix + "{name}"
	About              = "/about"
	GreetingNameQuery  = "name"
)

// Greeting returns the greeting route for name, or Hello when name is blank.
func Greeting(name string) string {
	segment := escapeSegment(name)
	if segment == "" {
		return Hello
	}
	return HelloPrefix + segment
}

// LegacyGreeting returns the retired greeting route for name.
func LegacyGreeting(name string) string {
	return LegacyHelloPrefix + escapeSegment(name)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
