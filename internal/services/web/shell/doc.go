// Package shell renders every page through one shared app shell.
//
// The shell wraps the selected page in a single container node and injects the
// request's navigation state into the page props under RouterKey. It keeps no
// state between renders: each Invocation is built by the caller for exactly one
// Render call and dropped afterwards.
package shell
