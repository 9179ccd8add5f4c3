// Package storage declares persistence interfaces for web-owned cache data.
//
// Cached page props are always derived from route loaders and can be dropped
// at any time; they never become a source of truth.
package storage
