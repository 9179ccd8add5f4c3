// Package sqlite provides the SQLite-backed web props cache.
//
// The store owns only derived data and can be deleted and rebuilt from route
// loaders at any time.
package sqlite
