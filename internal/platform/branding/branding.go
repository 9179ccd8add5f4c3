// Package branding holds product naming shared by services.
package branding

// AppName is the product name shown when no override is configured.
const AppName = "Reason Next"
