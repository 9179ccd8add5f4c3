package templates

import (
	"context"
	"fmt"

	"golang.org/x/text/message"
)

// Localizer translates message keys for components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

type localizerKey struct{}

// WithLocalizer stores loc on ctx for components rendered beneath it.
func WithLocalizer(ctx context.Context, loc Localizer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localizerKey{}, loc)
}

// LocalizerFrom returns the localizer stored on ctx, or nil.
func LocalizerFrom(ctx context.Context) Localizer {
	if ctx == nil {
		return nil
	}
	loc, _ := ctx.Value(localizerKey{}).(Localizer)
	return loc
}

// T translates key with loc. Without a localizer a string key is its own
// format, so copy stays readable in fallbacks.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	format, ok := key.(string)
	switch {
	case !ok:
		return ""
	case len(args) == 0:
		return format
	default:
		return fmt.Sprintf(format, args...)
	}
}
