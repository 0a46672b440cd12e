package actionopts

import "context"

// Builtin is the catalog bound to DefaultPredicates.
var Builtin = MustCatalog(DefaultPredicates())

func builtin(ctx context.Context, kind string, raw map[string]any, validate bool) (*Options, error) {
	k, _ := Builtin.Kind(kind)
	return k.New(ctx, raw, validate)
}

// NewActionOptions builds action options (speed).
func NewActionOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindAction, raw, validate)
}

// NewOffsetOptions builds action options with offsetX/offsetY.
func NewOffsetOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindOffset, raw, validate)
}

// NewElementScreenshotOptions builds element screenshot options. When a crop
// origin and a non-zero crop size are set the offset is centered on the crop
// rectangle, replacing any offset given in raw.
func NewElementScreenshotOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindElementScreenshot, raw, validate)
}

// NewMouseOptions builds mouse options with key modifiers.
func NewMouseOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindMouse, raw, validate)
}

// NewClickOptions builds click options.
func NewClickOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindClick, raw, validate)
}

// NewMoveOptions builds move options. speed, minMovingTime and
// holdLeftButton are never validated.
func NewMoveOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindMove, raw, validate)
}

// NewTypeOptions builds type-text options.
func NewTypeOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindType, raw, validate)
}

// NewDragToElementOptions builds drag-to-element options.
func NewDragToElementOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindDragToElement, raw, validate)
}

// NewResizeToFitDeviceOptions builds resize-to-fit-device options.
func NewResizeToFitDeviceOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindResizeToFitDevice, raw, validate)
}

// NewAssertionOptions builds assertion options.
func NewAssertionOptions(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	return builtin(ctx, KindAssertion, raw, validate)
}
