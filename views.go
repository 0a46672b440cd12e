package actionopts

// Typed views filled by Options.Decode. Embedding follows the kind hierarchy;
// unset nullable fields stay nil.

type ActionOptions struct {
	Speed *float64 `json:"speed"`
}

type OffsetOptions struct {
	ActionOptions
	OffsetX *int `json:"offsetX"`
	OffsetY *int `json:"offsetY"`
}

type ElementScreenshotOptions struct {
	OffsetOptions
	CropX      *int `json:"cropX"`
	CropY      *int `json:"cropY"`
	CropWidth  *int `json:"cropWidth"`
	CropHeight *int `json:"cropHeight"`
}

type Modifiers struct {
	Ctrl  bool `json:"ctrl"`
	Alt   bool `json:"alt"`
	Shift bool `json:"shift"`
	Meta  bool `json:"meta"`
}

type MouseOptions struct {
	OffsetOptions
	Modifiers Modifiers `json:"modifiers"`
}

type ClickOptions struct {
	MouseOptions
	CaretPos *int `json:"caretPos"`
}

// MoveOptions shadows the embedded speed: move speed is not range-checked.
type MoveOptions struct {
	MouseOptions
	Speed          *float64 `json:"speed"`
	MinMovingTime  *float64 `json:"minMovingTime"`
	HoldLeftButton bool     `json:"holdLeftButton"`
	SkipScrolling  bool     `json:"skipScrolling"`
}

type TypeOptions struct {
	ClickOptions
	Replace bool `json:"replace"`
	Paste   bool `json:"paste"`
}

type DragToElementOptions struct {
	MouseOptions
	DestinationOffsetX *int `json:"destinationOffsetX"`
	DestinationOffsetY *int `json:"destinationOffsetY"`
}

type ResizeToFitDeviceOptions struct {
	PortraitOrientation bool `json:"portraitOrientation"`
}

type AssertionOptions struct {
	Timeout *int `json:"timeout"`
}
