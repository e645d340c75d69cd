package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 600
	ImageAreaHeight = 450
)

// ImageDisplay shows the filtered preview. Tapping it asks for a new picture.
type ImageDisplay struct {
	widget.BaseWidget

	preview    *canvas.Image
	background *canvas.Rectangle
	prompt     *widget.Label

	tapHandler func()
	hasImage   bool
}

// NewImageDisplay creates an empty preview area
func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.ExtendBaseWidget(display)
	return display
}

func (id *ImageDisplay) createComponents() {
	id.background = canvas.NewRectangle(color.RGBA{R: 240, G: 240, B: 240, A: 255})
	id.background.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	id.preview = canvas.NewImageFromImage(nil)
	id.preview.FillMode = canvas.ImageFillContain
	id.preview.ScaleMode = canvas.ImageScaleSmooth
	id.preview.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	id.prompt = widget.NewLabelWithStyle("Tap to select a picture", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

// CreateRenderer implements fyne.Widget
func (id *ImageDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(
		id.background,
		id.preview,
		container.NewCenter(id.prompt),
	))
}

// Tapped implements fyne.Tappable
func (id *ImageDisplay) Tapped(_ *fyne.PointEvent) {
	if id.tapHandler != nil {
		id.tapHandler()
	}
}

// SetTapHandler sets the handler for taps on the preview
func (id *ImageDisplay) SetTapHandler(handler func()) {
	id.tapHandler = handler
}

// SetImage shows img, or the prompt when img is nil
func (id *ImageDisplay) SetImage(img image.Image) {
	id.hasImage = img != nil
	if img == nil {
		id.preview.Image = nil
		id.prompt.Show()
	} else {
		id.preview.Image = img
		id.prompt.Hide()
	}
	id.preview.Refresh()
}

// HasImage reports whether a preview is shown
func (id *ImageDisplay) HasImage() bool {
	return id.hasImage
}
