package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const readyStatus = "Ready"

// StatusBar displays the last action and the loaded image size
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.statusLabel = widget.NewLabel(readyStatus)
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis

	sb.container = container.NewBorder(nil, nil, nil, sb.imageInfo, sb.statusLabel)
	return sb
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetImageInfo shows the dimensions of the picture being edited
func (sb *StatusBar) SetImageInfo(width, height int) {
	sb.imageInfo.SetText(fmt.Sprintf("%d x %d", width, height))
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText(readyStatus)
	sb.imageInfo.SetText("No image loaded")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
