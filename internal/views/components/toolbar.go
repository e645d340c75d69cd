package components

import (
	"instafilter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the filter and save actions below the sliders
type Toolbar struct {
	container    *fyne.Container
	filterLabel  *widget.Label
	filterButton *widget.Button
	clearButton  *widget.Button
	saveButton   *widget.Button

	changeFilterHandler func()
	clearHandler        func()
	saveHandler         func()

	currentFilter models.FilterKind
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.filterLabel = widget.NewLabel("")
	t.SetCurrentFilter(models.DefaultFilter)

	t.filterButton = widget.NewButtonWithIcon("Change Filter", theme.ColorPaletteIcon(), nil)

	t.clearButton = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), nil)
	t.clearButton.Disable()

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), nil)
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.filterButton,
		t.filterLabel,
		layout.NewSpacer(),
		t.clearButton,
		t.saveButton,
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.filterButton.OnTapped = func() {
		if t.changeFilterHandler != nil {
			t.changeFilterHandler()
		}
	}

	t.clearButton.OnTapped = func() {
		if t.clearHandler != nil {
			t.clearHandler()
		}
	}

	t.saveButton.OnTapped = func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	}
}

// SetChangeFilterHandler sets the handler for the filter button
func (t *Toolbar) SetChangeFilterHandler(handler func()) {
	t.changeFilterHandler = handler
}

// SetClearHandler sets the handler that ends the editing session
func (t *Toolbar) SetClearHandler(handler func()) {
	t.clearHandler = handler
}

// SetSaveHandler sets the save handler
func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

// SetCurrentFilter shows the active filter name
func (t *Toolbar) SetCurrentFilter(kind models.FilterKind) {
	t.currentFilter = kind
	t.filterLabel.SetText(kind.Descriptor().DisplayName)
}

// GetCurrentFilter returns the filter shown in the toolbar
func (t *Toolbar) GetCurrentFilter() models.FilterKind {
	return t.currentFilter
}

// SetSaveEnabled enables the save and clear buttons once there is an output
func (t *Toolbar) SetSaveEnabled(enabled bool) {
	if enabled {
		t.saveButton.Enable()
		t.clearButton.Enable()
	} else {
		t.saveButton.Disable()
		t.clearButton.Disable()
	}
}

// SaveEnabled reports whether the save button accepts taps
func (t *Toolbar) SaveEnabled() bool {
	return !t.saveButton.Disabled()
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
