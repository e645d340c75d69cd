package views

import (
	"image"
	"io"

	"instafilter/internal/models"
	"instafilter/internal/services"
	"instafilter/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainView is the single editing screen: preview, sliders and actions
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	imageDisplay  *components.ImageDisplay
	sliderPanel   *components.SliderPanel
	toolbar       *components.Toolbar
	statusBar     *components.StatusBar

	// Event handlers - connected to controller
	pickImageHandler    func()
	changeFilterHandler func()
	sliderChangeHandler func(models.Role, float64)
	saveImageHandler    func()
	clearImageHandler   func()
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.imageDisplay = components.NewImageDisplay()
	mv.sliderPanel = components.NewSliderPanel()
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	bottomArea := container.NewVBox(
		mv.sliderPanel.GetContainer(),
		mv.toolbar.GetContainer(),
		widget.NewSeparator(),
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		bottomArea,
		nil,
		nil,
		container.NewPadded(mv.imageDisplay),
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects component events to the controller handlers
func (mv *MainView) setupEventHandlers() {
	mv.imageDisplay.SetTapHandler(func() {
		if mv.pickImageHandler != nil {
			mv.pickImageHandler()
		}
	})

	mv.sliderPanel.SetChangeHandler(func(role models.Role, value float64) {
		if mv.sliderChangeHandler != nil {
			mv.sliderChangeHandler(role, value)
		}
	})

	mv.toolbar.SetChangeFilterHandler(func() {
		if mv.changeFilterHandler != nil {
			mv.changeFilterHandler()
		}
	})

	mv.toolbar.SetClearHandler(func() {
		if mv.clearImageHandler != nil {
			mv.clearImageHandler()
		}
	})

	mv.toolbar.SetSaveHandler(func() {
		if mv.saveImageHandler != nil {
			mv.saveImageHandler()
		}
	})
}

// Event handler setters - called by controller

// SetPickImageHandler sets the handler for picture selection
func (mv *MainView) SetPickImageHandler(handler func()) {
	mv.pickImageHandler = handler
}

// SetChangeFilterHandler sets the handler for the Change Filter action
func (mv *MainView) SetChangeFilterHandler(handler func()) {
	mv.changeFilterHandler = handler
}

// SetSliderChangeHandler sets the handler for slider movement
func (mv *MainView) SetSliderChangeHandler(handler func(models.Role, float64)) {
	mv.sliderChangeHandler = handler
}

// SetSaveImageHandler sets the handler for save image requests
func (mv *MainView) SetSaveImageHandler(handler func()) {
	mv.saveImageHandler = handler
}

// SetClearImageHandler sets the handler that ends the editing session
func (mv *MainView) SetClearImageHandler(handler func()) {
	mv.clearImageHandler = handler
}

// UI update methods - called by controller

// ShowImagePicker opens the file dialog. A nil reader with nil error means the user cancelled.
func (mv *MainView) ShowImagePicker(onPicked func(reader io.ReadCloser, name string, err error)) {
	fyne.Do(func() {
		picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				onPicked(nil, "", err)
				return
			}
			onPicked(reader, reader.URI().Name(), nil)
		}, mv.window)
		picker.SetFilter(storage.NewExtensionFileFilter(services.SupportedExtensions))
		picker.Show()
	})
}

// ShowFilterChooser lists every filter plus Cancel. Cancel chooses nothing.
func (mv *MainView) ShowFilterChooser(filters []models.FilterDescriptor, onChosen func(models.FilterKind)) {
	fyne.Do(func() {
		options := container.NewVBox()
		chooser := dialog.NewCustom("Select a filter", "Cancel", container.NewVScroll(options), mv.window)

		for _, descriptor := range filters {
			kind := descriptor.Kind
			options.Add(widget.NewButton(descriptor.DisplayName, func() {
				chooser.Hide()
				onChosen(kind)
			}))
		}

		chooser.Resize(fyne.NewSize(320, 480))
		chooser.Show()
	})
}

// UpdateControls shows the active filter and syncs the sliders to state
func (mv *MainView) UpdateControls(state models.EditorState) {
	fyne.Do(func() {
		mv.toolbar.SetCurrentFilter(state.Filter())
		mv.sliderPanel.Sync(state)
	})
}

// SetOutputImage updates the preview; nil restores the prompt
func (mv *MainView) SetOutputImage(img image.Image) {
	fyne.Do(func() {
		mv.imageDisplay.SetImage(img)
		if img == nil {
			mv.statusBar.Reset()
			return
		}
		bounds := img.Bounds()
		mv.statusBar.SetImageInfo(bounds.Dx(), bounds.Dy())
	})
}

// SetSaveEnabled toggles the save button
func (mv *MainView) SetSaveEnabled(enabled bool) {
	fyne.Do(func() {
		mv.toolbar.SetSaveEnabled(enabled)
	})
}

// ShowError displays an error dialog titled title
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(title + " " + err.Error())
		dialog.ShowInformation(title, err.Error(), mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(message)
		dialog.ShowInformation(title, message, mv.window)
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}

// ViewState is a snapshot of what the screen currently shows
type ViewState struct {
	HasImage      bool
	CurrentFilter models.FilterKind
	SaveEnabled   bool
	StatusMessage string
	SliderValues  map[models.Role]float64
	EnabledRoles  []models.Role
}

// GetViewState returns the current view state
func (mv *MainView) GetViewState() ViewState {
	state := ViewState{
		HasImage:      mv.imageDisplay.HasImage(),
		CurrentFilter: mv.toolbar.GetCurrentFilter(),
		SaveEnabled:   mv.toolbar.SaveEnabled(),
		StatusMessage: mv.statusBar.GetStatus(),
		SliderValues:  make(map[models.Role]float64),
	}
	for _, role := range models.Roles() {
		state.SliderValues[role] = mv.sliderPanel.Value(role)
		if mv.sliderPanel.Enabled(role) {
			state.EnabledRoles = append(state.EnabledRoles, role)
		}
	}
	return state
}
