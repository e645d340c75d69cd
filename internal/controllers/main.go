package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"instafilter/internal/logger"
	"instafilter/internal/models"
	"instafilter/internal/services"
)

// Renderer runs a filter over a raster
type Renderer interface {
	Render(ctx context.Context, kind models.FilterKind, params models.Parameters, src image.Image) (image.Image, error)
}

// ImageDecoder turns a picked file into a raster
type ImageDecoder interface {
	Decode(ctx context.Context, reader io.Reader, name string) (*models.ImageData, error)
}

// PhotoSink persists a finished raster
type PhotoSink interface {
	Save(ctx context.Context, img image.Image) (services.SavedPhoto, error)
}

// View is the screen the controller drives
type View interface {
	SetPickImageHandler(handler func())
	SetChangeFilterHandler(handler func())
	SetSliderChangeHandler(handler func(models.Role, float64))
	SetSaveImageHandler(handler func())
	SetClearImageHandler(handler func())

	ShowImagePicker(onPicked func(reader io.ReadCloser, name string, err error))
	ShowFilterChooser(filters []models.FilterDescriptor, onChosen func(models.FilterKind))
	UpdateControls(state models.EditorState)
	SetOutputImage(img image.Image)
	SetSaveEnabled(enabled bool)
	ShowError(title string, err error)
	ShowInfo(title, message string)
}

// MainController applies the selected filter and slider values to the loaded image.
// Handlers run on the UI event loop and complete before the next event.
// State and Shutdown may be called from other goroutines.
type MainController struct {
	decoder  ImageDecoder
	renderer Renderer
	sink     PhotoSink

	imageRepo *models.ImageRepository
	state     models.EditorState
	stateMu   sync.RWMutex

	mainView View
	logger   logger.Logger
	ctx      context.Context
}

// NewMainController creates a controller starting from initial
func NewMainController(
	ctx context.Context,
	decoder ImageDecoder,
	renderer Renderer,
	sink PhotoSink,
	imageRepo *models.ImageRepository,
	initial models.EditorState,
	log logger.Logger,
) *MainController {
	if log == nil {
		log = logger.NewNop()
	}
	if imageRepo == nil {
		imageRepo = models.NewImageRepository()
	}

	return &MainController{
		decoder:   decoder,
		renderer:  renderer,
		sink:      sink,
		imageRepo: imageRepo,
		state:     initial,
		logger:    log,
		ctx:       ctx,
	}
}

// SetMainView associates the view with this controller and renders the current state
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	if view == nil {
		return
	}

	view.SetPickImageHandler(mc.PickImage)
	view.SetChangeFilterHandler(mc.ChangeFilter)
	view.SetSliderChangeHandler(mc.UpdateSlider)
	view.SetSaveImageHandler(mc.SaveImage)
	view.SetClearImageHandler(mc.ClearImage)

	mc.refreshView()
}

// State returns the current editor state
func (mc *MainController) State() models.EditorState {
	mc.stateMu.RLock()
	defer mc.stateMu.RUnlock()
	return mc.state
}

func (mc *MainController) updateState(update func(models.EditorState) models.EditorState) models.EditorState {
	mc.stateMu.Lock()
	defer mc.stateMu.Unlock()
	mc.state = update(mc.state)
	return mc.state
}

// Output returns the current output raster, or nil
func (mc *MainController) Output() image.Image {
	return mc.imageRepo.OutputImage()
}

// CanSave reports whether the save action is available
func (mc *MainController) CanSave() bool {
	return mc.imageRepo.HasOutput()
}

// PickImage asks the view for a file. A cancelled picker changes nothing.
func (mc *MainController) PickImage() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.ShowImagePicker(func(reader io.ReadCloser, name string, err error) {
		if err != nil {
			mc.handleError("Could not open image", err)
			return
		}
		if reader == nil {
			mc.logger.Debug("controller", "image picker cancelled", nil)
			return
		}
		defer reader.Close()

		if err := mc.LoadImage(reader, name); err != nil {
			mc.handleError("Could not open image", err)
		}
	})
}

// LoadImage decodes a picked file, makes it the source and renders it.
// On failure the previous source and output are kept.
func (mc *MainController) LoadImage(reader io.Reader, name string) error {
	imageData, err := mc.decoder.Decode(mc.ctx, reader, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	mc.imageRepo.SetSource(imageData)
	mc.logger.Info("controller", "image loaded", map[string]interface{}{
		"name":   imageData.Name,
		"width":  imageData.Width,
		"height": imageData.Height,
	})

	mc.ApplyProcessing()
	return nil
}

// ClearImage ends the editing session. Filter and slider state is kept.
func (mc *MainController) ClearImage() {
	mc.imageRepo.Clear()
	if mc.mainView != nil {
		mc.mainView.SetOutputImage(nil)
	}
	mc.refreshView()
}

// ChangeFilter offers the catalog and selects the chosen filter
func (mc *MainController) ChangeFilter() {
	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowFilterChooser(models.Filters(), mc.SelectFilter)
}

// SelectFilter switches filters, updates which slider is active and re-renders
func (mc *MainController) SelectFilter(kind models.FilterKind) {
	if !kind.Valid() {
		mc.logger.Warning("controller", "ignoring filter outside catalog", map[string]interface{}{
			"filter": kind.String(),
		})
		return
	}

	state := mc.updateState(func(s models.EditorState) models.EditorState {
		return s.SelectFilter(kind)
	})

	role, ok := state.EnabledRole()
	fields := map[string]interface{}{"filter": kind.String(), "enabled": "none"}
	if ok {
		fields["enabled"] = role.String()
	}
	mc.logger.Info("controller", "filter selected", fields)

	mc.refreshView()
	mc.ApplyProcessing()
}

// UpdateSlider stores a slider value and re-renders when an image is loaded
func (mc *MainController) UpdateSlider(role models.Role, value float64) {
	mc.updateState(func(s models.EditorState) models.EditorState {
		return s.UpdateSlider(role, value)
	})

	if mc.imageRepo.Source() != nil {
		mc.ApplyProcessing()
	}
}

// ApplyProcessing renders the source with the current filter and parameters.
// With no source it does nothing. An empty or failed render keeps the previous output.
func (mc *MainController) ApplyProcessing() image.Image {
	source := mc.imageRepo.Source()
	if source == nil || source.Image == nil {
		return mc.imageRepo.OutputImage()
	}

	state := mc.State()
	kind := state.Filter()
	params := state.ComputeParameters()

	startTime := time.Now()
	output, err := mc.renderer.Render(mc.ctx, kind, params, source.Image)
	if err != nil {
		fields := map[string]interface{}{"filter": kind.String()}
		if errors.Is(err, models.ErrEmptyRenderResult) {
			mc.logger.Debug("controller", "render produced no image, keeping previous output", fields)
		} else {
			mc.logger.Error("controller", err, fields)
		}

		// a fresh source has no output yet, so the view must not keep showing the old one
		previous := mc.imageRepo.OutputImage()
		if mc.mainView != nil {
			if previous == nil {
				mc.mainView.SetOutputImage(nil)
			}
			mc.mainView.SetSaveEnabled(previous != nil)
		}
		return previous
	}

	mc.imageRepo.SetOutput(&models.RenderResult{
		Image:      output,
		Filter:     kind,
		Parameters: params,
		RenderTime: time.Since(startTime),
		RenderedAt: time.Now(),
	})

	if mc.mainView != nil {
		mc.mainView.SetOutputImage(output)
		mc.mainView.SetSaveEnabled(true)
	}

	return output
}

// SaveImage writes the current output to the photo library.
// Without an output it is a no-op.
func (mc *MainController) SaveImage() {
	output := mc.imageRepo.OutputImage()
	if output == nil {
		mc.logger.Debug("controller", "save ignored", map[string]interface{}{
			"reason": models.ErrNoImageLoaded.Error(),
		})
		return
	}

	saved, err := mc.sink.Save(mc.ctx, output)
	if err != nil {
		mc.handleError("Oops!", err)
		return
	}

	if mc.mainView != nil {
		mc.mainView.ShowInfo("Saved", fmt.Sprintf("Saved to %s (%s)", saved.Path, saved.HumanSize()))
	}
}

// Shutdown drops the session images and logs the session totals
func (mc *MainController) Shutdown() {
	stats := mc.imageRepo.Stats()
	mc.logger.Info("controller", "session ended", map[string]interface{}{
		"renders":          stats.RenderCount,
		"last_render_time": stats.LastRenderTime.String(),
		"filter":           mc.State().Filter().String(),
	})
	mc.imageRepo.Clear()
}

func (mc *MainController) refreshView() {
	if mc.mainView == nil {
		return
	}
	mc.mainView.UpdateControls(mc.State())
	mc.mainView.SetSaveEnabled(mc.CanSave())
}

// handleError logs err and shows it to the user
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("controller", err, map[string]interface{}{"title": title})

	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}
