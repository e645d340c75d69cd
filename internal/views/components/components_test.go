package components

import (
	"image"
	"testing"

	"instafilter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliderPanel_SyncEnablesOnlyActiveRole(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewSliderPanel()
	state := models.NewEditorState().
		SelectFilter(models.FilterGaussianBlur).
		UpdateSlider(models.RoleRadius, 0.75)

	panel.Sync(state)

	assert.True(t, panel.Enabled(models.RoleRadius))
	assert.False(t, panel.Enabled(models.RoleIntensity))
	assert.False(t, panel.Enabled(models.RoleScale))
	assert.InDelta(t, 0.75, panel.Value(models.RoleRadius), 1e-9)
	assert.InDelta(t, 0.5, panel.Value(models.RoleScale), 1e-9)
}

func TestSliderPanel_SyncDoesNotEcho(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewSliderPanel()
	calls := 0
	panel.SetChangeHandler(func(models.Role, float64) { calls++ })

	panel.Sync(models.NewEditorState().UpdateSlider(models.RoleIntensity, 0.2))

	assert.Zero(t, calls)
}

func TestSliderPanel_InstantDisablesAll(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewSliderPanel()
	panel.Sync(models.NewEditorState().SelectFilter(models.FilterPhotoEffectInstant))

	for _, role := range models.Roles() {
		assert.False(t, panel.Enabled(role), role.String())
	}
}

func TestToolbar_Actions(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	toolbar := NewToolbar()
	assert.False(t, toolbar.SaveEnabled())
	assert.Equal(t, models.DefaultFilter, toolbar.GetCurrentFilter())

	changed, saved := 0, 0
	toolbar.SetChangeFilterHandler(func() { changed++ })
	toolbar.SetSaveHandler(func() { saved++ })

	test.Tap(toolbar.filterButton)
	test.Tap(toolbar.saveButton)
	assert.Equal(t, 1, changed)
	assert.Zero(t, saved)

	toolbar.SetSaveEnabled(true)
	test.Tap(toolbar.saveButton)
	assert.Equal(t, 1, saved)

	toolbar.SetCurrentFilter(models.FilterPhotoEffectInstant)
	assert.Equal(t, "Instant", toolbar.filterLabel.Text)
}

func TestToolbar_ClearFollowsSaveAvailability(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	toolbar := NewToolbar()
	cleared := 0
	toolbar.SetClearHandler(func() { cleared++ })

	test.Tap(toolbar.clearButton)
	assert.Zero(t, cleared)

	toolbar.SetSaveEnabled(true)
	test.Tap(toolbar.clearButton)
	assert.Equal(t, 1, cleared)

	toolbar.SetSaveEnabled(false)
	assert.True(t, toolbar.clearButton.Disabled())
}

func TestImageDisplay_TapAndImage(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	display := NewImageDisplay()
	tapped := false
	display.SetTapHandler(func() { tapped = true })

	display.Tapped(&fyne.PointEvent{})
	require.True(t, tapped)

	display.SetImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.True(t, display.HasImage())
	assert.False(t, display.prompt.Visible())

	display.SetImage(nil)
	assert.False(t, display.HasImage())
	assert.True(t, display.prompt.Visible())
}

func TestStatusBar(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	bar := NewStatusBar()
	bar.SetStatus("Saved")
	bar.SetImageInfo(640, 480)
	assert.Equal(t, "Saved", bar.GetStatus())
	assert.Equal(t, "640 x 480", bar.imageInfo.Text)

	bar.Reset()
	assert.Equal(t, readyStatus, bar.GetStatus())
}
