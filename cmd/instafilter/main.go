package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"instafilter/internal/config"
	"instafilter/internal/controllers"
	"instafilter/internal/logger"
	"instafilter/internal/models"
	"instafilter/internal/opencv/memory"
	"instafilter/internal/services"
	"instafilter/internal/shutdown"
	"instafilter/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/dustin/go-humanize"
)

const (
	AppName    = "Instafilter"
	AppID      = "com.example.instafilter"
	AppVersion = "1.0.0"

	statsInterval = 30 * time.Second
)

// Application owns the window, the MVC components and their lifecycle
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.MainController
	view       *views.MainView

	imageRepo         *models.ImageRepository
	processingService *services.ProcessingService
	shutdown          *shutdown.Manager
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	application, err := NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}

// NewApplication wires the models, services, controller and view
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	appLogger := logger.NewConsoleLogger(level)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	shutdownManager := shutdown.NewManager(ctx, appLogger)

	imageRepo := models.NewImageRepository()
	imageService := services.NewImageService(appLogger)
	memManager := memory.NewManager(memory.DefaultMaxBytes, appLogger)
	processingService := services.NewProcessingService(appLogger, memManager)
	library := services.NewPhotoLibrary(cfg.LibraryDir, cfg.SaveFormat, cfg.JPEGQuality, imageService, appLogger)

	mainController := controllers.NewMainController(
		shutdownManager.Context(),
		imageService,
		processingService,
		library,
		imageRepo,
		cfg.EditorState(),
		appLogger,
	)
	mainView := views.NewMainView(window)
	mainController.SetMainView(mainView)

	shutdownManager.Register("processing service", processingService)
	shutdownManager.Register("controller", mainController)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: mainController,
		view:       mainView,
		imageRepo:  imageRepo,
		shutdown:   shutdownManager,

		processingService: processingService,
	}
	application.setupWindowEvents()

	appLogger.Info("app", "application initialized", map[string]interface{}{
		"version":     AppVersion,
		"window_size": fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"library":     library.Dir(),
		"save_format": cfg.SaveFormat,
		"filter":      mainController.State().Filter().String(),
		"go_version":  runtime.Version(),
	})

	return application, nil
}

// Run shows the window and blocks until the app quits
func (a *Application) Run() error {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go a.logSessionStats()

	a.view.Show()
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("app", "window close requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})
}

// logSessionStats reports memory and render totals until shutdown starts
func (a *Application) logSessionStats() {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var memStats runtime.MemStats
			runtime.ReadMemStats(&memStats)
			stats := a.imageRepo.Stats()
			matStats := a.processingService.MemoryStats()

			a.logger.Debug("app", "session stats", map[string]interface{}{
				"heap":             humanize.Bytes(memStats.Alloc),
				"opencv_in_use":    humanize.Bytes(uint64(matStats.InUse())),
				"opencv_peak":      humanize.Bytes(uint64(matStats.PeakBytes)),
				"opencv_mats":      matStats.ActiveMats,
				"source_pixels":    humanize.Comma(stats.SourcePixels),
				"renders":          stats.RenderCount,
				"last_render_time": stats.LastRenderTime.String(),
				"goroutines":       runtime.NumGoroutine(),
			})
		case <-a.shutdown.Done():
			return
		}
	}
}
