package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"shape-detector/internal/capture"
	"shape-detector/internal/config"
	"shape-detector/internal/gui"
	"shape-detector/internal/gui/widgets"
	"shape-detector/internal/logger"
	"shape-detector/internal/pipeline"
	"shape-detector/internal/profiles"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"gocv.io/x/gocv"
)

const (
	AppName    = "Shape Detection"
	AppID      = "com.imageprocessing.shape-detector"
	AppVersion = "1.0.0"
)

type shutdownHandler interface {
	Shutdown()
}

type Application struct {
	cfg           *config.Config
	fyneApp       fyne.App
	window        fyne.Window
	guiManager    *gui.Manager
	coordinator   pipeline.ProcessingCoordinator
	profiles      *profiles.Manager
	logger        logger.Logger
	shutdownables []shutdownHandler
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	shutdown      chan struct{}
	shutdownOnce  sync.Once
	menuSetup     bool
}

// NewApplication opens the frame source, builds the processing pipeline and
// the window. Any failure here is fatal for the program.
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	profileManager, err := loadProfiles(cfg, log)
	if err != nil {
		return nil, err
	}

	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
		Build:   1,
	})

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(gui.NewTheme())
	window := fyneApp.NewWindow(AppName)

	windowSize := calculateWindowSize()
	window.Resize(windowSize)
	window.SetFixedSize(true)
	window.SetPadded(false)
	window.CenterOnScreen()
	window.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"source":        src.Name(),
		"profile":       profileManager.CurrentName(),
		"window_width":  windowSize.Width,
		"window_height": windowSize.Height,
		"log_level":     cfg.LogLevel,
	})

	coordinator := pipeline.NewCoordinator(src, profileManager, pipeline.Options{
		Interval: cfg.FrameInterval,
		Appearance: pipeline.Appearance{
			Annotation: cfg.AnnotationRGBA(),
			Grid:       cfg.GridRGBA(),
			PaneWidth:  widgets.PaneWidth,
			PaneHeight: widgets.PaneHeight,
		},
	}, log)

	guiManager := gui.NewManager(window, coordinator, profileManager, cameraOpener(cfg), log)

	application := &Application{
		cfg:         cfg,
		fyneApp:     fyneApp,
		window:      window,
		guiManager:  guiManager,
		coordinator: coordinator,
		profiles:    profileManager,
		logger:      log,
		ctx:         ctx,
		cancel:      cancel,
		shutdown:    make(chan struct{}),
		shutdownables: []shutdownHandler{
			coordinator,
			guiManager,
		},
	}

	application.setupSignalHandling()
	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func loadProfiles(cfg *config.Config, log logger.Logger) (*profiles.Manager, error) {
	manager := profiles.NewManager()

	if cfg.ProfilesFile != "" {
		loaded, err := profiles.LoadFile(cfg.ProfilesFile)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			if err := manager.Register(p); err != nil {
				return nil, fmt.Errorf("register profile %q: %w", p.Name, err)
			}
		}
		log.Info("Application", "profiles loaded", map[string]interface{}{
			"file":  cfg.ProfilesFile,
			"count": len(loaded),
		})
	}

	if err := manager.SetCurrent(cfg.Profile); err != nil {
		return nil, err
	}
	return manager, nil
}

func openSource(cfg *config.Config) (capture.Source, error) {
	if cfg.ImagePath != "" {
		still, err := capture.OpenStill(cfg.ImagePath)
		if err != nil {
			return nil, err
		}
		return still, nil
	}
	return openCamera(cfg)
}

func openCamera(cfg *config.Config) (capture.Source, error) {
	camera, err := capture.OpenCamera(cfg.CameraDevice, cfg.FrameWidth, cfg.FrameHeight)
	if err != nil {
		return nil, err
	}
	return camera, nil
}

func cameraOpener(cfg *config.Config) gui.CameraOpener {
	return func() (capture.Source, error) {
		return openCamera(cfg)
	}
}

func (a *Application) setupMenu() {
	aboutAction := func() {
		fyne.Do(func() {
			a.showAbout()
		})
	}

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", a.guiManager.Controller().OpenImage),
		fyne.NewMenuItem("Use Camera", a.guiManager.Controller().UseCamera),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", aboutAction),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
	a.menuSetup = true
}

func (a *Application) showAbout() {
	metadata := a.fyneApp.Metadata()

	name := metadata.Name
	if name == "" {
		name = AppName
	}

	version := metadata.Version
	if version == "" {
		version = AppVersion
	}

	aboutContent := container.NewVBox(
		widget.NewLabel(name),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel(fmt.Sprintf("Profile: %s", a.profiles.CurrentName())),
		widget.NewLabel(""),
		widget.NewLabel("Runtime Info:"),
		widget.NewLabel(fmt.Sprintf("Go: %s", runtime.Version())),
		widget.NewLabel(fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)),
		widget.NewLabel(fmt.Sprintf("OpenCV: %s", gocv.OpenCVVersion())),
	)

	dialog.ShowCustom("About", "Close", aboutContent, a.window)
}

func calculateWindowSize() fyne.Size {
	toolbarHeight := float32(50)
	parametersHeight := float32(220)

	return fyne.Size{
		Width:  float32(widgets.PaneWidth * 2),
		Height: float32(widgets.PaneHeight) + toolbarHeight + parametersHeight,
	}
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
		}
	}()
}

// Run shows the window, starts capturing and blocks until the fyne event
// loop exits.
func (a *Application) Run() error {
	if !a.menuSetup {
		a.setupMenu()
	}

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested via window close", nil)
		a.initiateShutdown()
		a.window.Close()
	})

	a.guiManager.Show()
	a.guiManager.StartCapture()

	go func() {
		<-a.shutdown
		fyne.Do(func() {
			a.fyneApp.Quit()
		})
	}()

	a.fyneApp.Run()
	a.initiateShutdown()
	a.wg.Wait()
	return nil
}

// initiateShutdown may be called from the signal goroutine and the UI
// thread at once; only the first call does any work.
func (a *Application) initiateShutdown() {
	a.shutdownOnce.Do(a.runShutdown)
}

func (a *Application) runShutdown() {
	close(a.shutdown)

	a.logger.Info("Application", "shutdown sequence initiated", map[string]interface{}{
		"components": len(a.shutdownables),
	})

	a.cancel()

	for i := len(a.shutdownables) - 1; i >= 0; i-- {
		component := a.shutdownables[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			component.Shutdown()
		}()

		select {
		case <-done:
		case <-time.After(10 * time.Second):
			a.logger.Warning("Application", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
			})
		}
	}

	a.logger.Info("Application", "shutdown sequence completed", nil)
}

// Shutdown stops every component and waits for background goroutines,
// giving up when ctx is done.
func (a *Application) Shutdown(ctx context.Context) error {
	a.initiateShutdown()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
