package gui

import (
	"shape-detector/internal/logger"
	"shape-detector/internal/pipeline"
	"shape-detector/internal/profiles"

	"fyne.io/fyne/v2"
)

type Manager struct {
	window     fyne.Window
	controller *Controller
	view       *View
	logger     logger.Logger
	isShutdown bool
}

func NewManager(window fyne.Window, coord pipeline.ProcessingCoordinator, profileManager *profiles.Manager, openCamera CameraOpener, log logger.Logger) *Manager {
	manager := &Manager{
		window: window,
		logger: log,
	}

	manager.view = NewView(window)
	manager.controller = NewController(coord, profileManager, openCamera, log)
	manager.view.SetController(manager.controller)
	manager.controller.SetView(manager.view)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"window_title": window.Title(),
	})

	return manager
}

func (m *Manager) Controller() *Controller {
	return m.controller
}

func (m *Manager) Show() {
	m.view.Show()
	m.logger.Info("GUIManager", "GUI displayed", nil)
}

// StartCapture begins the capture loop, as if Start had been pressed.
func (m *Manager) StartCapture() {
	m.controller.Start()
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)

	m.controller.Shutdown()

	m.logger.Info("GUIManager", "shutdown completed", nil)
}
