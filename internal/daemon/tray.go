//go:build windows

package daemon

import (
	_ "embed"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"github.com/username/trip-planner/internal/engine"
	"go.uber.org/zap"
)

//go:embed icon.ico
var trayIcon []byte

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	mbOK              = 0x00000000
	mbIconInformation = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
	best   *systray.MenuItem
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(trayIcon)
	systray.SetTitle("Trip")
	systray.SetTooltip("Trip Planner")

	// Add menu items
	t.best = systray.AddMenuItem("Best option: calculating", "Show the best ranked option")
	systray.AddSeparator()
	mRefresh := systray.AddMenuItem("Refresh", "Run the option pipeline again")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start watch loop in background
	go t.daemon.watchLoop()

	// Handle menu item clicks
	go func() {
		for {
			select {
			case <-t.best.ClickedCh:
				showMessageBox("Best Option", Summary(t.daemon.Last()))
			case <-mRefresh.ClickedCh:
				t.logger.Info("Refresh clicked from tray")
				go t.daemon.Refresh()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// Update shows the best option of a fresh result
func (t *TrayApp) Update(result engine.Result) {
	summary := Summary(result)
	systray.SetTooltip(summary)
	if t.best != nil {
		t.best.SetTitle("Best: " + summary)
	}
}

// ShowNotification shows a notification (Windows only)
func (t *TrayApp) ShowNotification(title, message string) {
	// fyne.io/systray doesn't have built-in notification support
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(mbOK|mbIconInformation),
	)
}
