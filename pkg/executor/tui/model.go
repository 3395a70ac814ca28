package tui

import (
	"time"

	"github.com/entrhq/mymaps/pkg/app"
	"github.com/entrhq/mymaps/pkg/executor/tui/overlay"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
	"github.com/entrhq/mymaps/pkg/logging"
	"github.com/entrhq/mymaps/pkg/maps"
	"github.com/entrhq/mymaps/pkg/presenter"
)

const defaultToastDuration = 3 * time.Second

// model represents the state of the TUI application.
type model struct {
	app       *app.App
	presenter *presenter.Presenter
	list      *mapList
	logger    *logging.Logger

	// Customization
	detailStyle   string
	toastDuration time.Duration

	// UI state
	overlay *overlayState
	toast   *toastNotification

	// Window dimensions
	width  int
	height int
	ready  bool

	shouldQuit bool
}

// toastNotification represents a temporary notification message
type toastNotification struct {
	active    bool
	message   string
	details   string
	icon      string
	isError   bool
	showUntil time.Time

	seq       int // incremented per toast
	scheduled int // last seq an expiry tick was issued for
}

// newModel builds the model and subscribes its presenter to the store, so
// every later append reaches the list.
func newModel(a *app.App, opts Options, logger *logging.Logger) *model {
	m := &model{
		app:           a,
		list:          newMapList(),
		logger:        logger,
		detailStyle:   opts.DetailStyle,
		toastDuration: opts.ToastDuration,
		overlay:       newOverlayState(),
		toast:         &toastNotification{},
	}
	if m.toastDuration <= 0 {
		m.toastDuration = defaultToastDuration
	}
	if m.detailStyle == "" {
		m.detailStyle = overlay.DefaultDetailStyle
	}

	m.presenter = presenter.New(m.list, m.openDetail)
	st := a.Store()
	st.Subscribe(m.presenter)
	m.presenter.Reloaded(st.Snapshot())
	return m
}

// openDetail is the presenter's select callback.
func (m *model) openDetail(pos int, mp maps.Map) {
	o, err := overlay.NewDetailOverlay(mp, m.detailStyle, m.width, m.height)
	if err != nil {
		m.errorf("open detail for position %d: %v", pos, err)
		m.ShowToast("Cannot show map", err.Error(), "✗", true)
		return
	}
	m.debugf("showing map %q at position %d", mp.Title, pos)
	m.overlay.activateAndClearStack(types.OverlayModeDetail, o)
}

func (m *model) debugf(format string, v ...interface{}) {
	if m.logger != nil {
		m.logger.Debugf(format, v...)
	}
}

func (m *model) errorf(format string, v ...interface{}) {
	if m.logger != nil {
		m.logger.Errorf(format, v...)
	}
}
