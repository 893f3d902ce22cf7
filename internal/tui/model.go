// Package tui is the terminal front end of the editor. It draws the picture
// held by a paint.Controller and feeds it mouse strokes and key commands.
package tui

import (
	"bytes"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/pixed/internal/config"
	"github.com/jask/pixed/internal/files"
	"github.com/jask/pixed/internal/paint"
)

// rows taken by the header and status bar above the grid
const gridTop = 2

// cellWidth is the number of terminal columns per picture cell.
const cellWidth = 2

// Options configures a Model.
type Options struct {
	Config  config.Config
	Log     *logrus.Entry
	Watcher *files.Watcher
	// OpenPath is loaded on start when set.
	OpenPath string
}

type Model struct {
	ctrl    *paint.Controller
	cfg     config.Config
	log     *logrus.Entry
	keys    *KeyRegistry
	watcher *files.Watcher

	width  int
	height int
	offRow int
	offCol int

	prompt    *prompt
	showHelp  bool
	status    string
	statusErr bool
	quitting  bool

	path     string
	loadSeq  int
	openPath string

	// an explicit open is in flight; watched reloads wait for it
	userLoadPending bool
}

func New(ctrl *paint.Controller, opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Model{
		ctrl:     ctrl,
		cfg:      opts.Config,
		log:      log,
		keys:     NewKeyRegistry(DefaultKeyBindings()),
		watcher:  opts.Watcher,
		width:    100,
		height:   32,
		status:   "Ready",
		openPath: opts.OpenPath,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.openPath != "" {
		cmds = append(cmds, m.load(m.openPath, false))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil
	case tea.KeyMsg:
		if m.prompt != nil {
			return m, m.handlePromptKey(msg)
		}
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		// the prompt hides the grid
		if m.prompt != nil {
			m.ctrl.EndStroke()
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil
	case StatusMsg:
		m.status, m.statusErr = msg.Text, msg.IsErr
		return m, nil
	case snapshotLoadedMsg:
		m.applyLoad(msg)
		return m, nil
	case snapshotSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.path = msg.path
		m.watch(msg.path)
		m.setStatus("Saved " + msg.path)
		m.log.WithField("path", msg.path).Info("snapshot saved")
		return m, nil
	case fileChangedMsg:
		var reload tea.Cmd
		if !m.userLoadPending {
			reload = m.load(msg.path, true)
		} else {
			m.log.WithField("path", msg.path).Debug("change ignored during open")
		}
		if m.watcher == nil {
			return m, reload
		}
		return m, tea.Batch(reload, waitForChange(m.watcher.Changes()))
	}
	if m.prompt != nil {
		return m, m.prompt.Update(msg)
	}
	return m, nil
}

func (m *Model) scope() string {
	if m.prompt != nil {
		return scopePrompt
	}
	return scopeCanvas
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.ActionFor(msg, scopeCanvas) {
	case actionQuit:
		m.quitting = true
		return tea.Quit
	case actionPencil:
		m.selectTool(paint.Pencil)
	case actionEraser:
		m.selectTool(paint.Eraser)
	case actionEraseAll:
		// Erase-all is a one-shot tool: selecting it applies it.
		m.ctrl.EndStroke()
		m.selectTool(paint.EraseAll)
		if err := m.ctrl.ApplyTool(0, 0); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Picture erased")
	case actionColor:
		m.prompt = newPrompt(promptColor, "Pencil color (hex)", string(m.ctrl.Color()), "ff0000")
	case actionResize:
		pic := m.ctrl.Picture()
		m.prompt = newPrompt(promptResize, "Resize (WIDTHxHEIGHT)", fmt.Sprintf("%dx%d", pic.Width(), pic.Height()), "64x64")
	case actionRename:
		m.prompt = newPrompt(promptRename, "Picture name", m.ctrl.Picture().Name(), "untitled")
	case actionOpen:
		m.prompt = newPrompt(promptOpen, "Open snapshot", m.path, "picture"+paint.SnapshotExt)
	case actionSave:
		return m.save()
	case actionPrefs:
		return m.savePrefs()
	case actionUp:
		m.scroll(-1, 0)
	case actionDown:
		m.scroll(1, 0)
	case actionLeft:
		m.scroll(0, -1)
	case actionRight:
		m.scroll(0, 1)
	case actionHelp:
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.ActionFor(msg, scopePrompt) {
	case actionQuit:
		m.quitting = true
		return tea.Quit
	case actionCancel:
		m.prompt = nil
		return nil
	case actionSubmit:
		p := m.prompt
		m.prompt = nil
		return m.submitPrompt(p)
	}
	return m.prompt.Update(msg)
}

func (m *Model) submitPrompt(p *prompt) tea.Cmd {
	value := p.Value()
	switch p.kind {
	case promptColor:
		if err := m.ctrl.SetColor(value); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Color " + value)
	case promptResize:
		w, h, err := parseSize(value)
		if err == nil {
			err = m.ctrl.Resize(w, h)
		}
		if err != nil {
			m.setError(err)
			return nil
		}
		m.clampScroll()
		m.setStatus(fmt.Sprintf("Resized to %dx%d", w, h))
	case promptRename:
		if err := m.ctrl.Rename(value); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Renamed to " + m.ctrl.Picture().Name())
	case promptOpen:
		if value == "" {
			return nil
		}
		m.setStatus("Loading " + value)
		return m.load(value, false)
	}
	return nil
}

func (m *Model) selectTool(t paint.Tool) {
	if err := m.ctrl.SetTool(t); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Tool " + t.String())
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			row, col, ok := m.cellAt(msg.X, msg.Y)
			if !ok {
				return
			}
			if err := m.ctrl.BeginStroke(row, col); err != nil {
				m.setError(err)
			}
		case tea.MouseButtonWheelUp:
			m.scroll(-1, 0)
		case tea.MouseButtonWheelDown:
			m.scroll(1, 0)
		case tea.MouseButtonWheelLeft:
			m.scroll(0, -1)
		case tea.MouseButtonWheelRight:
			m.scroll(0, 1)
		}
	case tea.MouseActionMotion:
		if !m.ctrl.Stroking() {
			return
		}
		row, col, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			m.ctrl.EndStroke()
			return
		}
		if err := m.ctrl.ContinueStroke(row, col); err != nil {
			m.setError(err)
		}
	case tea.MouseActionRelease:
		m.ctrl.EndStroke()
	}
}

// cellAt maps a terminal position to a picture cell.
func (m *Model) cellAt(x, y int) (int, int, bool) {
	if x < 0 || y < gridTop || y >= gridTop+m.visibleRows() || x >= m.visibleCols()*cellWidth {
		return 0, 0, false
	}
	row := y - gridTop + m.offRow
	col := x/cellWidth + m.offCol
	if !m.ctrl.Picture().InBounds(row, col) {
		return 0, 0, false
	}
	return row, col, true
}

func (m *Model) visibleRows() int {
	// header, status bar and footer
	return max(0, m.height-gridTop-1)
}

func (m *Model) visibleCols() int {
	return max(0, m.width/cellWidth)
}

func (m *Model) scroll(dRow, dCol int) {
	m.offRow += dRow
	m.offCol += dCol
	m.clampScroll()
}

func (m *Model) clampScroll() {
	pic := m.ctrl.Picture()
	m.offRow = min(max(0, m.offRow), max(0, pic.Height()-m.visibleRows()))
	m.offCol = min(max(0, m.offCol), max(0, pic.Width()-m.visibleCols()))
}

func (m *Model) save() tea.Cmd {
	name, data, err := m.ctrl.ExportSnapshot()
	if err != nil {
		m.setError(err)
		return nil
	}
	dir := m.cfg.Files.Dir
	return func() tea.Msg {
		path, err := files.Write(dir, name, data)
		return snapshotSavedMsg{path: path, err: err}
	}
}

// load starts an asynchronous read. Starting another load supersedes this one.
func (m *Model) load(path string, watched bool) tea.Cmd {
	if !watched {
		m.userLoadPending = true
	}
	m.loadSeq++
	seq := m.loadSeq
	return func() tea.Msg {
		data, err := files.Read(path)
		return snapshotLoadedMsg{seq: seq, path: path, data: data, err: err, watched: watched}
	}
}

func (m *Model) applyLoad(msg snapshotLoadedMsg) {
	log := m.log.WithFields(logrus.Fields{"path": msg.path, "seq": msg.seq})
	if msg.seq != m.loadSeq {
		log.Debug("stale load dropped")
		return
	}
	m.userLoadPending = false
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	if msg.watched {
		if _, current, err := m.ctrl.ExportSnapshot(); err == nil && bytes.Equal(current, msg.data) {
			return
		}
	}
	pic, err := m.ctrl.ImportSnapshot(msg.data)
	if err != nil {
		m.setError(err)
		return
	}
	m.path = msg.path
	m.watch(msg.path)
	m.offRow, m.offCol = 0, 0
	m.clampScroll()
	m.setStatus(fmt.Sprintf("Loaded %s (%dx%d)", pic.Name(), pic.Width(), pic.Height()))
}

func (m *Model) watch(path string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(path); err != nil {
		m.log.WithError(err).Warn("watch snapshot")
	}
}

func (m *Model) savePrefs() tea.Cmd {
	cfg := m.cfg
	cfg.Paint.Color = string(m.ctrl.Color())
	cfg.Paint.Tool = m.ctrl.Tool().String()
	m.cfg = cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return StatusMsg{Text: err.Error(), IsErr: true}
		}
		return StatusMsg{Text: "Preferences saved"}
	}
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.log.WithError(err).Warn("action failed")
	m.status = err.Error()
	m.statusErr = true
}
