// Package paint turns pointer strokes into picture edits and moves pictures
// in and out of snapshot files.
package paint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jask/pixed/internal/picture"
)

// SnapshotExt is appended to the picture name on export.
const SnapshotExt = ".pix"

type cell struct{ row, col int }

// Controller owns one picture and the tool state used to edit it. All
// methods are meant to be called from a single goroutine.
type Controller struct {
	pic   *picture.Picture
	tool  Tool
	color picture.Color
	log   *logrus.Entry

	stroking bool
	last     cell
	hasLast  bool
}

type Option func(*Controller) error

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

func WithTool(t Tool) Option {
	return func(c *Controller) error { return c.SetTool(t) }
}

func WithColor(color string) Option {
	return func(c *Controller) error { return c.SetColor(color) }
}

// New returns a controller editing pic, or a default picture when pic is nil.
func New(pic *picture.Picture, opts ...Option) (*Controller, error) {
	if pic == nil {
		pic = picture.New()
	}
	c := &Controller{
		pic:   pic,
		tool:  Pencil,
		color: DefaultColor,
		log:   logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller) Picture() *picture.Picture { return c.pic }
func (c *Controller) Tool() Tool                 { return c.tool }
func (c *Controller) Color() picture.Color       { return c.color }
func (c *Controller) Stroking() bool             { return c.stroking }

func (c *Controller) SetTool(t Tool) error {
	parsed, err := ParseTool(string(t))
	if err != nil {
		return err
	}
	c.tool = parsed
	c.log.WithField("tool", parsed).Debug("tool selected")
	return nil
}

func (c *Controller) SetColor(s string) error {
	color, err := ParseColor(s)
	if err != nil {
		return err
	}
	c.color = color
	c.log.WithField("color", color).Debug("color selected")
	return nil
}

// BeginStroke starts a stroke and paints its first cell.
func (c *Controller) BeginStroke(row, col int) error {
	c.stroking = true
	c.hasLast = false
	return c.visit(row, col)
}

// ContinueStroke paints (row, col) if a stroke is active and the pointer
// moved to a new cell.
func (c *Controller) ContinueStroke(row, col int) error {
	if !c.stroking {
		return nil
	}
	if c.hasLast && c.last == (cell{row, col}) {
		return nil
	}
	return c.visit(row, col)
}

func (c *Controller) EndStroke() {
	c.stroking = false
	c.hasLast = false
}

func (c *Controller) visit(row, col int) error {
	c.last = cell{row, col}
	c.hasLast = true
	return c.ApplyTool(row, col)
}

// ApplyTool runs the active tool once at (row, col). Erase-all clears the
// whole picture and hands control back to the pencil.
func (c *Controller) ApplyTool(row, col int) error {
	switch c.tool {
	case Pencil:
		return c.pic.SetColor(row, col, c.color)
	case Eraser:
		c.pic.ClearColor(row, col)
		return nil
	case EraseAll:
		c.pic.EraseAll()
		c.tool = Pencil
		c.log.WithField("picture", c.pic.Name()).Info("picture erased")
		return nil
	}
	return &ConfigurationError{Field: "tool", Value: string(c.tool)}
}

// Resize changes the picture dimensions.
func (c *Controller) Resize(width, height int) error {
	if err := c.pic.Resize(width, height); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{"width": width, "height": height}).Info("picture resized")
	return nil
}

func (c *Controller) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ConfigurationError{Field: "name", Value: name, Hint: "name must not be empty"}
	}
	c.pic.SetName(name)
	return nil
}

// ExportSnapshot returns the download name and JSON text of the picture.
func (c *Controller) ExportSnapshot() (string, []byte, error) {
	data, err := json.Marshal(c.pic)
	if err != nil {
		return "", nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return c.pic.Name() + SnapshotExt, data, nil
}

// ImportSnapshot replaces the picture with the decoded snapshot. On error the
// current picture stays active. Any stroke in progress is dropped.
func (c *Controller) ImportSnapshot(data []byte) (*picture.Picture, error) {
	pic, err := picture.Decode(data)
	if err != nil {
		c.log.WithError(err).Warn("snapshot rejected")
		return nil, fmt.Errorf("import snapshot: %w", err)
	}
	c.pic = pic
	c.EndStroke()
	c.log.WithFields(logrus.Fields{
		"picture": pic.Name(),
		"width":   pic.Width(),
		"height":  pic.Height(),
		"cells":   pic.Len(),
	}).Info("snapshot imported")
	return pic, nil
}
