package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/jask/pixed/internal/config"
	"github.com/jask/pixed/internal/files"
	"github.com/jask/pixed/internal/logging"
	"github.com/jask/pixed/internal/paint"
	"github.com/jask/pixed/internal/picture"
	"github.com/jask/pixed/internal/tui"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("flags: %v", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	pic := picture.New(
		picture.WithWidth(cfg.Picture.Width),
		picture.WithHeight(cfg.Picture.Height),
		picture.WithName(cfg.Picture.Name),
	)
	ctrl, err := paint.New(pic,
		paint.WithLogger(logger),
		paint.WithColor(cfg.Paint.Color),
		paint.WithTool(paint.Tool(cfg.Paint.Tool)),
	)
	if err != nil {
		log.Fatalf("paint: %v", err)
	}

	var watcher *files.Watcher
	if cfg.Files.Watch {
		watcher, err = files.NewWatcher(logger)
		if err != nil {
			log.Fatalf("watch: %v", err)
		}
		defer watcher.Close()
	}

	logger.WithFields(logrus.Fields{
		"width":  pic.Width(),
		"height": pic.Height(),
		"dir":    cfg.Files.Dir,
	}).Info("starting editor")

	p := tea.NewProgram(tui.New(ctrl, tui.Options{
		Config:   cfg,
		Log:      logger,
		Watcher:  watcher,
		OpenPath: flags.Arg(0),
	}), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
