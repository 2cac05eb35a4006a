package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/config"
	"github.com/zenik/zenik/internal/dispatch"
	"github.com/zenik/zenik/internal/feature"
	"github.com/zenik/zenik/internal/logging"
	"github.com/zenik/zenik/internal/modules"
	"github.com/zenik/zenik/internal/platform"
	"github.com/zenik/zenik/internal/tui"
)

// session is one probed, configured process: the frozen environment, the
// sealed registry and the dispatcher over them.
type session struct {
	envVars  config.Env
	store    *config.Store
	log      *zap.Logger
	closeLog func() error
	logPath  string
	base     platform.Environment
	reg      *feature.Registry
	disp     *dispatch.Dispatcher
	in       *bufio.Reader
	out      io.Writer
}

func openSession(g *globalOptions, in io.Reader, out io.Writer) (*session, error) {
	ev, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	cfgPath := g.ConfigPath
	if cfgPath == "" {
		cfgPath = ev.ConfigPath
	}
	store, err := config.Open(cfgPath)
	if err != nil {
		return nil, err
	}
	settings := store.Current()

	s := &session{
		envVars: ev,
		store:   store,
		out:     out,
		logPath: firstNonEmpty(ev.LogFile, settings.LogFile, logging.DefaultPath(config.Dir())),
	}
	if br, ok := in.(*bufio.Reader); ok {
		s.in = br
	} else {
		s.in = bufio.NewReader(in)
	}

	level := firstNonEmpty(g.LogLevel, ev.LogLevel)
	if _, err := logging.ParseLevel(level); err != nil {
		return nil, err
	}
	s.log, s.closeLog, err = logging.New(s.logPath, level)
	if err != nil {
		// Logging is best effort; the menu works without it.
		platform.PrintWarn(os.Stderr, fmt.Sprintf("activity log disabled: %v", err))
		s.log, s.closeLog, s.logPath = zap.NewNop(), func() error { return nil }, ""
	}

	signals := platform.CollectSignals()
	signals.Override = ev.Platform
	if ev.Platform != "" {
		if _, err := platform.ParseKind(ev.Platform); err != nil {
			s.log.Warn("ignoring platform override", zap.String("value", ev.Platform), zap.Error(err))
		}
	}
	s.base = platform.DetectWith(signals)

	store.Watch(s.log)
	envSource := store.EnvSource(s.base)

	s.reg = feature.NewRegistry()
	err = modules.Register(s.reg, modules.Deps{
		In:           s.in,
		Out:          out,
		Log:          s.log,
		Settings:     store.Current,
		SavePassword: store.SavePassword,
		Env:          envSource,
		Probed:       s.base,
		ConfigPath:   store.Path,
		LogPath:      s.logPath,
	})
	if err != nil {
		s.log.Error("registry configuration error", zap.Error(err))
		s.Close()
		return nil, err
	}
	s.reg.Seal()

	s.disp = dispatch.New(s.reg, envSource, dispatch.WithLogger(s.log))

	s.log.Info("session start",
		zap.String("version", version),
		zap.Stringer("environment", s.base),
		zap.String("config", store.Path()),
		zap.Int("modules", s.reg.Len()))
	return s, nil
}

// Close flushes the activity log.
func (s *session) Close() {
	s.log.Info("session end")
	_ = s.closeLog()
}

// runMenu drives the menu until the user quits. Plain mode uses the
// numbered line menu; otherwise the launcher picks and the dispatcher runs
// each selection with the terminal restored.
func (s *session) runMenu(ctx context.Context, plain bool) error {
	if plain {
		return s.disp.Loop(ctx, s.in, s.out)
	}

	var status string
	for {
		id, err := tui.Run(s.disp.Enabled(), tui.Options{Version: version, Status: status, LogPath: s.logPath})
		if err != nil {
			s.disp.Exit()
			return err
		}
		if id == "" {
			s.disp.Exit()
			return nil
		}

		res, serr := s.disp.Select(id)
		var report strings.Builder
		dispatch.Report(&report, res, serr)
		fmt.Fprint(s.out, report.String())
		status = strings.TrimSpace(report.String())

		platform.PrintPrompt(s.out, "\nPress Enter to return to the menu...")
		if _, err := platform.ReadLine(s.in); err != nil {
			s.disp.Exit()
			return nil
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
