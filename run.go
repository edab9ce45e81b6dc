package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ssai-innovid/internal/adswrapper"
	"github.com/llehouerou/ssai-innovid/internal/app"
	"github.com/llehouerou/ssai-innovid/internal/config"
	"github.com/llehouerou/ssai-innovid/internal/errmsg"
	"github.com/llehouerou/ssai-innovid/internal/ima/scripted"
	"github.com/llehouerou/ssai-innovid/internal/journal"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// sinks fans a log line out to several loggers.
type sinks []adswrapper.Logger

func (s sinks) Log(msg string) {
	for _, l := range s {
		l.Log(msg)
	}
}

type stdoutSink struct{ w io.Writer }

func (s stdoutSink) Log(msg string) {
	fmt.Fprint(s.w, msg)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		fmt.Fprintln(s.w)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}
	return config.Load(configPath)
}

func loadTimeline(cfg *config.Config) (scripted.Timeline, error) {
	path := cfg.Scenario.Path
	if scenario != "" {
		path = scenario
	}
	if path == "" {
		return scripted.DefaultTimeline(), nil
	}
	tl, err := scripted.LoadTimeline(path)
	if err != nil {
		return scripted.Timeline{}, errors.New(errmsg.FormatWith(errmsg.OpTimelineLoad, path, err))
	}
	return tl, nil
}

func openJournal(cfg *config.Config) (*journal.Store, error) {
	if !cfg.JournalEnabled() {
		return nil, nil
	}
	jc := cfg.GetJournalConfig()
	store, err := journal.Open(jc.Path)
	if err != nil {
		return nil, errors.New(errmsg.FormatWith(errmsg.OpJournalOpen, jc.Path, err))
	}
	return store, nil
}

// newLogger returns the diagnostic logger. Diagnostics go to the journal
// when there is one; otherwise to stderr in headless mode and nowhere under
// the terminal UI.
func newLogger(store *journal.Store) log.Logger {
	var w io.Writer = io.Discard
	switch {
	case store != nil:
		w = store.Writer("diag")
	case headless:
		w = os.Stderr
	}
	level := log.LevelInfo
	if verbose {
		level = log.LevelDebug
	}
	logger := log.With(log.NewStdLogger(w), "ts", log.DefaultTimestamp)
	return log.NewFilter(logger, log.FilterLevel(level))
}

func runPlayer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if contentType != "" {
		cfg.ContentTypeID = contentType
	}
	req, err := cfg.StreamRequest()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStreamBuild, err))
	}
	tl, err := loadTimeline(cfg)
	if err != nil {
		return err
	}

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	var journalErrs atomic.Int64
	defer func() {
		if store == nil {
			return
		}
		if n := journalErrs.Load(); n > 0 {
			fmt.Fprintf(os.Stderr, "%d journal writes failed\n", n)
		}
		if _, err := store.Prune(cfg.GetJournalConfig().Keep); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpJournalPrune, err))
		}
		_ = store.Close()
	}()

	logger := newLogger(store)
	helper := log.NewHelper(log.With(logger, "component", "main"))

	var out sinks
	if store != nil {
		out = append(out, store.Sink("wrapper", func(error) { journalErrs.Add(1) }))
		helper.Infof("run %s: %s", store.RunID(), req)
	}

	queue := uiloop.NewQueue()
	var logs *app.LogPane
	if headless {
		out = append(out, stdoutSink{w: cmd.OutOrStdout()})
	} else {
		logs = app.NewLogPane()
		out = append(out, logs)
	}

	rt := app.NewRuntime(app.Options{
		Config:   cfg,
		Request:  req,
		Timeline: tl,
		Logger:   logger,
		Sink:     out,
		Poster:   queue,
	})
	if err := rt.Start(); err != nil && !errors.Is(err, app.ErrNotStarted) {
		return errors.New(errmsg.Format(errmsg.OpStreamRequest, err))
	}

	if headless {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := app.RunHeadless(ctx, rt, queue, nil, app.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	p := tea.NewProgram(app.New(rt, queue, logs, "ssai-innovid · "+req.String()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}
