// Package main is the entry point for the staxbard status bar daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/staxbar/internal/audio"
	"github.com/jmylchreest/staxbar/internal/bar"
	"github.com/jmylchreest/staxbar/internal/config"
	"github.com/jmylchreest/staxbar/internal/daemon"
	"github.com/jmylchreest/staxbar/internal/dbus"
	"github.com/jmylchreest/staxbar/internal/journal"
	"github.com/jmylchreest/staxbar/internal/msgstack"
	"github.com/jmylchreest/staxbar/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.staxbard"
	appName = "staxbard"

	// daemonContext is the context description staxbard uses for its own
	// status messages, such as config reload notices.
	daemonContext = "staxbard"

	// reloadNoticeDuration is how long self-pushed notices stay on the bar.
	reloadNoticeDuration = 5 * time.Second
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("staxbard version", version)
		os.Exit(0)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting staxbard", "version", version)

	cfg, err := config.LoadDaemonConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		stack         *msgstack.Stack
		barWindow     *bar.Bar
		dbusServer    *dbus.Server
		eventJournal  *journal.Journal
		chimePlayer   *audio.Player
		themeLoader   *theme.Loader
		configWatcher *daemon.ConfigWatcher
		running       atomic.Bool
	)

	// Signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		// The stack is confined to the GTK main loop. Every bus handler
		// below marshals onto it with glib.IdleAdd.
		stack = msgstack.NewStack()

		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
		}
		themeLoader.Apply(nil)
		themeLoader.StartHotReload(ctx)

		chimePlayer = audio.NewPlayer(cfg.Sound, logger)

		if cfg.Journal.Enabled {
			var err error
			eventJournal, err = journal.Open(cfg.JournalFile())
			if err != nil {
				logger.Warn("failed to open journal, events will not be recorded", "error", err)
				eventJournal = nil
			} else {
				logger.Info("journal opened", "path", eventJournal.Path())
			}
		}

		barWindow = bar.New(&app.Application, cfg, logger)
		barWindow.SetAccentChangedCallback(func(hue, alpha float64) {
			cfg.Accent.Hue = hue
			cfg.Accent.Alpha = alpha
			if err := cfg.Save(config.DaemonConfigPath()); err != nil {
				logger.Warn("failed to persist accent", "error", err)
			}
		})

		// Bar, journal, chime and bus signals all follow the stack's own
		// pushed/popped notifications.
		stack.ConnectTextPushed(func(contextID uint32, text string) {
			barWindow.SetText(contextID, text)
			barWindow.SetDepth(stack.Len())
			journalEvent(eventJournal, logger, journal.KindPushed, stack, contextID, text)
			go chimePlayer.PlayChime()
			if dbusServer != nil {
				if err := dbusServer.EmitTextPushed(contextID, text); err != nil {
					logger.Warn("failed to emit TextPushed", "error", err)
				}
			}
		})
		stack.ConnectTextPopped(func(contextID uint32, text string) {
			barWindow.SetText(contextID, text)
			barWindow.SetDepth(stack.Len())
			journalEvent(eventJournal, logger, journal.KindPopped, stack, contextID, text)
			if dbusServer != nil {
				if err := dbusServer.EmitTextPopped(contextID, text); err != nil {
					logger.Warn("failed to emit TextPopped", "error", err)
				}
			}
		})

		dbusServer = dbus.NewServer(logger)
		dbusServer.SetServerInfo(dbus.ServerInfo{
			Name:    appName,
			Vendor:  "staxbar",
			Version: version,
		})
		dbusServer.SetContextIDHandler(func(description string) uint32 {
			return onMainU32(func() uint32 { return stack.ContextID(description) })
		})
		dbusServer.SetPushHandler(func(contextID uint32, text string) uint32 {
			return onMainU32(func() uint32 { return stack.Push(contextID, text) })
		})
		dbusServer.SetPopHandler(func(contextID uint32) {
			onMain(func() { stack.Pop(contextID) })
		})
		dbusServer.SetRemoveHandler(func(contextID, messageID uint32) {
			onMain(func() { stack.Remove(contextID, messageID) })
		})
		dbusServer.SetRemoveAllHandler(func(contextID uint32) {
			onMain(func() { stack.RemoveAll(contextID) })
		})
		dbusServer.SetMessagesHandler(func() []dbus.StackMessage {
			var messages []dbus.StackMessage
			onMain(func() {
				for _, m := range stack.Messages() {
					messages = append(messages, dbus.StackMessage{
						MessageID: m.MessageID,
						ContextID: m.ContextID,
						Text:      m.Text,
					})
				}
			})
			return messages
		})

		if err := dbusServer.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		// Config hot-reload
		var err error
		configWatcher, err = daemon.NewConfigWatcher(logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.DaemonConfig) {
				glib.IdleAdd(func() {
					barWindow.ApplyConfig(newConfig)
					chimePlayer.ApplyConfig(newConfig.Sound)

					if newConfig.Theme.Name != cfg.Theme.Name {
						if err := themeLoader.LoadTheme(newConfig.Theme.Name); err != nil {
							logger.Warn("failed to load new theme", "theme", newConfig.Theme.Name, "error", err)
						} else {
							themeLoader.Apply(nil)
						}
					}

					cfg = newConfig
					pushNotice(stack, "configuration reloaded")
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				glib.IdleAdd(func() {
					pushNotice(stack, fmt.Sprintf("configuration invalid: %v", err))
				})
			})
			if err := configWatcher.Start(cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		barWindow.Present()
		logger.Info("staxbard ready", "bus_name", dbus.BusName)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
		if chimePlayer != nil {
			chimePlayer.Close()
		}
		if eventJournal != nil {
			_ = eventJournal.Close()
		}
		if stack != nil {
			stack.Clear()
		}
		running.Store(false)
	})

	status := app.Run(os.Args)
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("staxbard stopped")
}

// onMain runs fn on the GTK main loop and waits for it to finish.
func onMain(fn func()) {
	done := make(chan struct{})
	glib.IdleAdd(func() {
		fn()
		close(done)
	})
	<-done
}

// onMainU32 runs fn on the GTK main loop and returns its result.
func onMainU32(fn func() uint32) uint32 {
	ch := make(chan uint32, 1)
	glib.IdleAdd(func() {
		ch <- fn()
	})
	return <-ch
}

// journalEvent records a pushed or popped event. The message id comes from
// the stack top, which at notification time is the message the event is
// about (the pushed message, or the newly revealed top after a pop).
func journalEvent(j *journal.Journal, logger *slog.Logger, kind journal.EventKind, stack *msgstack.Stack, contextID uint32, text string) {
	if j == nil {
		return
	}

	var messageID uint32
	if top, ok := stack.Top(); ok {
		messageID = top.MessageID
	}

	event, err := journal.NewEvent(kind, contextID, messageID, text)
	if err != nil {
		logger.Warn("failed to create journal event", "error", err)
		return
	}
	if err := j.Append(event); err != nil {
		logger.Warn("failed to append journal event", "error", err)
	}
}

// pushNotice pushes a short-lived message under the daemon's own context
// and removes exactly that message after a delay.
func pushNotice(stack *msgstack.Stack, text string) {
	contextID := stack.ContextID(daemonContext)
	messageID := stack.Push(contextID, text)

	time.AfterFunc(reloadNoticeDuration, func() {
		glib.IdleAdd(func() {
			stack.Remove(contextID, messageID)
		})
	})
}
