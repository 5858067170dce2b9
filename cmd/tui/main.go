package main

import (
	"context"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/td0m/studyman/internal/config"
	"github.com/td0m/studyman/internal/export"
	"github.com/td0m/studyman/internal/logger"
	"github.com/td0m/studyman/pkg/persist"
	"github.com/td0m/studyman/pkg/reminder"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath = flag.String("config", ".env", "Path to a dotenv config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	check(err)

	logr, err := logger.NewFile(cfg)
	check(err)
	defer logr.Sync() //nolint:errcheck

	kv, err := persist.Open(persist.Options{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		RedisAddr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
		Logger:        logr,
	})
	check(err)
	defer kv.Close()

	session := persist.NewSession(kv, logr)
	a := newApp(session.Load(), session, export.New(cfg.UI.ExportDir, logr), logr)
	a.pageSize = cfg.UI.PageSize

	p := tea.NewProgram(a, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifier := reminder.NotifierFunc(func(r reminder.Reminder) error {
		p.Send(reminderMsg(r))
		return nil
	})
	go reminder.NewService(a.book, notifier, cfg.Reminders.Interval, logr).Run(ctx)

	logr.Info("starting", zap.String("store", cfg.Store.Driver), zap.String("path", cfg.Store.Path))
	_, err = p.Run()
	check(err)
}
