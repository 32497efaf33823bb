package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"
)

var (
	logger = NewLogger()
)

func main() {
	var err error
	settings, err = loadSettings(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := initLogger(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	index := NewIndex(NewKeys(settings.Keys, settings.Redis), settings.Tree)
	if err := index.Rebuild(); err != nil {
		logger.Error("Build tree failed: %s", err)
	}

	if settings.Tree.Dump {
		tree, _ := index.Current()
		for _, line := range tree.Lines() {
			logger.Info("%s", line)
		}
	}

	cache, err := NewCache(settings.Cache, settings.Redis, settings.Memcache)
	if err != nil {
		logger.Error("%s", err)
		os.Exit(1)
	}

	audit, err := NewAuditLogger(settings.Audit, settings.Redis, settings.Postgresql)
	if err != nil {
		logger.Error("%s", err)
		os.Exit(1)
	}

	handler := NewHandler(index, cache, audit, settings.Server.Zone)
	index.refresh(time.Duration(settings.Keys.Refresh) * time.Second)

	server := NewServer(settings.Server)
	server.Run(handler)

	logger.Info("gotrie %s start", settings.Version)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	<-sig
	logger.Info("signal received, stopping")
	server.Shutdown()
}

func initLogger() error {
	if settings.Log.Stdout {
		if err := logger.SetLogger("console", nil); err != nil {
			return err
		}
	}

	if settings.Log.File != "" {
		config := map[string]interface{}{"file": settings.Log.File}
		if err := logger.SetLogger("file", config); err != nil {
			return err
		}
	}

	level, err := settings.Log.LogLevel()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
