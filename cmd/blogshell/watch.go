package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/blogshell"
)

const watchDebounce = 300 * time.Millisecond

// watchFixtures invalidates the app's post cache when a fixture file
// changes and reloads the brand config when company.json changes.
func watchFixtures(dir string, app *blogshell.App) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range []string{dir, filepath.Join(dir, "posts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			if err := watcher.Add(d); err != nil {
				watcher.Close()
				return nil, err
			}
		}
	}

	logger := app.Echo.Logger
	go func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if filepath.Base(event.Name) == blogshell.CompanyFile {
					reloadBrand(app, event.Name)
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					logger.Infof("fixtures changed (%s); invalidating post cache", event.Name)
					app.Cache.Invalidate()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("fixture watcher: %v", err)
			}
		}
	}()
	return func() { watcher.Close() }, nil
}

func reloadBrand(app *blogshell.App, path string) {
	if app.Config.BrandConfigPath != "" {
		return
	}
	cfg, err := blogshell.LoadBrandConfig(path)
	if err != nil {
		app.Echo.Logger.Warnf("reload brand config: %v", err)
		return
	}
	app.Brand.Init(cfg)
}
