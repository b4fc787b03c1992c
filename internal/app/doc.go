// Package app wires configuration, the rip pipeline, staging and the library
// into one value that the CLI and the TUI drive.
//
//	settings, _ := config.Load("")
//	a := app.New(settings, app.WithLogger(logger))
//
//	lock, err := app.AcquireLock(settings.LockPath())
//	if err != nil {
//	    return err
//	}
//	defer lock.Release()
//
//	summary, err := a.Rip(ctx, url, nil)
//	tracks, _ := a.ListStaged()
//
// All operations share one download.Session and with it one tag lock.
package app
