// Package config provides configuration management for songripper.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from TOML files and the environment
//   - Saving settings back to TOML
//   - Derived paths (staging, work and lock locations)
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Staging in /data/staging, library in /music
//	// Four tracks ripped in parallel
//	// ID3 tagging and cover art enabled
//
// # Loading
//
//	settings, err := config.Load("/etc/songripper.toml")
//	if err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
//
// Sources are layered, later ones winning:
//   - DefaultSettings
//   - DATA_DIR and NAS_PATH environment variables
//   - the TOML file
//   - SONGRIPPER_<SECTION>__<KEY> environment variables
//
// For example SONGRIPPER_DOWNLOAD__MAX_CONCURRENT_TRACKS=8 overrides
// download.max_concurrent_tracks.
//
// # Saving Settings
//
//	settings.Paths.LibraryDir = "/mnt/nas/music"
//	err := settings.Save("/home/me/.config/songripper/config.toml")
package config
