// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Metadata sanitization into filesystem-safe names
//   - Rename-first file and directory moves with a cross-device fallback
//   - Pruning of emptied directories up to a stop directory
//   - Cover art conversion, resizing and MIME detection
//
// # Filename Sanitization
//
// SanitizeFileName turns free-text artist, album and title values into
// strings that are safe as single path segments:
//
//	safe := ioutils.SanitizeFileName("AC/DC: Live 🎸") // Returns "AC DC Live"
//
// The function is idempotent, so already sanitized values pass unchanged.
//
// # Moves
//
// MoveFile and MoveDir always try os.Rename first. Only when the rename fails
// because source and destination live on different devices is the content
// copied into a temporary sibling of the destination, synced, renamed into
// place and then removed from the source:
//
//	err := ioutils.MoveFile(src, "/music/Artist/Album/01 Song.mp3", false)
//
// PruneEmptyDirs removes a directory and its emptied ancestors, stopping at
// (and never removing) a root:
//
//	ioutils.PruneEmptyDirs("/data/staging/Artist/Album", "/data/staging")
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Convert a webp thumbnail to JPEG and fit it into 1000x1000
//	jpeg, _ := svc.ConvertToJPEG(ctx, webpData)
//	resized, _ := svc.ResizeImage(ctx, jpeg, 1000, 1000)
//
//	mime := ioutils.DetectImageMIME(resized) // "image/jpeg"
package ioutils
