// Package download provides the rip orchestration: listing a playlist,
// acquiring every item concurrently and filing the results into staging.
//
// # Manager
//
// The Manager coordinates the entire rip:
//
//  1. Ensure the staging directory exists
//  2. Clear the album-art cache
//  3. List the playlist (a URL without entries is a single item)
//  4. Acquire items concurrently, each in its own work directory
//  5. Move each finished file to staging/<artist>/<album>/
//
// # Basic Usage
//
//	session := download.NewSession(audio.NewTagger(audio.NewID3Codec()))
//	yt := ytdlp.New(settings.Download.YtDlpPath, nil)
//	acquirer := download.NewAcquirer(session, yt, fetcher,
//	    download.WithTrimmer(audio.NewSilenceTrimmer(settings.Download.FfmpegPath, nil)))
//
//	manager := download.NewManager(settings, session, yt, acquirer,
//	    download.WithLogger(logger),
//	    download.WithProgress(func(event download.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    }))
//
//	summary, err := manager.Rip(ctx, "https://www.youtube.com/playlist?list=...")
//
// # Concurrency
//
// Items run on an errgroup limited to download.max_concurrent_tracks. The
// group has no shared cancellation: one failing item does not stop the
// others, and Rip returns the first failure after all items finished.
//
// # Session
//
// Session holds the album-art cache and the tagger. The art cache lock is
// held across lookup, fetch and store so each album's art is fetched at most
// once per rip, and an album without art is remembered as such.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package download
