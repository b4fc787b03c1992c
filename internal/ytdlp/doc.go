// Package ytdlp drives the yt-dlp binary in its two modes: JSON metadata
// probing and audio extraction.
//
// # Probing
//
//	client := ytdlp.New("yt-dlp", command.ExecRunner{})
//	info, err := client.Probe(ctx, "https://youtu.be/abc")
//	artist := info.First("artist", "uploader")
//
// # Playlists
//
//	listing, err := client.Listing(ctx, playlistURL)
//	for _, item := range listing.ItemURLs(playlistURL) {
//	    ...
//	}
//
// A flat listing without entries yields the input URL as its only item.
//
// # Extraction
//
//	path, err := client.ExtractAudio(ctx, url, workDir, "01 Title")
//
// Every invocation passes --quiet and --no-warnings. Output that is not valid
// JSON is reported as ErrMalformedOutput.
package ytdlp
