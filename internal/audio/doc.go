// Package audio provides tag reading and writing for ripped tracks and the
// ffmpeg silence trimmer.
//
// # Tagging
//
// Tag I/O goes through a Codec. ID3Codec handles MP3 files; NopCodec is used
// when tagging is disabled and turns every write into a no-op:
//
//	tagger := audio.NewTagger(audio.NewID3Codec())
//	err := tagger.WriteTags(path, audio.Tags{
//	    Artist:      "Daft Punk",
//	    Album:       "Discovery",
//	    Title:       "One More Time",
//	    TrackNumber: 1,
//	})
//
// The Tagger holds one mutex across every call, reads included.
//
// Cover art replaces whatever pictures the file already has:
//
//	err = tagger.SetCover(path, audio.Picture{MIME: "image/jpeg", Data: art})
//
// # Silence Trimming
//
//	trimmer := audio.NewSilenceTrimmer("ffmpeg", command.ExecRunner{})
//	trimmed := trimmer.Trim(ctx, path)
//
// Trimming never fails the caller; it reports whether the file changed.
package audio
