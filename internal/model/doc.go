// Package model defines the track records and file layout rules shared by
// staging and the library.
//
// # Layout
//
// Every audio file lives at <root>/<artist>/<album>/<NN ><title>.mp3, where
// the "NN " track number prefix is optional:
//
//	name := model.FileName(model.NumberPrefix(1), "One More Time") // "01 One More Time.mp3"
//	prefix, title := model.SplitNumberPrefix("01 One More Time")   // "01 ", "One More Time"
//
// # Track
//
// Track is rebuilt from the filesystem on every scan:
//
//	track := model.TrackFromPath(path)
//	fmt.Println(track.Artist, track.Album, track.Title)
//
// Cover art, when loaded, renders as a data URI:
//
//	src := track.Cover.DataURI() // "data:image/jpeg;base64,..."
//
// # Album
//
// GroupAlbums and SortTracks give listings a stable artist/album order.
package model
