// Package staging reads and edits the staging tree, where ripped tracks wait
// for approval.
//
// Every staged file sits at staging/<artist>/<album>/<NN ><title>.mp3, and
// the directory names equal the file's sanitized tags. The Editor keeps that
// true: changing a tag moves the file and prunes the directories it leaves
// empty.
//
// # Listing
//
//	inv := staging.NewInventory(settings.StagingDir(), session.Tagger())
//	tracks, err := inv.List()
//	for _, t := range tracks {
//	    fmt.Println(t.Artist, t.Album, t.Title)
//	}
//
// # Editing
//
//	editor := staging.NewEditor(settings.StagingDir(), session.Tagger(), session)
//	newPath, err := editor.UpdateTag(path, staging.FieldAlbum, "Discovery")
//	var updateErr *staging.TrackUpdateError
//	if errors.As(err, &updateErr) {
//	    // show to the user
//	}
package staging
