package domain

import "time"

// TrackSource identifies how a track entered the catalog.
type TrackSource string

const (
	// TrackSourceGenerated tracks come from the generation provider and own
	// a single blob in the generated bucket.
	TrackSourceGenerated TrackSource = "generated"

	// TrackSourceSeparated tracks come from stem separation and may own up
	// to five blobs: the original upload and four stems.
	TrackSourceSeparated TrackSource = "separated"
)

// FileReference identifies one blob by bucket and object. Two references are
// the same file iff both fields match.
type FileReference struct {
	BucketID string
	FileID   string
}

// BucketSet names the three buckets track blobs live in. The sweep needs it
// to resolve the named stem slots, which store only object IDs.
type BucketSet struct {
	Uploads   string
	Stems     string
	Generated string
}

// TrackRecord is a row of the track catalog as the cleanup sweep sees it.
// Soft deletion (IsDeleted/DeletedAt) is performed by the UI layer; this
// service only ever hard-deletes records whose retention window has lapsed.
type TrackRecord struct {
	ID        string
	Title     string
	Source    TrackSource
	IsDeleted bool
	DeletedAt *time.Time

	// Generic blob reference. For generated tracks this is the only slot;
	// for separated tracks it may duplicate one of the named slots below.
	FileID   string
	BucketID string

	// Named slots used by separated tracks.
	OriginalFileID string
	StemVocalsID   string
	StemDrumsID    string
	StemBassID     string
	StemOtherID    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileRefs resolves every blob reference the record carries, in slot order.
// Generated tracks yield at most one reference, defaulting to the generated
// bucket when the record does not pin one. Separated tracks yield the
// original upload, the four stems, and finally the generic pair when both
// halves are set. The result may contain duplicates; callers that delete
// must pass it through DedupeFileRefs first.
func (t *TrackRecord) FileRefs(buckets BucketSet) []FileReference {
	if t.Source == TrackSourceGenerated {
		if t.FileID == "" {
			return nil
		}
		bucketID := t.BucketID
		if bucketID == "" {
			bucketID = buckets.Generated
		}
		return []FileReference{{BucketID: bucketID, FileID: t.FileID}}
	}

	var refs []FileReference
	if t.OriginalFileID != "" {
		refs = append(refs, FileReference{BucketID: buckets.Uploads, FileID: t.OriginalFileID})
	}
	for _, stemID := range []string{t.StemVocalsID, t.StemDrumsID, t.StemBassID, t.StemOtherID} {
		if stemID != "" {
			refs = append(refs, FileReference{BucketID: buckets.Stems, FileID: stemID})
		}
	}
	if t.FileID != "" && t.BucketID != "" {
		refs = append(refs, FileReference{BucketID: t.BucketID, FileID: t.FileID})
	}
	return refs
}

// DedupeFileRefs removes duplicate (bucket, file) pairs, preserving
// first-seen order. Separated tracks commonly mirror one stem slot into the
// generic fileId/bucketId pair; deleting it twice would misreport the second
// attempt as a failure.
func DedupeFileRefs(refs []FileReference) []FileReference {
	seen := make(map[FileReference]struct{}, len(refs))
	out := refs[:0:0]
	for _, ref := range refs {
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
