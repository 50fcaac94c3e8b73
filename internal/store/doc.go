// Package store persists the embedding index as a single JSON artifact.
//
// The artifact is an ordered array of DocumentRecord objects. Ordering by
// document id makes the encoding deterministic: a sync pass that changes
// nothing leaves the file byte-for-byte identical.
//
// # Usage
//
//	st := store.New("embeddings.json")
//	if err := st.Load(); err != nil {
//	    log.Fatal(err)
//	}
//
//	st.Upsert(record)
//	if err := st.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Durability
//
// Save writes the whole record set to a temp file and renames it over the
// artifact, so a crash mid-write never corrupts the index. Load treats a
// missing file as an empty index and a corrupt file as empty-with-warning;
// startup never fails on store state.
//
// # Concurrency
//
// Readers call Snapshot and work on a private copy while a sync pass
// upserts into the live map. A record is therefore always observed whole,
// with every field from the same indexing run.
package store
