// Package drafts keeps abstracts that were edited but never created on the
// server, so an unsaved draft survives a restart of the editor.
//
// A draft is the wire record of the abstract. It is stored as the protobuf
// binary of its structpb.Struct form next to a BLAKE2b-256 digest of that
// payload, which lets Save skip writes that would not change anything.
//
// Typical Usage
//
//	repo := drafts.NewSQLiteRepository(db)
//	changed, _ := repo.Save(ctx, "conference:"+id, abstract.Record())
//	rec, _ := repo.Load(ctx, "conference:"+id)
package drafts
