// Package arc reads, builds, and converts archive containers (tar,
// gzip-wrapped tar, zip) entirely in memory, without shelling out to
// external tools.
//
// An [Archive] composes a member tree (package tree), a binary codec
// (package tarfmt or zipfmt), and an optional compression filter (package
// filter). Deserialize routes bytes through the filter and codec into the
// tree; Serialize runs the same pipeline in reverse. Mutation operates
// directly on the tree.
//
// # Quick Start
//
// Build a zip from scratch:
//
//	a := arc.New(zipfmt.New())
//	_ = a.AddFile(tree.NewFile("docs/readme.txt", []byte("hello")))
//	data, err := a.Serialize()
//
// Load whatever format some bytes happen to be:
//
//	a, err := arc.Open(data)
//	if err != nil {
//	    return err
//	}
//	for f := range a.Files() {
//	    fmt.Println(f.Path(), f.Size())
//	}
//
// # Format Conversion
//
// Copy members between containers with different codecs:
//
//	src, _ := arc.Open(tarData)
//	dst := arc.New(zipfmt.New())
//	for f := range src.Files() {
//	    _ = dst.AddFile(f.Clone())
//	}
//	zipData, err := dst.Serialize()
//
// The container is fully synchronous and unlocked; callers needing
// concurrent access must serialize it externally.
package arc
