// Package assets embeds the default vocabulary, name groups and schema so the
// generator works without any files on disk.
package assets

import "embed"

// paths inside FS
const (
	VocabFile  = "defaults/vocab.txt"
	NamesFile  = "defaults/names.txt"
	SchemaFile = "defaults/schema.txt"
)

//go:embed defaults/*.txt
var FS embed.FS
