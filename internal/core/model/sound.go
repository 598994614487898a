package model

// SoundOrigin discriminates where a sound's audio comes from.
type SoundOrigin string

const (
	// SoundBuiltin sounds ship with the application as embedded assets.
	SoundBuiltin SoundOrigin = "builtin"
	// SoundUploaded sounds were added by the user and carry their own bytes.
	SoundUploaded SoundOrigin = "uploaded"
)

// SoundSpec is a tagged sound source. Builtin specs reference an embedded
// asset by file name; uploaded specs carry the raw audio bytes.
type SoundSpec struct {
	ID     string
	Name   string
	Origin SoundOrigin
	File   string
	Data   []byte
}
