package resources

import (
	"embed"
	"fmt"
	"sync"
)

const soundDir = "sounds/"

//go:embed sounds/*.wav
var soundFS embed.FS

var soundCache sync.Map

// Sound returns the raw bytes of an embedded alarm sound.
func Sound(fileName string) ([]byte, error) {
	path := soundDir + fileName
	if cached, ok := soundCache.Load(path); ok {
		return cached.([]byte), nil
	}

	data, err := soundFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", path, err)
	}
	soundCache.Store(path, data)
	return data, nil
}

// MustSound returns an embedded alarm sound or panics on error.
func MustSound(fileName string) []byte {
	data, err := Sound(fileName)
	if err != nil {
		panic(err)
	}
	return data
}
