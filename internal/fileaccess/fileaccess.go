// Package fileaccess reads and writes local files on behalf of the
// controller. Failures are captured into the result mapping rather than
// returned as errors, so the dispatcher's routing stays uniform: the only
// failure signal is an "error" key in the data.
package fileaccess

import (
	"os"

	"github.com/rs/zerolog/log"
)

type Accessor struct{}

func New() *Accessor {
	return &Accessor{}
}

// Read returns {content: string} or {error: string}.
func (a *Accessor) Read(path string) map[string]any {
	log.Info().Msgf("fileaccess: reading file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Msgf("fileaccess: reading file %s: %v", path, err)
		return map[string]any{"error": err.Error()}
	}

	return map[string]any{"content": string(data)}
}

// Write overwrites the file and returns {size: int} or {error: string}. Size
// is the length of the content actually written; there is no size cap.
func (a *Accessor) Write(path string, content string) map[string]any {
	log.Info().Msgf("fileaccess: writing file: %s", path)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		log.Error().Msgf("fileaccess: writing file %s: %v", path, err)
		return map[string]any{"error": err.Error()}
	}

	return map[string]any{"size": len(content)}
}
