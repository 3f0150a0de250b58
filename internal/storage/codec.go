package storage

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
)

// EncodeSnapshot serializes a snapshot as YAML. The same encoding is used for
// the database column and for exported files.
func EncodeSnapshot(s core.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses YAML produced by EncodeSnapshot. Unknown keys, empty
// input and malformed values are reported as core.ErrCorruptState.
func DecodeSnapshot(data []byte) (core.Snapshot, error) {
	var s core.Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return core.Snapshot{}, fmt.Errorf("%w: %v", core.ErrCorruptState, err)
	}
	return s, nil
}
