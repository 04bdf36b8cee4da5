// Package jsonutil provides small JSON helpers shared by persistence
// code: contextual error wrapping for unmarshal and file decode.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeFile reads path and unmarshals its contents into v, wrapping
// errors with the file path for context.
func DecodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalWithContext(data, v, path)
}
