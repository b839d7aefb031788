package testsupport

import (
	"encoding/json"
	"os"
)

// LoadFixture reads a fixture file relative to the calling test package.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes the JSON fixture at path into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
