package store

import "os"

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func readRaw(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}
