//go:build !embed_openapi

package api

import "os"

// openAPILoad reads the spec from the repo path (dev mode). OPENAPI_PATH
// overrides the default for processes not started from the repo root.
func openAPILoad() ([]byte, error) {
	path := os.Getenv("OPENAPI_PATH")
	if path == "" {
		path = "openapi/openapi.yaml"
	}
	return os.ReadFile(path)
}
