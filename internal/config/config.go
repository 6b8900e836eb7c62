package config

import "os"

const DefaultDocumentPath = "design.json"

// DocumentPath returns the document path from the RELINKER_DOCUMENT env
// var, falling back to DefaultDocumentPath.
func DocumentPath() string {
	if env := os.Getenv("RELINKER_DOCUMENT"); env != "" {
		return env
	}
	return DefaultDocumentPath
}
