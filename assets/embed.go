package assets

import (
	"embed"
	"path/filepath"
	"strings"
)

//go:embed data
var dataFS embed.FS

// LoadFile loads an embedded data file by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return dataFS.ReadFile(cleanAssetPath(path))
}

// DefaultMacro is run by F5 when no macro file exists on disk.
func DefaultMacro() []byte {
	b, err := LoadFile("macro.tengo")
	if err != nil {
		return nil
	}
	return b
}

// HelpLines are the help overlay lines.
func HelpLines() []string {
	b, err := LoadFile("help.txt")
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		s = s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	if !strings.HasPrefix(s, "data/") {
		s = "data/" + s
	}
	return s
}
