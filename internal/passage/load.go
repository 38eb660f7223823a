package passage

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

//go:embed ozymandias.txt
var defaultText string

// Default returns the built-in practice passage.
func Default() *Passage {
	return New(defaultText)
}

// LoadFile reads the whole file at path as a passage.
func LoadFile(path string) (*Passage, error) {
	if path == "" {
		return nil, fmt.Errorf("passage path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %q: %w", path, err)
	}
	return New(string(data)), nil
}

// FromClipboard reads the system clipboard as a passage.
func FromClipboard() (*Passage, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("clipboard is not supported on this system")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	return New(text), nil
}
