package render

import (
	"fmt"
	"os"

	"github.com/joestump/leetdeck/internal/config"
)

// Templates holds the card layout. The contents are opaque and handed to the
// deck writer unmodified.
type Templates struct {
	Front string
	Back  string
	CSS   string
}

// LoadTemplates reads the three layout files verbatim.
func LoadTemplates(front, back, css string) (*Templates, error) {
	var t Templates
	for _, f := range []struct {
		name string
		path string
		dst  *string
	}{
		{"front", front, &t.Front},
		{"back", back, &t.Back},
		{"css", css, &t.CSS},
	} {
		if f.path == "" {
			return nil, fmt.Errorf("%w: %s template path is empty", config.ErrConfiguration, f.name)
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s template: %v", config.ErrConfiguration, f.name, err)
		}
		*f.dst = string(data)
	}
	return &t, nil
}
