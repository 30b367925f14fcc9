package textinput

import (
	"context"

	"github.com/tributary-dev/tributary/capability"
)

// Text-Input-Tool and File-Input-Tool pass their aggregated input straight
// through; the interesting work happened upstream (editor literals, file
// upload expansion).

func passthrough(capability.Config) (capability.Capability, error) {
	return capability.Func(func(ctx context.Context, query string) (string, error) {
		return query, nil
	}), nil
}

func filePassthrough(capability.Config) (capability.Capability, error) {
	return capability.Func(func(ctx context.Context, query string) (string, error) {
		if query == "" {
			return "File content would be provided here", nil
		}
		return query, nil
	}), nil
}

func init() {
	capability.Register("Text-Input-Tool", capability.EnrichNone, passthrough)
	capability.Register("File-Input-Tool", capability.EnrichNone, filePassthrough)
}
