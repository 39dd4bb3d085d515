// Package guide embeds the installation guide offered for download.
package guide

import _ "embed"

const (
	FileName    = "EA_Golden_Engel_Guide.txt"
	ContentType = "text/plain; charset=utf-8"
)

//go:embed guide.txt
var content []byte

// Content returns the guide text.
func Content() []byte {
	out := make([]byte, len(content))
	copy(out, content)
	return out
}
