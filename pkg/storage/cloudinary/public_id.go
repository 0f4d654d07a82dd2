package cloudinary

import (
	"net/url"
	"strings"
)

const uploadMarker = "upload"

// PublicIDFromURL derives the deletable public ID from a hosted asset URL.
// Everything after the "upload" path segment is treated as subpath plus
// filename; the filename loses its extension and the pieces are rejoined
// with "/". A URL without the marker segment yields "", meaning there is
// nothing to delete; callers must not treat that as an error.
func PublicIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}

	markerIdx := -1
	for i, segment := range segments[:len(segments)-1] {
		if segment == uploadMarker {
			markerIdx = i
			break
		}
	}
	if markerIdx == -1 {
		return ""
	}

	filename := segments[len(segments)-1]
	if dot := strings.LastIndex(filename, "."); dot != -1 {
		filename = filename[:dot]
	}

	subpath := segments[markerIdx+1 : len(segments)-1]
	if len(subpath) == 0 {
		return filename
	}
	return strings.Join(subpath, "/") + "/" + filename
}
