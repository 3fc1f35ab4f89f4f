package mime

import "path"

var Extension = map[string]MIME{
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".js":   JAVASCRIPT,
	".mjs":  JAVASCRIPT,
	".ico":  ICO,
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".svg":  SVG,
	".webp": WEBP,
	".json": JSON,
	".xml":  XML,
	".txt":  Plain,
	".pdf":  PDF,
	".gz":   GZIP,
	".wasm": WASM,
}

// ByExtension returns the MIME of the file name by its extension, falling back to
// OctetStream for unknown ones.
func ByExtension(name string) MIME {
	if m, ok := Extension[path.Ext(name)]; ok {
		return m
	}

	return OctetStream
}
