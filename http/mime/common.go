package mime

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	XML         MIME = "text/xml"
	JSON        MIME = "application/json"
	JAVASCRIPT  MIME = "application/javascript"
	PDF         MIME = "application/pdf"
	GZIP        MIME = "application/gzip"
	WASM        MIME = "application/wasm"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/x-icon"
	WEBP        MIME = "image/webp"
)
