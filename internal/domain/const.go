package domain

const (
	// Container hints for the video decoder
	CONTAINER_MP4  = ".mp4"
	CONTAINER_WEBM = ".webm"

	// Extension used for vector animation temp files
	EXTENSION_TGS = ".tgs"

	// Document hints recognised by the classifier
	MIME_TYPE_GIF  = "image/gif"
	EXTENSION_GIF  = ".gif"
	EXTENSION_WEBP = ".webp"
	MIME_TYPE_SVG  = "image/svg+xml"
	EXTENSION_SVG  = ".svg"

	// DEFAULT_VECTOR_SCALE is the default render scale for vector animations
	DEFAULT_VECTOR_SCALE = 2

	// DEFAULT_MAX_DECODED_PIXELS caps the area of one decoded frame (twice PIL's bomb warning threshold)
	DEFAULT_MAX_DECODED_PIXELS = 178956970
)
