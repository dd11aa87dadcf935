package classifier

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
)

// Sniff builds an attachment from raw bytes and an optional file name, for
// transports that deliver plain uploads without attachment hints.
func Sniff(data []byte, name string) domain.Attachment {
	mtype := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case mtype.Is(domain.MIME_TYPE_GIF):
		return domain.Document{Data: data, FileName: withExtension(name, domain.EXTENSION_GIF), MimeType: mtype.String()}
	case mtype.Is("image/webp"):
		return domain.Document{Data: data, FileName: withExtension(name, domain.EXTENSION_WEBP), MimeType: mtype.String()}
	case mtype.Is(domain.MIME_TYPE_SVG):
		return domain.Document{Data: data, FileName: withExtension(name, domain.EXTENSION_SVG), MimeType: domain.MIME_TYPE_SVG}
	case strings.HasPrefix(mtype.String(), "video/"):
		if mtype.Is("video/webm") {
			return domain.Sticker{Data: data, IsVideo: true}
		}
		return domain.Video{Data: data}
	case (mtype.Is("application/gzip") || mtype.Is("application/json")) &&
		(ext == domain.EXTENSION_TGS || ext == ".json"):
		return domain.Sticker{Data: data, IsAnimated: true}
	case strings.HasPrefix(mtype.String(), "image/"):
		return domain.Photo{Data: data}
	default:
		return domain.Document{Data: data, FileName: name, MimeType: mtype.String()}
	}
}

func withExtension(name, ext string) string {
	if name == "" {
		return "upload" + ext
	}
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}
