package telegram

import (
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
)

// Source identifies the media carried by a message before its bytes are downloaded
type Source struct {
	FileID     string
	Kind       domain.Kind
	FileName   string
	MimeType   string
	IsAnimated bool
	IsVideo    bool
}

// SourceFromMessage picks the media of msg. Animation wins over the document
// Telegram attaches alongside it; photos use the largest size.
func SourceFromMessage(msg *tgbotapi.Message) (Source, bool) {
	if msg == nil {
		return Source{}, false
	}

	switch {
	case len(msg.Photo) > 0:
		photo := largestPhoto(msg.Photo)
		return Source{FileID: photo.FileID, Kind: domain.KindPhoto}, photo.FileID != ""
	case msg.Animation != nil:
		return Source{FileID: msg.Animation.FileID, Kind: domain.KindAnimation}, true
	case msg.Document != nil:
		return Source{
			FileID:   msg.Document.FileID,
			Kind:     domain.KindDocument,
			FileName: msg.Document.FileName,
			MimeType: msg.Document.MimeType,
		}, true
	case msg.Video != nil:
		return Source{FileID: msg.Video.FileID, Kind: domain.KindVideo}, true
	case msg.Sticker != nil:
		return Source{
			FileID:     msg.Sticker.FileID,
			Kind:       domain.KindSticker,
			IsAnimated: msg.Sticker.IsAnimated,
		}, true
	default:
		return Source{}, false
	}
}

// WithFilePath fills hints that are only known from the resolved file path.
// Video stickers are stored as .webm and vector stickers as .tgs.
func (s Source) WithFilePath(filePath string) Source {
	if s.Kind != domain.KindSticker {
		return s
	}
	switch strings.ToLower(path.Ext(filePath)) {
	case domain.CONTAINER_WEBM:
		s.IsVideo = true
	case domain.EXTENSION_TGS:
		s.IsAnimated = true
	}
	return s
}

// Attachment builds the domain attachment for the downloaded bytes
func (s Source) Attachment(data []byte) domain.Attachment {
	switch s.Kind {
	case domain.KindPhoto:
		return domain.Photo{Data: data}
	case domain.KindDocument:
		return domain.Document{Data: data, FileName: s.FileName, MimeType: s.MimeType}
	case domain.KindVideo:
		return domain.Video{Data: data}
	case domain.KindAnimation:
		return domain.Animation{Data: data}
	case domain.KindSticker:
		return domain.Sticker{Data: data, IsAnimated: s.IsAnimated, IsVideo: s.IsVideo}
	default:
		return nil
	}
}

func largestPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}
