package telegram_test

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/transport/telegram"
)

func TestSourceFromMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      *tgbotapi.Message
		ok       bool
		expected telegram.Source
	}{
		{
			name: "nil message",
			msg:  nil,
		},
		{
			name: "text only",
			msg:  &tgbotapi.Message{Text: "hello"},
		},
		{
			name: "largest photo",
			msg: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
				{FileID: "small", Width: 90, Height: 60},
				{FileID: "large", Width: 1280, Height: 853},
				{FileID: "medium", Width: 320, Height: 213},
			}},
			ok:       true,
			expected: telegram.Source{FileID: "large", Kind: domain.KindPhoto},
		},
		{
			name: "animation wins over document",
			msg: &tgbotapi.Message{
				Animation: &tgbotapi.Animation{FileID: "anim"},
				Document:  &tgbotapi.Document{FileID: "doc", FileName: "a.gif.mp4", MimeType: "video/mp4"},
			},
			ok:       true,
			expected: telegram.Source{FileID: "anim", Kind: domain.KindAnimation},
		},
		{
			name:     "document",
			msg:      &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", FileName: "cat.gif", MimeType: "image/gif"}},
			ok:       true,
			expected: telegram.Source{FileID: "doc", Kind: domain.KindDocument, FileName: "cat.gif", MimeType: "image/gif"},
		},
		{
			name:     "video",
			msg:      &tgbotapi.Message{Video: &tgbotapi.Video{FileID: "vid"}},
			ok:       true,
			expected: telegram.Source{FileID: "vid", Kind: domain.KindVideo},
		},
		{
			name:     "animated sticker",
			msg:      &tgbotapi.Message{Sticker: &tgbotapi.Sticker{FileID: "stk", IsAnimated: true}},
			ok:       true,
			expected: telegram.Source{FileID: "stk", Kind: domain.KindSticker, IsAnimated: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, ok := telegram.SourceFromMessage(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, source)
			}
		})
	}
}

func TestSource_WithFilePath(t *testing.T) {
	sticker := telegram.Source{FileID: "stk", Kind: domain.KindSticker}

	video := sticker.WithFilePath("https://api.telegram.org/file/bot1:x/stickers/file_3.WEBM")
	assert.True(t, video.IsVideo)
	assert.False(t, video.IsAnimated)

	vector := sticker.WithFilePath("stickers/file_4.tgs")
	assert.True(t, vector.IsAnimated)

	raster := sticker.WithFilePath("stickers/file_5.webp")
	assert.Equal(t, sticker, raster)

	doc := telegram.Source{Kind: domain.KindDocument}
	assert.Equal(t, doc, doc.WithFilePath("documents/x.webm"))
}

func TestSource_Attachment(t *testing.T) {
	data := []byte("payload")

	assert.Equal(t, domain.Photo{Data: data}, telegram.Source{Kind: domain.KindPhoto}.Attachment(data))
	assert.Equal(t, domain.Video{Data: data}, telegram.Source{Kind: domain.KindVideo}.Attachment(data))
	assert.Equal(t, domain.Animation{Data: data}, telegram.Source{Kind: domain.KindAnimation}.Attachment(data))
	assert.Equal(t,
		domain.Document{Data: data, FileName: "a.webp", MimeType: "image/webp"},
		telegram.Source{Kind: domain.KindDocument, FileName: "a.webp", MimeType: "image/webp"}.Attachment(data))
	assert.Equal(t,
		domain.Sticker{Data: data, IsVideo: true},
		telegram.Source{Kind: domain.KindSticker, IsVideo: true}.Attachment(data))

	require.Nil(t, telegram.Source{}.Attachment(data))
}
