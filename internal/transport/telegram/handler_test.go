package telegram_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
	"github.com/feral-file/ff-frame-inspector/internal/mocks"
	"github.com/feral-file/ff-frame-inspector/internal/transport/telegram"
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

const chatID int64 = 4242

type handlerDeps struct {
	bot        *mocks.MockTelegramBot
	downloader *mocks.MockDownloader
	processor  *mocks.MockProcessor
}

func newHandler(ctrl *gomock.Controller) (*telegram.Handler, *handlerDeps) {
	deps := &handlerDeps{
		bot:        mocks.NewMockTelegramBot(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
		processor:  mocks.NewMockProcessor(ctrl),
	}
	return telegram.NewHandler(deps.bot, deps.downloader, deps.processor), deps
}

func message(mutate func(*tgbotapi.Message)) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 7,
		Chat:      &tgbotapi.Chat{ID: chatID},
		From:      &tgbotapi.User{ID: 99, UserName: "alice"},
	}
	mutate(msg)
	return tgbotapi.Update{Message: msg}
}

func command(name string) tgbotapi.Update {
	return message(func(m *tgbotapi.Message) {
		m.Text = "/" + name
		m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name) + 1}}
	})
}

// expectText records an expected text message to the test chat
func expectText(bot *mocks.MockTelegramBot, text string) *gomock.Call {
	return bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg, ok := c.(tgbotapi.MessageConfig)
		if !ok {
			return tgbotapi.Message{}, errors.New("expected a text message")
		}
		if msg.ChatID != chatID || msg.Text != text {
			return tgbotapi.Message{}, errors.New("unexpected text message: " + msg.Text)
		}
		return tgbotapi.Message{}, nil
	})
}

func TestHandleUpdate_Commands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	var sent []string
	deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		sent = append(sent, c.(tgbotapi.MessageConfig).Text)
		return tgbotapi.Message{}, nil
	}).Times(2)

	h.HandleUpdate(context.Background(), command("start"))
	h.HandleUpdate(context.Background(), command("help"))
	h.HandleUpdate(context.Background(), command("unknown"))

	require.Len(t, sent, 2)
	assert.Equal(t, telegram.StartText, sent[0])
	assert.Equal(t, telegram.HelpText, sent[1])
}

func TestHandleUpdate_IgnoresNonMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newHandler(ctrl)
	h.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 1})
	h.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{}})
}

func TestHandleUpdate_NoMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	expectText(deps.bot, "Could not process the media file")

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) { m.Text = "hello" }))
}

func TestHandleUpdate_PhotoReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	url := "https://api.telegram.org/file/bot1:x/photos/file_1.jpg"

	deps.bot.EXPECT().GetFileDirectURL("big").Return(url, nil)
	deps.downloader.EXPECT().Download(gomock.Any(), url).Return([]byte("jpeg"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), domain.Photo{Data: []byte("jpeg")}).Return(&processor.Result{
		Reply: &reporter.Reply{Photo: []byte{0xff, 0xd8}, Caption: "Processed 1 frames\nSize: 800x600"},
	})
	deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		photo, ok := c.(tgbotapi.PhotoConfig)
		require.True(t, ok)
		assert.Equal(t, chatID, photo.ChatID)
		assert.Equal(t, "Processed 1 frames\nSize: 800x600", photo.Caption)
		file, ok := photo.File.(tgbotapi.FileBytes)
		require.True(t, ok)
		assert.Equal(t, []byte{0xff, 0xd8}, file.Bytes)
		assert.Equal(t, "frame.jpg", file.Name)
		return tgbotapi.Message{}, nil
	})

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{{FileID: "small", Width: 90, Height: 90}, {FileID: "big", Width: 800, Height: 600}}
	}))
}

func TestHandleUpdate_PNGReplyFileName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	url := "https://api.telegram.org/file/bot1:x/photos/file_2.jpg"

	deps.bot.EXPECT().GetFileDirectURL("p").Return(url, nil)
	deps.downloader.EXPECT().Download(gomock.Any(), url).Return([]byte("jpeg"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), gomock.Any()).Return(&processor.Result{
		Reply: &reporter.Reply{Photo: []byte{0x89, 'P', 'N', 'G'}, Format: adapter.ImageFormatPNG, Caption: "c"},
	})
	deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		photo, ok := c.(tgbotapi.PhotoConfig)
		require.True(t, ok)
		file, ok := photo.File.(tgbotapi.FileBytes)
		require.True(t, ok)
		assert.Equal(t, "frame.png", file.Name)
		return tgbotapi.Message{}, nil
	})

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{{FileID: "p", Width: 1, Height: 1}}
	}))
}

func TestHandleUpdate_VideoStickerFromFilePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	url := "https://api.telegram.org/file/bot1:x/stickers/file_9.webm"

	deps.bot.EXPECT().GetFileDirectURL("stk").Return(url, nil)
	deps.downloader.EXPECT().Download(gomock.Any(), url).Return([]byte("webm"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), domain.Sticker{Data: []byte("webm"), IsVideo: true}).
		Return(&processor.Result{Reply: reporter.Failure()})
	expectText(deps.bot, "Could not process the media file")

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Sticker = &tgbotapi.Sticker{FileID: "stk"}
	}))
}

func TestHandleUpdate_EncodeFailureText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	deps.bot.EXPECT().GetFileDirectURL("vid").Return("https://example.com/v.mp4", nil)
	deps.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return([]byte("mp4"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), gomock.Any()).
		Return(&processor.Result{Reply: &reporter.Reply{Text: reporter.EncodeFailedText(12)}})
	expectText(deps.bot, "Processed 12 frames, but could not send the result")

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Video = &tgbotapi.Video{FileID: "vid"}
	}))
}

func TestHandleUpdate_DownloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	deps.bot.EXPECT().GetFileDirectURL("doc").Return("https://example.com/a.gif", nil)
	deps.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	expectText(deps.bot, "An error occurred while processing the file")

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Document = &tgbotapi.Document{FileID: "doc", FileName: "a.gif"}
	}))
}

func TestHandleUpdate_FileURLFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	deps.bot.EXPECT().GetFileDirectURL("anim").Return("", errors.New("file is too big"))
	expectText(deps.bot, "An error occurred while processing the file")

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Animation = &tgbotapi.Animation{FileID: "anim"}
	}))
}

func TestHandleUpdate_PhotoSendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	deps.bot.EXPECT().GetFileDirectURL("p").Return("https://example.com/p.jpg", nil)
	deps.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return([]byte("jpeg"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), gomock.Any()).
		Return(&processor.Result{Reply: &reporter.Reply{Photo: []byte{1}, Caption: "c"}})

	gomock.InOrder(
		deps.bot.EXPECT().Send(gomock.AssignableToTypeOf(tgbotapi.PhotoConfig{})).Return(tgbotapi.Message{}, errors.New("bad request")),
		expectText(deps.bot, "An error occurred while processing the file"),
	)

	h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
		m.Photo = []tgbotapi.PhotoSize{{FileID: "p", Width: 1, Height: 1}}
	}))
}

func TestHandleUpdate_PanicRecovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	deps.bot.EXPECT().GetFileDirectURL("vid").Return("https://example.com/v.mp4", nil)
	deps.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return([]byte("mp4"), nil)
	deps.processor.EXPECT().Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Attachment) *processor.Result {
			panic("boom")
		})
	expectText(deps.bot, "An error occurred while processing the file")

	assert.NotPanics(t, func() {
		h.HandleUpdate(context.Background(), message(func(m *tgbotapi.Message) {
			m.Video = &tgbotapi.Video{FileID: "vid"}
		}))
	})
}

func TestRun_HandlesUpdatesUntilCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	updates := make(chan tgbotapi.Update, 2)
	updates <- command("start")
	updates <- command("help")

	var (
		mu   sync.Mutex
		sent []string
		done = make(chan struct{}, 2)
	)

	deps.bot.EXPECT().GetUpdatesChan(gomock.Any()).DoAndReturn(func(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
		assert.Equal(t, 30, config.Timeout)
		return updates
	})
	deps.bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		mu.Lock()
		sent = append(sent, c.(tgbotapi.MessageConfig).Text)
		mu.Unlock()
		done <- struct{}{}
		return tgbotapi.Message{}, nil
	}).Times(2)
	deps.bot.EXPECT().StopReceivingUpdates().Do(func() { close(updates) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Run(ctx, 30) }()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("update not handled")
		}
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{telegram.StartText, telegram.HelpText}, sent)
}

func TestRun_ChannelClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, deps := newHandler(ctrl)
	updates := make(chan tgbotapi.Update)
	close(updates)
	deps.bot.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(updates))

	err := h.Run(context.Background(), 10)
	assert.Error(t, err)
}
