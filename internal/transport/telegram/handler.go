package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/downloader"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
)

const (
	StartText = "👋 Hi! Send me:\n" +
		"📷 - a photo\n" +
		"🎞️ - a GIF\n" +
		"📹 - a video\n" +
		"🤖 - a sticker (animated ones too)\n\n" +
		"I will show the media details and send back the first frame."

	HelpText = "Available commands:\n" +
		"/start - get started\n" +
		"/help - help\n\n" +
		"Just send me any media file to analyze!"
)

// Handler turns incoming updates into processed replies
type Handler struct {
	bot        Bot
	downloader downloader.Downloader
	processor  processor.Processor
	wg         sync.WaitGroup
}

// NewHandler creates a new update handler
func NewHandler(bot Bot, dl downloader.Downloader, proc processor.Processor) *Handler {
	return &Handler{
		bot:        bot,
		downloader: dl,
		processor:  proc,
	}
}

// Run long-polls for updates until ctx is done, handling each update in its own goroutine.
// Updates already in flight are not canceled with ctx; Run waits for them before returning.
func (h *Handler) Run(ctx context.Context, pollTimeout int) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = pollTimeout
	updates := h.bot.GetUpdatesChan(config)

	logger.Info("Polling for updates", zap.Int("timeout", pollTimeout))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping update polling")
			h.bot.StopReceivingUpdates()
			// drain so the library's polling goroutine can exit
			for range updates {
			}
			h.wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				h.wg.Wait()
				return fmt.Errorf("updates channel closed")
			}
			h.wg.Add(1)
			go func() {
				defer h.wg.Done()
				h.HandleUpdate(context.WithoutCancel(ctx), update)
			}()
		}
	}
}

// HandleUpdate processes a single update. Faults are logged and never propagate.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	ctx = logger.WithFields(ctx,
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int("message_id", msg.MessageID),
		zap.String("sender", senderName(msg)),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("panic while handling update: %v", r), zap.ByteString("stack", debug.Stack()))
			h.sendText(ctx, msg.Chat.ID, reporter.TextInternalError)
		}
	}()

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	reply := h.handleMedia(ctx, msg)
	h.sendReply(ctx, msg.Chat.ID, reply)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.sendText(ctx, msg.Chat.ID, StartText)
	case "help":
		h.sendText(ctx, msg.Chat.ID, HelpText)
	default:
		logger.DebugCtx(ctx, "Ignoring unknown command", zap.String("command", msg.Command()))
	}
}

func (h *Handler) handleMedia(ctx context.Context, msg *tgbotapi.Message) *reporter.Reply {
	source, ok := SourceFromMessage(msg)
	if !ok {
		logger.DebugCtx(ctx, "Message carries no media")
		return reporter.Failure()
	}

	url, err := h.bot.GetFileDirectURL(source.FileID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to resolve file url: %w", err), zap.Stringer("kind", source.Kind))
		return reporter.InternalError()
	}
	source = source.WithFilePath(url)

	data, err := h.downloader.Download(ctx, url)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to download attachment: %w", err), zap.Stringer("kind", source.Kind))
		return reporter.InternalError()
	}

	result := h.processor.Process(ctx, source.Attachment(data))
	return result.Reply
}

func (h *Handler) sendReply(ctx context.Context, chatID int64, reply *reporter.Reply) {
	if !reply.HasPhoto() {
		h.sendText(ctx, chatID, reply.Text)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: reply.FileName(), Bytes: reply.Photo})
	photo.Caption = reply.Caption
	if _, err := h.bot.Send(photo); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to send photo: %w", err))
		h.sendText(ctx, chatID, reporter.TextInternalError)
	}
}

func (h *Handler) sendText(ctx context.Context, chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to send message: %w", err))
	}
}

func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	if msg.From.UserName != "" {
		return msg.From.UserName
	}
	return strconv.FormatInt(msg.From.ID, 10)
}
