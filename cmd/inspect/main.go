package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/config"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/classifier"
	"github.com/feral-file/ff-frame-inspector/internal/media/pipeline"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	kindFlag   = flag.String("kind", "", "Attachment kind (photo, document, video, animation, sticker); sniffed when empty")
	mimeFlag   = flag.String("mime", "", "Declared MIME type for documents")
	animated   = flag.Bool("animated", false, "Treat a sticker as a vector (TGS) sticker")
	video      = flag.Bool("video", false, "Treat a sticker as a video (WebM) sticker")
	outFile    = flag.String("out", "", "Write the first frame to this path; a .png path writes PNG, anything else uses media.reply_format")
	asJSON     = flag.Bool("json", false, "Print the summary as JSON")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadInspectConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "inspect",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx := context.Background()
	deps := pipeline.DefaultDeps()
	cfg.Media.ReplyFormat = replyFormat(*outFile, cfg.Media.ReplyFormat)

	data, err := readFile(deps, path)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read input", zap.String("path", path), zap.Error(err))
	}

	att, err := buildAttachment(data, filepath.Base(path))
	if err != nil {
		logger.FatalCtx(ctx, "Invalid attachment flags", zap.Error(err))
	}

	proc, err := pipeline.NewProcessor(cfg.Media, config.WorkerConfig{WorkerPoolSize: 1, WorkerQueueSize: 1}, deps)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create media processor", zap.Error(err))
	}
	defer func() {
		_ = proc.Close()
	}()

	result := proc.Process(ctx, att)

	if *asJSON {
		out, err := deps.JSON.Marshal(result.Summary)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to encode summary", zap.Error(err))
		}
		fmt.Println(string(out))
	} else if result.Reply.HasPhoto() {
		fmt.Println(result.Reply.Caption)
	} else {
		fmt.Println(result.Reply.Text)
	}

	if *outFile != "" && result.Reply.HasPhoto() {
		if err := writeFile(deps.FileSystem, *outFile, result.Reply.Photo); err != nil {
			logger.FatalCtx(ctx, "Failed to write first frame", zap.String("path", *outFile), zap.Error(err))
		}
	}

	if result.Summary.FrameCount == 0 {
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func readFile(deps pipeline.Deps, path string) ([]byte, error) {
	f, err := deps.FileSystem.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(f)
}

// replyFormat picks the encoding implied by the output file extension, keeping fallback otherwise
func replyFormat(out, fallback string) string {
	if out == "" {
		return fallback
	}
	format, err := adapter.ParseImageFormat(filepath.Ext(out))
	if err != nil {
		return fallback
	}
	return string(format)
}

func writeFile(fs adapter.FileSystem, path string, data []byte) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func buildAttachment(data []byte, name string) (domain.Attachment, error) {
	if *kindFlag == "" {
		return classifier.Sniff(data, name), nil
	}

	kind, err := domain.ParseKind(*kindFlag)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindPhoto:
		return domain.Photo{Data: data}, nil
	case domain.KindVideo:
		return domain.Video{Data: data}, nil
	case domain.KindAnimation:
		return domain.Animation{Data: data}, nil
	case domain.KindDocument:
		return domain.Document{Data: data, FileName: name, MimeType: *mimeFlag}, nil
	default:
		return domain.Sticker{Data: data, IsAnimated: *animated, IsVideo: *video}, nil
	}
}
