package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies the attachment variant delivered by a transport
type Kind string

const (
	KindPhoto     Kind = "photo"
	KindDocument  Kind = "document"
	KindVideo     Kind = "video"
	KindAnimation Kind = "animation"
	KindSticker   Kind = "sticker"
)

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a kind name, case-insensitively
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPhoto, KindDocument, KindVideo, KindAnimation, KindSticker:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAttachment, s)
	}
}

// Attachment is an inbound media item with its raw bytes and transport hints.
// The set of implementations is closed: Photo, Document, Video, Animation and Sticker.
type Attachment interface {
	// Kind returns the attachment variant
	Kind() Kind
	// Bytes returns the raw attachment payload
	Bytes() []byte

	attachment()
}

// Photo is a compressed still photo
type Photo struct {
	Data []byte
}

// Document is a file sent as-is, with untrusted name and MIME hints
type Document struct {
	Data     []byte
	FileName string
	MimeType string
}

// Video is a video clip
type Video struct {
	Data []byte
}

// Animation is a silent looping clip (GIFs are usually delivered re-encoded as MP4)
type Animation struct {
	Data []byte
}

// Sticker is a sticker; IsAnimated marks vector (TGS) stickers, IsVideo marks WebM stickers
type Sticker struct {
	Data       []byte
	IsAnimated bool
	IsVideo    bool
}

func (Photo) Kind() Kind     { return KindPhoto }
func (Document) Kind() Kind  { return KindDocument }
func (Video) Kind() Kind     { return KindVideo }
func (Animation) Kind() Kind { return KindAnimation }
func (Sticker) Kind() Kind   { return KindSticker }

func (a Photo) Bytes() []byte     { return a.Data }
func (a Document) Bytes() []byte  { return a.Data }
func (a Video) Bytes() []byte     { return a.Data }
func (a Animation) Bytes() []byte { return a.Data }
func (a Sticker) Bytes() []byte   { return a.Data }

func (Photo) attachment()     {}
func (Document) attachment()  {}
func (Video) attachment()     {}
func (Animation) attachment() {}
func (Sticker) attachment()   {}

// Extension returns the lower-cased extension of the declared file name, including the dot
func (d Document) Extension() string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(d.FileName)))
}

// NormalizedMimeType returns the declared MIME type without parameters, lower-cased
func (d Document) NormalizedMimeType() string {
	mime := d.MimeType
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
