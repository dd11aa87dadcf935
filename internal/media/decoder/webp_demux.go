package decoder

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	riffHeaderLen  = 12
	chunkHeaderLen = 8
	vp8xPayloadLen = 10
	anmfHeaderLen  = 16

	vp8xAnimationFlag = 0x02
	vp8xAlphaFlag     = 0x10
)

var (
	errWebPHeader    = errors.New("webp: invalid RIFF header")
	errWebPTruncated = errors.New("webp: truncated chunk")
	errWebPFrame     = errors.New("webp: frame has no image chunk")
)

type riffChunk struct {
	fourCC  string
	payload []byte
}

// webpContainer describes the layout of a WebP file
type webpContainer struct {
	animated     bool
	canvasWidth  int
	canvasHeight int
	// still is the single image of a non-animated file
	still  webpFrame
	frames []webpFrame
}

// webpFrame is one ANMF sub-frame repacked as a standalone still WebP
type webpFrame struct {
	index int
	x, y  int
	data  []byte
	err   error
}

// parseWebP reads the chunk list of a WebP file. For animated files every
// ANMF chunk is repacked into a still WebP the image decoder can read; a
// chunk cut short by the end of data becomes a failed frame.
func parseWebP(data []byte) (*webpContainer, error) {
	chunks, err := readRIFF(data)
	if err != nil && (len(chunks) == 0 || !errors.Is(err, errWebPTruncated)) {
		return nil, err
	}
	truncated := err != nil

	c := &webpContainer{}
	extended := false
	for _, ch := range chunks {
		switch ch.fourCC {
		case "VP8X":
			if len(ch.payload) < vp8xPayloadLen {
				return nil, fmt.Errorf("%w: VP8X", errWebPTruncated)
			}
			extended = true
			c.animated = ch.payload[0]&vp8xAnimationFlag != 0
			c.canvasWidth = int(uint24(ch.payload[4:7])) + 1
			c.canvasHeight = int(uint24(ch.payload[7:10])) + 1
		case "ANMF":
			c.frames = append(c.frames, repackANMF(len(c.frames), ch.payload))
		}
	}

	if c.animated && truncated {
		c.frames = append(c.frames, webpFrame{index: len(c.frames), err: errWebPTruncated})
	}

	if !c.animated {
		if extended {
			// Drop metadata chunks and rebuild the header so the alpha flag
			// matches the bitstream that follows.
			c.still = repackImage(0, c.canvasWidth, c.canvasHeight, chunks)
		} else {
			c.still = webpFrame{data: data}
		}
	}

	return c, nil
}

func readRIFF(data []byte) ([]riffChunk, error) {
	if len(data) < riffHeaderLen || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errWebPHeader
	}

	end := len(data)
	if size := int(binary.LittleEndian.Uint32(data[4:8])) + 8; size >= riffHeaderLen && size < end {
		end = size
	}

	return readChunks(data[riffHeaderLen:end])
}

func readChunks(data []byte) ([]riffChunk, error) {
	var chunks []riffChunk
	pos := 0
	for pos+chunkHeaderLen <= len(data) {
		fourCC := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += chunkHeaderLen
		if size < 0 || pos+size > len(data) {
			return chunks, fmt.Errorf("%w: %s", errWebPTruncated, fourCC)
		}
		chunks = append(chunks, riffChunk{fourCC: fourCC, payload: data[pos : pos+size]})
		pos += size + size&1
	}
	return chunks, nil
}

func repackANMF(index int, payload []byte) webpFrame {
	f := webpFrame{index: index}
	if len(payload) < anmfHeaderLen {
		f.err = fmt.Errorf("%w: ANMF", errWebPTruncated)
		return f
	}
	f.x = 2 * int(uint24(payload[0:3]))
	f.y = 2 * int(uint24(payload[3:6]))
	width := int(uint24(payload[6:9])) + 1
	height := int(uint24(payload[9:12])) + 1

	sub, err := readChunks(payload[anmfHeaderLen:])
	if err != nil {
		f.err = err
		return f
	}

	img := repackImage(index, width, height, sub)
	img.x, img.y = f.x, f.y
	return img
}

// repackImage builds a still WebP from the ALPH, VP8 and VP8L chunks of a frame
func repackImage(index, width, height int, sub []riffChunk) webpFrame {
	f := webpFrame{index: index}

	var alpha, bitstream *riffChunk
	for i := range sub {
		switch sub[i].fourCC {
		case "ALPH":
			alpha = &sub[i]
		case "VP8 ", "VP8L":
			bitstream = &sub[i]
		}
	}
	if bitstream == nil {
		f.err = errWebPFrame
		return f
	}

	var body []byte
	if alpha != nil && bitstream.fourCC == "VP8 " {
		vp8x := make([]byte, vp8xPayloadLen)
		vp8x[0] = vp8xAlphaFlag
		putUint24(vp8x[4:7], uint32(width-1))
		putUint24(vp8x[7:10], uint32(height-1))
		body = appendChunk(body, "VP8X", vp8x)
		body = appendChunk(body, "ALPH", alpha.payload)
	}
	body = appendChunk(body, bitstream.fourCC, bitstream.payload)

	f.data = make([]byte, 0, riffHeaderLen+len(body))
	f.data = append(f.data, "RIFF"...)
	f.data = binary.LittleEndian.AppendUint32(f.data, uint32(4+len(body)))
	f.data = append(f.data, "WEBP"...)
	f.data = append(f.data, body...)
	return f
}

func appendChunk(dst []byte, fourCC string, payload []byte) []byte {
	dst = append(dst, fourCC...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	if len(payload)&1 == 1 {
		dst = append(dst, 0)
	}
	return dst
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
