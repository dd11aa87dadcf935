package decoder

import (
	"errors"
	"fmt"
)

const (
	gifHeaderLen      = 6
	gifScreenLen      = 7
	gifDescriptorLen  = 9
	gifExtension      = 0x21
	gifImageSeparator = 0x2C
	gifTrailer        = 0x3B
	gifGraphicControl = 0xF9
	gifColorTableFlag = 0x80
	gifColorTableBits = 0x07
)

var (
	errGIFHeader    = errors.New("gif: invalid header")
	errGIFTruncated = errors.New("gif: truncated block")
)

// gifContainer is the frame-independent part of a GIF stream
type gifContainer struct {
	width  int
	height int
	// prefix is the header, logical screen descriptor and global colour table
	prefix []byte
	frames []gifFrame
}

// gifFrame is one image block, repacked as a standalone GIF when complete
type gifFrame struct {
	index     int
	data      []byte
	truncated bool
}

// splitGIF walks the block structure of a GIF stream and cuts it into one
// self-contained GIF per image. Each frame carries the graphic control extension
// that preceded it. Parsing stops at the trailer or the end of data; a frame cut
// short by the end of data is returned marked truncated.
func splitGIF(data []byte) (*gifContainer, error) {
	if len(data) < gifHeaderLen+gifScreenLen {
		return nil, errGIFHeader
	}
	sig := string(data[:gifHeaderLen])
	if sig != "GIF87a" && sig != "GIF89a" {
		return nil, errGIFHeader
	}

	screen := data[gifHeaderLen : gifHeaderLen+gifScreenLen]
	c := &gifContainer{
		width:  int(screen[0]) | int(screen[1])<<8,
		height: int(screen[2]) | int(screen[3])<<8,
	}

	pos := gifHeaderLen + gifScreenLen
	if screen[4]&gifColorTableFlag != 0 {
		pos += colorTableLen(screen[4])
		if pos > len(data) {
			return nil, fmt.Errorf("%w: global colour table", errGIFTruncated)
		}
	}

	// Always emit GIF89a so a repacked frame may carry a graphic control extension.
	c.prefix = make([]byte, 0, pos)
	c.prefix = append(c.prefix, "GIF89a"...)
	c.prefix = append(c.prefix, data[gifHeaderLen:pos]...)

	var control []byte
	for pos < len(data) {
		switch data[pos] {
		case gifTrailer:
			return c, nil

		case gifExtension:
			if pos+1 >= len(data) {
				return c, nil
			}
			end, ok := skipSubBlocks(data, pos+2)
			if !ok {
				return c, nil
			}
			if data[pos+1] == gifGraphicControl {
				control = data[pos:end]
			}
			pos = end

		case gifImageSeparator:
			start := pos
			pos++
			if pos+gifDescriptorLen > len(data) {
				c.addFrame(control, data[start:], true)
				return c, nil
			}
			packed := data[pos+gifDescriptorLen-1]
			pos += gifDescriptorLen
			if packed&gifColorTableFlag != 0 {
				pos += colorTableLen(packed)
			}
			// LZW minimum code size
			pos++
			if pos > len(data) {
				c.addFrame(control, data[start:], true)
				return c, nil
			}
			end, ok := skipSubBlocks(data, pos)
			if !ok {
				c.addFrame(control, data[start:], true)
				return c, nil
			}
			c.addFrame(control, data[start:end], false)
			control = nil
			pos = end

		default:
			// Unknown block type; the remainder cannot be framed reliably.
			return c, nil
		}
	}

	return c, nil
}

func (c *gifContainer) addFrame(control, image []byte, truncated bool) {
	buf := make([]byte, 0, len(c.prefix)+len(control)+len(image)+1)
	buf = append(buf, c.prefix...)
	buf = append(buf, control...)
	buf = append(buf, image...)
	buf = append(buf, gifTrailer)

	c.frames = append(c.frames, gifFrame{
		index:     len(c.frames),
		data:      buf,
		truncated: truncated,
	})
}

// skipSubBlocks returns the offset just past the block terminator of the
// sub-block chain starting at pos
func skipSubBlocks(data []byte, pos int) (int, bool) {
	for {
		if pos >= len(data) {
			return 0, false
		}
		size := int(data[pos])
		pos++
		if size == 0 {
			return pos, true
		}
		pos += size
	}
}

func colorTableLen(packed byte) int {
	return 3 * (1 << (int(packed&gifColorTableBits) + 1))
}
