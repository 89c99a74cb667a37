// Package textcheck decides whether a file is valid UTF-8 text.
//
// A file is streamed through Validate in fixed-size chunks, so memory use does
// not grow with file size. Failures come back as one of two error types:
// DecodeError when the bytes are not UTF-8, AccessError when the file could
// not be opened or read.
package textcheck

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
)

// chunkSize is the read size used by Validate
const chunkSize = 32 * 1024

// Reason describes why a byte sequence failed to decode
type Reason string

const (
	// ReasonInvalidStart is a byte that can never begin a UTF-8 sequence
	ReasonInvalidStart Reason = "invalid start byte"
	// ReasonInvalidContinuation is a valid lead byte followed by a byte outside
	// the allowed continuation range (covers overlong forms and surrogates)
	ReasonInvalidContinuation Reason = "invalid continuation byte"
	// ReasonUnexpectedEnd is a multi-byte sequence cut off by end of file
	ReasonUnexpectedEnd Reason = "unexpected end of data"
)

// DecodeError reports the first byte sequence that is not valid UTF-8
type DecodeError struct {
	// Offset is the position of the first byte of the offending sequence
	Offset int64
	// Byte is the value found at Offset
	Byte   byte
	Reason Reason
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't decode byte 0x%02x at offset %d: %s", e.Byte, e.Offset, e.Reason)
}

// AccessError reports a file that could not be opened or read
type AccessError struct {
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("error reading file: %v", e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// CheckFile opens path on fsys and validates its contents.
// It returns nil for valid text, a *DecodeError or an *AccessError otherwise.
func CheckFile(fsys billy.Filesystem, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return &AccessError{Err: err}
	}
	defer f.Close()

	return Validate(f)
}

// Validate reads r to the end and returns a *DecodeError at the first invalid
// sequence. Read failures are returned as *AccessError.
func Validate(r io.Reader) error {
	buf := make([]byte, chunkSize+utf8.UTFMax)
	carry := 0
	var base int64 // file offset of buf[0]

	for {
		n, readErr := r.Read(buf[carry : carry+chunkSize])
		eof := errors.Is(readErr, io.EOF)
		if readErr != nil && !eof {
			return &AccessError{Err: readErr}
		}

		data := buf[:carry+n]
		i := 0
		for i < len(data) {
			if data[i] < utf8.RuneSelf {
				i++
				continue
			}
			// Wait for the rest of a sequence split across reads
			if !eof && !utf8.FullRune(data[i:]) {
				break
			}
			ch, size := utf8.DecodeRune(data[i:])
			if ch == utf8.RuneError && size == 1 {
				return classify(data[i:], base+int64(i))
			}
			i += size
		}

		if eof {
			return nil
		}
		carry = copy(buf, data[i:])
		base += int64(i)
	}
}

// classify inspects the bytes at the start of a sequence DecodeRune rejected.
// Continuation ranges follow RFC 3629 table 3-7.
func classify(b []byte, offset int64) *DecodeError {
	lead := b[0]
	decodeErr := &DecodeError{Offset: offset, Byte: lead}

	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		decodeErr.Reason = ReasonInvalidStart
		return decodeErr
	}

	for k := 1; k <= need; k++ {
		if k >= len(b) {
			decodeErr.Reason = ReasonUnexpectedEnd
			return decodeErr
		}
		c := b[k]
		if k == 1 && (c < lo || c > hi) || c < 0x80 || c > 0xBF {
			decodeErr.Reason = ReasonInvalidContinuation
			return decodeErr
		}
	}

	decodeErr.Reason = ReasonInvalidContinuation
	return decodeErr
}
