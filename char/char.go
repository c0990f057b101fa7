// char loads text in whatever charset it was saved with
package char

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

type DetChar struct {
	*chardet.Detector
}

func NewDetChar() *DetChar {
	return &DetChar{
		Detector: chardet.NewTextDetector(),
	}
}

const maxBuftoDet = 100

// encodingOf returns nil for anything that is read as UTF-8
func encodingOf(charset string) encoding.Encoding {
	switch charset {
	case "GB2312", "GBK", "GB18030", "GB-18030":
		return simplifiedchinese.GB18030
	case "Big5":
		return traditionalchinese.Big5
	}
	return nil
}

// Detect returns the charset name of buf, judged on its first bytes
func (d *DetChar) Detect(buf []byte) string {
	newbuf := buf
	if len(buf) > maxBuftoDet {
		newbuf = buf[:maxBuftoDet]
	}
	result, err := d.DetectBest(newbuf)
	if err != nil {
		return "UTF-8"
	}
	return result.Charset
}

// DecodeAs converts buf from charset to UTF-8
func DecodeAs(buf []byte, charset string) ([]byte, error) {
	e := encodingOf(charset)
	if e == nil {
		return buf, nil
	}
	r, err := e.NewDecoder().Bytes(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v text, %w", charset, err)
	}
	return r, nil
}

func (d *DetChar) ToByteList(buf []byte) ([][]byte, error) {
	uft8buf, err := DecodeAs(buf, d.Detect(buf))
	if err != nil {
		return nil, err
	}
	return SplitLinesBytes(uft8buf), nil
}

// ReadLines reads all of r and returns its UTF-8 lines
func (d *DetChar) ReadLines(r io.Reader) ([][]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.ToByteList(buf)
}

func SplitLinesBytes(buf []byte) [][]byte {
	s := bytes.ReplaceAll(buf, []byte("\r\n"), []byte("\n")) // convert dos to unix line ending
	return bytes.Split(s, []byte("\n"))
}
