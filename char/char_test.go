package char

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

func TestSplitLinesBytes(t *testing.T) {
	lines := SplitLinesBytes([]byte("a\r\nb\nc"))
	require.Len(t, lines, 3)
	assert.Equal(t, "b", string(lines[1]))
}

func TestDecodeAs(t *testing.T) {
	const txt = "第一章 开始"
	gb, err := simplifiedchinese.GB18030.NewEncoder().String(txt)
	require.NoError(t, err)
	out, err := DecodeAs([]byte(gb), "GB18030")
	require.NoError(t, err)
	assert.Equal(t, txt, string(out))

	big5, err := traditionalchinese.Big5.NewEncoder().String("第一章")
	require.NoError(t, err)
	out, err = DecodeAs([]byte(big5), "Big5")
	require.NoError(t, err)
	assert.Equal(t, "第一章", string(out))

	out, err = DecodeAs([]byte("plain"), "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(out))
}

func TestReadLinesUTF8(t *testing.T) {
	d := NewDetChar()
	lines, err := d.ReadLines(strings.NewReader("line one\r\nline two\n"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "line two", string(lines[1]))
}
