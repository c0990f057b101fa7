package toc

import (
	"bytes"
	"regexp"
	"strconv"
	"unicode/utf8"
)

const DefaultLinesPerPage = 30

const maxTitleRunes = 40

var chapterTitle = regexp.MustCompile(`^\s*(第[0-9一二三四五六七八九十百千零〇两]+[章回节卷]|(?i:chapter)\s+[0-9ivxlc]+\b)`)

// IsChapterTitle reports whether line starts a chapter
func IsChapterTitle(line []byte) bool {
	return chapterTitle.Match(line)
}

// Page is a run of lines of a book
type Page struct {
	Title     string
	StartLine int
	Lines     [][]byte
}

// Paginate splits lines into pages; a chapter title always starts a new page
// and no page has more than linesPerPage lines
func Paginate(lines [][]byte, linesPerPage int) []Page {
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	var pages []Page
	var cur *Page
	title := ""
	flush := func() {
		if cur != nil && len(cur.Lines) > 0 {
			pages = append(pages, *cur)
		}
		cur = nil
	}
	for i, line := range lines {
		isTitle := IsChapterTitle(line)
		if isTitle {
			flush()
			title = pageTitle(line)
		}
		if cur != nil && len(cur.Lines) >= linesPerPage {
			flush()
		}
		if cur == nil {
			t := title
			if t == "" {
				t = "Page " + strconv.Itoa(len(pages)+1)
			}
			cur = &Page{Title: t, StartLine: i}
		}
		cur.Lines = append(cur.Lines, line)
	}
	flush()
	return pages
}

func pageTitle(line []byte) string {
	line = bytes.TrimSpace(line)
	if utf8.RuneCount(line) <= maxTitleRunes {
		return string(line)
	}
	return string([]rune(string(line))[:maxTitleRunes]) + "…"
}

// PageOfLine returns the index of the page containing line
func PageOfLine(pages []Page, line int) int {
	r := 0
	for i, p := range pages {
		if p.StartLine > line {
			break
		}
		r = i
	}
	return r
}
