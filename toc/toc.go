// toc lists the pages of a book and jumps to the chosen one
package toc

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/hujun-open/dvlist"
)

// PageList is the dvlist view of a page slice
type PageList []Page

func (plist PageList) Len() int {
	return len(plist)
}
func (plist PageList) Fields() []string {
	return []string{"#", "Title", "Line"}
}
func (plist PageList) Item(id int) []string {
	if id < 0 || id >= len(plist) {
		return nil
	}
	return []string{strconv.Itoa(id + 1), plist[id].Title, strconv.Itoa(plist[id].StartLine + 1)}
}

// Sort is a no-op, pages keep book order
func (plist PageList) Sort(field int, ascend bool) {
}
func (plist PageList) Filter(kw string, i int) {
}

type GotoPageHandler func(page int)

type PageDialog struct {
	fyne.Window
	pages PageList
	list  *dvlist.DVList
	h     GotoPageHandler
}

func (pdiag *PageDialog) read(page int) {
	if pdiag.h != nil && page >= 0 && page < len(pdiag.pages) {
		pdiag.h(page)
	}
	pdiag.Hide()
}

func (pdiag *PageDialog) Set(pages []Page) {
	pdiag.pages = PageList(pages)
	pdiag.list.SetData(pdiag.pages)
}

func (pdiag *PageDialog) SetSelection(page int) {
	if page < 0 || page >= len(pdiag.pages) {
		page = 0
	}
	pdiag.list.ScrollTo(page)
	pdiag.list.SetSelection(page, true)
}

func NewPageDialog(pages []Page, h GotoPageHandler) *PageDialog {
	r := new(PageDialog)
	r.Window = fyne.CurrentApp().NewWindow("Pages")
	r.SetCloseIntercept(func() { r.Hide() })
	r.pages = PageList(pages)
	r.h = h
	r.list, _ = dvlist.NewDVList(r.pages, dvlist.WithDoubleClickHandler(r.read))
	button := widget.NewButton("Close", r.Hide)
	r.SetContent(container.NewBorder(nil, button, nil, nil, r.list))
	r.Resize(fyne.NewSize(500, 800))
	r.Canvas().SetOnTypedKey(r.list.TypedKey)
	return r
}
