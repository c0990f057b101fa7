// mainwindow
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/hujun-open/dashbook/char"
	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/history"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/pageview"
	"github.com/hujun-open/dashbook/toc"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"github.com/hujun-open/sbar"
	"github.com/hujun-open/tiledback"
)

var VERSION string

type DBWindow struct {
	fyne.Window
	pv                 *pageview.PageView
	scrollBar          *sbar.SBar
	det                *char.DetChar
	cfg                *conf.Config
	cfgPath            string
	look               *conf.Look
	hist               *history.ReadingHistory
	actMap             actionMap
	helpWin            dialog.Dialog
	pageWin            *toc.PageDialog
	openFileDiag       *dialog.FileDialog
	selectFontFileDiag *dialog.FileDialog
	currentBook        string
	lines              [][]byte
	pages              []toc.Page
	underline          bool
}

// NewDBWindow opens filename, or the last read book, with cfg; cfg is saved back to cfgPath on close
func NewDBWindow(myApp fyne.App, cfg *conf.Config, cfgPath string, filename string) (*DBWindow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no config")
	}
	r := &DBWindow{cfg: cfg, cfgPath: cfgPath}
	r.Window = myApp.NewWindow("DashBook")
	r.SetOnClosed(r.onClose)
	r.det = char.NewDetChar()
	r.loadDefaultKeyMap()
	for _, s := range r.actMap {
		r.Canvas().AddShortcut(s.skey, s.handler)
	}
	ind, err := r.cfg.Indicator.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create page indicator, %w", err)
	}
	r.look = conf.NewLook(r.cfg.Window.TextSize, ind.Style().ActiveColor)
	if r.cfg.Window.FontFile != "" {
		font, err := conf.LoadFont(r.cfg.Window.FontFile)
		if err != nil {
			log.Printf("unable to load font %v, %v", r.cfg.Window.FontFile, err)
		} else {
			r.look.SetFont(font)
		}
	}
	myApp.Settings().SetTheme(r.look)
	r.hist, err = history.Open(filepath.Join(conf.ConfDir(), history.FileName))
	if err != nil {
		log.Printf("failed to load reading history, %v", err)
	}

	r.pv = pageview.NewPageView(ind)
	r.pv.OnPageChanged = r.onPageChanged
	r.pv.SetKeyEvtHandler(r.onKey)
	r.scrollBar = sbar.NewSBar(r.onScrollChange, false)
	pvcontainer := container.NewMax()
	if r.cfg.Window.BackgroundFile != "" {
		back, err := tiledback.NewTileBackgroundFromFile(r.cfg.Window.BackgroundFile)
		if err != nil {
			log.Printf("unable to load background image, %v", err)
		} else {
			pvcontainer.Add(back)
		}
	}
	pvcontainer.Add(r.pv)
	r.SetContent(container.NewBorder(nil, nil, nil, r.scrollBar, r.scrollBar, pvcontainer))

	switch {
	case filename != "":
		err = r.loadFileFromURI(storage.NewFileURI(filename))
	case r.cfg.Window.LastFile != "":
		var uri fyne.URI
		uri, err = storage.ParseURI(r.cfg.Window.LastFile)
		if err == nil {
			err = r.loadFileFromURI(uri)
		}
	}
	if err != nil {
		log.Printf("failed to open book, %v", err)
	}
	r.helpWin = dialog.NewInformation("Help", r.getHelpStr(), r)
	r.helpWin.Hide()
	r.Resize(fyne.NewSize(r.cfg.Window.Width, r.cfg.Window.Height))
	r.SetMaster()
	r.Canvas().Focus(r.pv)
	return r, nil
}

type dbActType int

//NOTE to add new function, add const actXXX and update loadDefaultKeyMap()
const (
	actOpenFile dbActType = iota
	actHelp
	actShowPages
	actShowUnderline
	actToggleAlignment
	actToggleMatchWidth
	actFullScreen
	actQuit
	actSelectFontFile
)

func (at dbActType) String() string {
	switch at {
	case actOpenFile:
		return "Open file"
	case actHelp:
		return "Help"
	case actShowPages:
		return "Page list"
	case actShowUnderline:
		return "Underline"
	case actToggleAlignment:
		return "Indicator top/bottom"
	case actToggleMatchWidth:
		return "Indicator full width"
	case actFullScreen:
		return "Full screen"
	case actQuit:
		return "Quit"
	case actSelectFontFile:
		return "Select font file"
	}
	return "Unknown"
}

type dbAct struct {
	skey    *desktop.CustomShortcut
	handler func(fyne.Shortcut)
}
type actionMap map[dbActType]*dbAct

func (actmap actionMap) String() string {
	r := ""
	skeystr := func(act *dbAct) string {
		mod := ""
		if act.skey.Modifier&desktop.ControlModifier != 0 {
			mod += "Ctrl+"
		}
		if act.skey.Modifier&desktop.AltModifier != 0 {
			mod += "Alt+"
		}
		if act.skey.Modifier&desktop.ShiftModifier != 0 {
			mod += "Shift+"
		}
		return mod + string(act.skey.KeyName)
	}
	keys := make([]int, 0, len(actmap))
	for k := range actmap {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		r += fmt.Sprintf("%v: %v\n", dbActType(k), skeystr(actmap[dbActType(k)]))
	}
	return r
}

func (win *DBWindow) getHelpStr() string {
	ctrlHelpStr := `
Next page: Right, PageDown, Space, mouse wheel, drag left
Previous page: Left, PageUp, drag right
First page: Home
Last page: End
Font size: =/-
	`
	verStr := VERSION
	if verStr == "" {
		verStr = "internal"
	}
	return fmt.Sprintf("%v\n %v\n ver %v\n\ngithub.com/hujun-open/dashbook", ctrlHelpStr, win.actMap.String(), verStr)
}

func (win *DBWindow) loadDefaultKeyMap() {
	shortcut := func(key fyne.KeyName, mod desktop.Modifier, h func(fyne.Shortcut)) *dbAct {
		return &dbAct{
			skey:    &desktop.CustomShortcut{KeyName: key, Modifier: mod},
			handler: h,
		}
	}
	win.actMap = actionMap{
		actOpenFile:         shortcut(fyne.KeyO, desktop.ControlModifier, win.openFileviaShortcut),
		actHelp:             shortcut(fyne.KeyH, desktop.ControlModifier, win.ShowHelp),
		actShowPages:        shortcut(fyne.KeyU, desktop.ControlModifier, win.ShowPages),
		actShowUnderline:    shortcut(fyne.KeyL, desktop.ControlModifier, win.ShowUnderline),
		actToggleAlignment:  shortcut(fyne.KeyT, desktop.ControlModifier, win.toggleAlignment),
		actToggleMatchWidth: shortcut(fyne.KeyM, desktop.ControlModifier, win.toggleMatchWidth),
		actFullScreen:       shortcut(fyne.KeyP, desktop.ControlModifier, win.fullScreen),
		actQuit:             shortcut(fyne.KeyW, desktop.ControlModifier, win.quit),
		actSelectFontFile:   shortcut(fyne.KeyZ, desktop.AltModifier, win.showFontFileSelectionDiag),
	}
}

// buildPages paginates the current book into text pages
func (win *DBWindow) buildPages() []fyne.CanvasObject {
	win.pages = toc.Paginate(win.lines, win.cfg.Window.LinesPerPage)
	objs := make([]fyne.CanvasObject, len(win.pages))
	for i, p := range win.pages {
		lines := make([]string, len(p.Lines))
		for j, l := range p.Lines {
			lines[j] = string(l)
		}
		objs[i] = pageview.NewTextPage(p.Title, lines,
			pageview.WithUnderline(win.underline),
			pageview.WithSidePadding(win.cfg.Window.SidePadding),
			pageview.WithVerticalPadding(win.cfg.Window.VerticalPadding),
			pageview.WithLineVerticalPadding(win.cfg.Window.LineVerticalPadding))
	}
	return objs
}

// startLine is the first line of the current page
func (win *DBWindow) startLine() int {
	cur := win.pv.Current()
	if cur < 0 || cur >= len(win.pages) {
		return 0
	}
	return win.pages[cur].StartLine
}

func (win *DBWindow) initFromValue(val [][]byte, bookname string) {
	if win.currentBook != "" {
		win.hist.Update(win.currentBook, win.startLine())
	}
	win.currentBook = bookname
	win.lines = val
	pages := win.buildPages()
	win.pv.SetPages(pages, toc.PageOfLine(win.pages, win.hist.GetStartLine(bookname)))
	if win.pageWin != nil {
		win.pageWin.Set(win.pages)
	}
	win.onPageChanged(win.pv.Current())
	win.Canvas().Focus(win.pv)
}

func (win *DBWindow) onClose() {
	if win.currentBook != "" {
		win.hist.Update(win.currentBook, win.startLine())
	}
	if err := win.hist.Save(); err != nil {
		log.Printf("failed to save reading history, %v", err)
	}
	if win.pageWin != nil {
		win.pageWin.Close()
	}
	size := win.Canvas().Size()
	win.cfg.Window.Width, win.cfg.Window.Height = size.Width, size.Height
	win.cfg.Window.TextSize = win.look.Size(theme.SizeNameText)
	win.pv.Configure(win.cfg.Indicator.SetFrom)
	if err := conf.SaveConfigFileTo(win.cfg, win.cfgPath); err != nil {
		log.Printf("failed to save config to %v, %v", win.cfgPath, err)
	}
}

const FontSizeMin = 6

func (win *DBWindow) changeFontSize(increase bool) {
	s := win.look.Size(theme.SizeNameText)
	if increase {
		s++
	} else {
		s--
		if s < FontSizeMin {
			s = FontSizeMin
		}
	}
	win.look.SetTextSize(s)
	fyne.CurrentApp().Settings().SetTheme(win.look)
}

func (win *DBWindow) onScrollChange(newpos uint32) {
	defer win.Canvas().Focus(win.pv)
	n := win.pv.ItemCount()
	if n == 0 {
		return
	}
	page := (n * int(newpos)) / int(sbar.OffsetResolution)
	if page >= n {
		page = n - 1
	}
	win.pv.SetCurrent(page)
}

func (win *DBWindow) onPageChanged(page int) {
	n := uint32(win.pv.ItemCount())
	if n > 0 {
		win.scrollBar.SetOffset((uint32(page) * sbar.OffsetResolution) / n)
	}
	win.setTitle(page, int(n))
}

func (win *DBWindow) onKey(evt *fyne.KeyEvent) {
	switch evt.Name {
	case fyne.KeyEqual:
		win.changeFontSize(true)
	case fyne.KeyMinus:
		win.changeFontSize(false)
	}
}

func (win *DBWindow) loadFont(furl fyne.URIReadCloser, err error) {
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	if furl == nil {
		return
	}
	defer furl.Close()
	res, err := storage.LoadResourceFromURI(furl.URI())
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	win.look.SetFont(res)
	fyne.CurrentApp().Settings().SetTheme(win.look)
	time.Sleep(100 * time.Millisecond) //this delay is needed, otherwise the font change won't take effect
	win.pv.Refresh()
	win.cfg.Window.FontFile = furl.URI().String()
}

func (win *DBWindow) loadFile(furl fyne.URIReadCloser, err error) {
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	if furl == nil {
		return
	}
	furl.Close()
	if er := win.loadFileFromURI(furl.URI()); er != nil {
		dialog.ShowError(er, win)
	}
}

func (win *DBWindow) loadFileFromURI(furl fyne.URI) error {
	ureader, err := storage.Reader(furl)
	if err != nil {
		return err
	}
	defer ureader.Close()
	r, err := win.det.ReadLines(ureader)
	if err != nil {
		return fmt.Errorf("failed to read %v, %w", furl.Name(), err)
	}
	win.initFromValue(r, furl.Name())
	win.cfg.Window.LastFile = furl.String()
	return nil
}

func (win *DBWindow) setTitle(page, total int) {
	if win.currentBook == "" {
		win.SetTitle("DashBook     ------ Ctrl-H help")
		return
	}
	title := ""
	if page >= 0 && page < len(win.pages) {
		title = win.pages[page].Title
	}
	win.SetTitle(fmt.Sprintf("DashBook %v  %v  [%d/%d]     ------ Ctrl-H help", win.currentBook, title, page+1, total))
}

func (win *DBWindow) openFileviaShortcut(fyne.Shortcut) {
	win.openFile()
}

func (win *DBWindow) openFile() {
	if win.openFileDiag == nil {
		win.openFileDiag = dialog.NewFileOpen(win.loadFile, win)
		win.openFileDiag.SetDismissText("Open")
		win.openFileDiag.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	}
	if win.cfg.Window.LastFile != "" {
		last, err := storage.ParseURI(win.cfg.Window.LastFile)
		if err == nil {
			var lastdir fyne.URI
			lastdir, err = storage.Parent(last)
			if err == nil {
				var lurl fyne.ListableURI
				lurl, err = storage.ListerForURI(lastdir)
				if err == nil {
					win.openFileDiag.SetLocation(lurl)
				}
			}
		}
		if err != nil {
			log.Printf("failed to open last directory, %v", err)
		}
	}
	win.openFileDiag.Show()
}

func (win *DBWindow) ShowHelp(fyne.Shortcut) {
	win.helpWin.Show()
}

func (win *DBWindow) gotoPage(page int) {
	win.pv.SetCurrent(page)
	win.Canvas().Focus(win.pv)
}

func (win *DBWindow) ShowPages(fyne.Shortcut) {
	if win.pageWin == nil {
		win.pageWin = toc.NewPageDialog(win.pages, win.gotoPage)
	}
	win.pageWin.SetSelection(win.pv.Current())
	win.pageWin.Show()
}

func (win *DBWindow) ShowUnderline(fyne.Shortcut) {
	win.underline = !win.underline
	for _, p := range win.pv.Pages() {
		if tp, ok := p.(*pageview.TextPage); ok {
			tp.SetUnderline(win.underline)
		}
	}
}

func (win *DBWindow) toggleAlignment(fyne.Shortcut) {
	win.pv.Configure(func(ind *indicator.Indicator) {
		if ind.Style().Alignment == indicator.AlignBottom {
			ind.Align(indicator.AlignTop)
		} else {
			ind.Align(indicator.AlignBottom)
		}
	})
}

func (win *DBWindow) toggleMatchWidth(fyne.Shortcut) {
	win.pv.Configure(func(ind *indicator.Indicator) {
		ind.SetMatchContainerWidth(!ind.Style().MatchContainerWidth)
	})
}

func (win *DBWindow) fullScreen(fyne.Shortcut) {
	win.SetFullScreen(!win.FullScreen())
}

func (win *DBWindow) quit(fyne.Shortcut) {
	win.Close()
}

func (win *DBWindow) showFontFileSelectionDiag(fyne.Shortcut) {
	if win.selectFontFileDiag == nil {
		win.selectFontFileDiag = dialog.NewFileOpen(win.loadFont, win)
		win.selectFontFileDiag.SetFilter(storage.NewExtensionFileFilter([]string{".ttf"}))
	}
	win.selectFontFileDiag.Show()
}
