// package cli holds the dashbook commands
package cli

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/mainwindow"
	"github.com/hujun-open/dashbook/wire"
)

// Flags shared by every command
var (
	configFlag  string
	profileFlag bool
)

// NewRootCmd returns the command tree; with no sub command it opens the reader
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashbook [file]",
		Short: "A paged text reader with a dash page indicator",
		Long: `dashbook shows a text book one page at a time.
Pages are turned by dragging, the mouse wheel or the keyboard, and a row of
dashes at the bottom shows the current page while it slides.

Examples:
  dashbook book.txt
  dashbook render --count 5 --active 2 --offset -120
  dashbook serve --listen 127.0.0.1:30000`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			cnf, cnfPath, err := readerConfig()
			if err != nil {
				return err
			}
			return runReader(cnf, cnfPath, file)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file to use instead of the default ones")
	rootCmd.PersistentFlags().BoolVarP(&profileFlag, "profile", "p", false, "enable profiling on "+profileAddr)
	rootCmd.AddCommand(newRenderCmd(), newPNGCmd(), newServeCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the command line and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

const profileAddr = "127.0.0.1:6060"

func runReader(cnf *conf.Config, cnfPath, file string) error {
	if profileFlag {
		runtime.SetBlockProfileRate(1000000000)
		go func() {
			log.Println(http.ListenAndServe(profileAddr, nil))
		}()
	}
	os.Setenv("FYNE_SCALE", "1.0")
	myApp := app.NewWithID("dashbook")
	myWindow, err := mainwindow.NewDBWindow(myApp, cnf, cnfPath, file)
	if err != nil {
		return err
	}
	myWindow.ShowAndRun()
	return nil
}

// loadConfig reads --config if given, otherwise the default config files
func loadConfig() (*conf.Config, error) {
	if configFlag != "" {
		if _, err := os.Stat(configFlag); err != nil {
			return nil, fmt.Errorf("config file %v: %w", configFlag, err)
		}
		return conf.LoadConfigFiles(configFlag)
	}
	cnf, err := conf.LoadConfigFile()
	if err != nil {
		log.Printf("failed to load config, using default, %v", err)
	}
	return cnf, nil
}

// readerConfig returns the reader's config and the file it is saved back to on close
func readerConfig() (*conf.Config, string, error) {
	cnf, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if configFlag != "" {
		return cnf, configFlag, nil
	}
	return cnf, filepath.Join(conf.ConfDir(), conf.ConfFileName), nil
}

// styleFlags overrides the configured indicator style from the command line
type styleFlags struct {
	segmentLength float32
	itemPadding   float32
	strokeWidth   float32
	bandHeight    float32
	activeColor   string
	inactiveColor string
	alignment     string
	matchWidth    bool
	noSpaceBelow  bool
}

func (sf *styleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float32Var(&sf.segmentLength, "segment-length", indicator.DefaultSegmentLength, "dash length in px")
	fs.Float32Var(&sf.itemPadding, "item-padding", indicator.DefaultItemPadding, "gap between dashes in px")
	fs.Float32Var(&sf.strokeWidth, "stroke-width", indicator.DefaultStrokeWidth, "dash thickness in px")
	fs.Float32Var(&sf.bandHeight, "band-height", indicator.DefaultBandHeight, "height of the indicator band in px")
	fs.StringVar(&sf.activeColor, "active-color", "", "highlight colour, #AARRGGBB or #RRGGBB")
	fs.StringVar(&sf.inactiveColor, "inactive-color", "", "dash colour, #AARRGGBB or #RRGGBB")
	fs.StringVar(&sf.alignment, "align", "", "indicator band position, top or bottom")
	fs.BoolVar(&sf.matchWidth, "match-width", false, "spread the dashes over the whole width")
	fs.BoolVar(&sf.noSpaceBelow, "no-space-below", false, "do not keep the band free below the pages")
}

// settings returns the flags the user actually set
func (sf *styleFlags) settings(cmd *cobra.Command) (*wire.Settings, error) {
	fs := cmd.Flags()
	s := new(wire.Settings)
	if fs.Changed("segment-length") {
		s.SegmentLength = &sf.segmentLength
	}
	if fs.Changed("item-padding") {
		s.ItemPadding = &sf.itemPadding
	}
	if fs.Changed("stroke-width") {
		s.StrokeWidth = &sf.strokeWidth
	}
	if fs.Changed("band-height") {
		s.BandHeight = &sf.bandHeight
	}
	if fs.Changed("active-color") {
		c, err := conf.ParseARGB(sf.activeColor)
		if err != nil {
			return nil, fmt.Errorf("--active-color: %w", err)
		}
		s.ActiveColor = &c
	}
	if fs.Changed("inactive-color") {
		c, err := conf.ParseARGB(sf.inactiveColor)
		if err != nil {
			return nil, fmt.Errorf("--inactive-color: %w", err)
		}
		s.InactiveColor = &c
	}
	if fs.Changed("align") {
		a, err := indicator.ParseAlignment(sf.alignment)
		if err != nil {
			return nil, fmt.Errorf("--align: %w", err)
		}
		s.Alignment = &a
	}
	if fs.Changed("match-width") {
		s.MatchContainerWidth = &sf.matchWidth
	}
	if fs.Changed("no-space-below") {
		on := !sf.noSpaceBelow
		s.AppendSpaceBelow = &on
	}
	return s, nil
}

// buildIndicator returns the configured indicator with the style flags applied
func (sf *styleFlags) buildIndicator(cmd *cobra.Command) (*indicator.Indicator, error) {
	cnf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ind, err := cnf.Indicator.Build()
	if err != nil {
		return nil, err
	}
	s, err := sf.settings(cmd)
	if err != nil {
		return nil, err
	}
	return s.Apply(ind), nil
}
