package cli

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/preview"
	"github.com/hujun-open/dashbook/raster"
)

// frameFlags describes the container the indicator is drawn into
type frameFlags struct {
	width  float32
	height float32
	count  int
	active int
	offset float32
}

func (ff *frameFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float32Var(&ff.width, "width", 360, "container width in px")
	fs.Float32Var(&ff.height, "height", 48, "container height in px")
	fs.IntVar(&ff.count, "count", 5, "number of pages")
	fs.IntVar(&ff.active, "active", 0, "index of the active page")
	fs.Float32Var(&ff.offset, "offset", 0, "left offset of the active page, negative while dragging towards the next page")
}

func (ff *frameFlags) frame() indicator.Frame {
	return indicator.Frame{
		ActiveIndex: ff.active,
		ItemCount:   ff.count,
		Width:       ff.width,
		Height:      ff.height,
		ActiveItem:  &indicator.ItemBounds{Left: ff.offset, Width: ff.width},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		sf      styleFlags
		ff      frameFlags
		columns int
		plain   bool
		list    bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the indicator for one frame",
		Long: `Compute the indicator for a single frame and print it as a row of
terminal cells, optionally followed by the list of draw commands.

Examples:
  dashbook render --count 5 --active 1
  dashbook render --count 5 --active 1 --offset -180 --list
  dashbook render --count 3 --match-width --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind, err := sf.buildIndicator(cmd)
			if err != nil {
				return err
			}
			f := ff.frame()
			cmds := ind.Render(f)
			out := cmd.OutOrStdout()
			strip := preview.NewStrip(columns)
			if plain {
				fmt.Fprintln(out, strip.Plain(cmds, f.Width))
			} else {
				fmt.Fprintln(out, strip.Render(cmds, f.Width))
			}
			progress, reversed := indicator.ComputeProgress(ff.offset, ff.width)
			fmt.Fprintf(out, "page %d/%d  progress %.3f  %v\n",
				ff.active+1, ind.ResolveItemCount(f), progress, indicator.StateOf(progress, reversed))
			if list {
				fmt.Fprintln(out, preview.Table(cmds))
			}
			return nil
		},
	}
	sf.register(cmd)
	ff.register(cmd)
	cmd.Flags().IntVar(&columns, "columns", 60, "number of terminal cells for the container width")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without colours")
	cmd.Flags().BoolVar(&list, "list", false, "also print the draw commands")
	return cmd
}

func newPNGCmd() *cobra.Command {
	var (
		sf       styleFlags
		ff       frameFlags
		outDir   string
		frames   int
		backward bool
		bg       string
	)
	cmd := &cobra.Command{
		Use:   "png",
		Short: "Write the indicator of a page drag as PNG frames",
		Long: `Render the indicator while the active page is dragged by a full page,
one PNG per step, named frame-NN.png.

Examples:
  dashbook png --count 5 --active 1 --frames 12 --out /tmp/drag
  dashbook png --count 5 --active 1 --backward`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind, err := sf.buildIndicator(cmd)
			if err != nil {
				return err
			}
			background, err := parseBackground(bg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			canvases := raster.DragFrames(ind, ff.count, ff.active, int(ff.width), int(ff.height), !backward, frames, background)
			for i, c := range canvases {
				p := filepath.Join(outDir, fmt.Sprintf("frame-%02d.png", i))
				if err := writePNG(p, c); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %v\n", len(canvases), outDir)
			return nil
		},
	}
	sf.register(cmd)
	ff.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().IntVar(&frames, "frames", 8, "number of frames, at least 2")
	cmd.Flags().BoolVar(&backward, "backward", false, "drag towards the previous page")
	cmd.Flags().StringVar(&bg, "background", "#ff000000", "background colour")
	return cmd
}

func writePNG(p string, c *raster.Canvas) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %v, %w", p, err)
	}
	return f.Close()
}

func parseBackground(s string) (color.Color, error) {
	c, err := conf.ParseARGB(s)
	if err != nil {
		return nil, fmt.Errorf("--background: %w", err)
	}
	return c, nil
}
