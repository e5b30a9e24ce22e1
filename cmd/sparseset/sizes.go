package main

import (
	"fmt"

	"github.com/coregx/sparseset"
	"github.com/coregx/sparseset/internal/conv"
	"github.com/coregx/sparseset/region"
)

// SizesCmd implements the 'sizes' command.
type SizesCmd struct {
	Bound int `arg:"" help:"Universe size"`
}

func (c *SizesCmd) Run(g *Global) error {
	total, err := sparseset.RegionSize(c.Bound)
	if err != nil {
		return err
	}
	width := conv.WidthFor(c.Bound)
	half := total / 2
	page := region.PageSize()

	fmt.Fprintf(g.Out, "bound:  %d\n", c.Bound)
	fmt.Fprintf(g.Out, "width:  %d bytes\n", width)
	fmt.Fprintf(g.Out, "dense:  %d bytes at offset 0\n", half)
	fmt.Fprintf(g.Out, "sparse: %d bytes at offset %d\n", half, half)
	fmt.Fprintf(g.Out, "total:  %d bytes\n", total)
	fmt.Fprintf(g.Out, "pages:  %d of %d bytes\n", (total+page-1)/page, page)
	g.Logger.Debug("Computed layout", "bound", c.Bound, "width", width, "bytes", total)
	return nil
}
