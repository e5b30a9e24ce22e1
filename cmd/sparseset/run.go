package main

import (
	"fmt"

	"github.com/coregx/sparseset"
	"github.com/coregx/sparseset/internal/script"
	"github.com/coregx/sparseset/region"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	File  string `arg:"" type:"existingfile" help:"Scenario file (YAML)"`
	Dirty bool   `help:"Build every set on pseudo-random memory"`
	Mmap  bool   `help:"Back every set with an anonymous memory mapping"`
	Seed  uint64 `default:"1" help:"Seed for the garbage written by --dirty"`
}

func (c *RunCmd) Run(g *Global) error {
	sc, err := script.Load(c.File)
	if err != nil {
		return err
	}
	g.Logger.Info("Loaded scenario",
		"file", c.File,
		"bound", sc.Bound,
		"sets", len(sc.Sets),
		"steps", len(sc.Steps))

	cfg := script.RunConfig{
		Dirty: c.Dirty,
		Seed:  c.Seed,
		Trace: func(step int, st script.Step, s *sparseset.Set) {
			g.Logger.Debug("Applied step",
				"step", step,
				"op", st.Op,
				"set", st.Set,
				"len", s.Len())
		},
	}

	var mappings []*region.Mapping
	defer func() {
		for _, m := range mappings {
			if err := m.Close(); err != nil {
				g.Logger.Warn("Failed to unmap region", "error", err)
			}
		}
	}()
	if c.Mmap {
		cfg.Alloc = func(size int) ([]byte, error) {
			m, err := region.Map(size)
			if err != nil {
				return nil, err
			}
			mappings = append(mappings, m)
			g.Logger.Debug("Mapped region", "bytes", size)
			return m.Bytes(), nil
		}
	}

	res, err := sc.Run(cfg)
	if res != nil {
		for name, s := range res.All() {
			fmt.Fprintf(g.Out, "%s %s\n", name, s)
		}
	}
	if err != nil {
		return err
	}
	g.Logger.Info("Scenario complete", "sets", len(res.Names()), "expectations", len(sc.Expect))
	return nil
}
