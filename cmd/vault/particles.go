package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slayervault/internal/particles"
)

func newParticlesCmd() *cobra.Command {
	var (
		seed, preset string
		count        int
	)
	cmd := &cobra.Command{
		Use:   "particles",
		Short: "Generate a deterministic particle field locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok := particles.PresetFor(preset)
			if !ok {
				return fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(particles.PresetNames(), ", "))
			}
			return printJSON(cmd.OutOrStdout(), particles.GenerateWith(particles.ClampCount(count), seed, p))
		},
	}
	f := cmd.Flags()
	f.StringVar(&seed, "seed", "", "seed string; the same seed always yields the same field")
	f.IntVar(&count, "count", particles.DefaultCount, "number of particles")
	f.StringVar(&preset, "preset", "default", "range preset")
	return cmd
}
