// Command pyspringsim is the reference CLI front end for the
// simulator (spec §6 "CLI surface"), ported from the source's
// main.py. Argument parsing, file I/O and serialization are
// deliberately kept out of the core packages (spec §1) and live here.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dantrag/pyspringsim/geom"
	"github.com/dantrag/pyspringsim/imaging"
	"github.com/dantrag/pyspringsim/inp"
	"github.com/dantrag/pyspringsim/sim"
)

var (
	inputPath    string
	outputPath   string
	targetPath   string
	settingsPath string
	params       []int
)

func main() {
	root := &cobra.Command{
		Use:   "pyspringsim",
		Short: "Mass-spring network laser heating simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("no command provided (use init, pass or predict)")
		},
	}
	root.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "input file (mask image)")
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output file (saved state for init/pass, moves for predict)")
	root.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "settings file")

	root.AddCommand(initCmd(), passCmd(), predictCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() *inp.Settings {
	settings := inp.Default()
	if settingsPath != "" {
		settings.Load(settingsPath)
	} else {
		fmt.Println("Warning: no settings file provided, using default (use -s)")
	}
	return settings
}

// savedState is the reference persistence format for -o on init/pass.
// Serialization is explicitly out of scope for the core (spec §1); this
// is thin host-side glue, not part of the simulated system.
type savedState struct {
	Particles []savedParticle `json:"particles"`
	Springs   []savedSpring   `json:"springs"`
}

type savedParticle struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Molten bool    `json:"molten"`
}

type savedSpring struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

func writeState(path string, s *sim.Simulator) error {
	index := make(map[interface{}]int)
	state := savedState{}
	for i, p := range s.Particles() {
		index[p.ID] = i
		state.Particles = append(state.Particles, savedParticle{Index: i, X: p.X, Y: p.Y, Molten: p.Molten})
	}
	for _, sp := range s.Springs() {
		state.Springs = append(state.Springs, savedSpring{P1: index[sp.P1], P2: index[sp.P2]})
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func initMesh(s *sim.Simulator) error {
	if inputPath == "" {
		return fmt.Errorf("no input file provided to initialize from (use -i)")
	}
	mask, width, height, err := imaging.MaskFromFile(inputPath, 1.0)
	if err != nil {
		return fmt.Errorf("failed reading input file")
	}
	s.InitializeFromMask(width, height, mask)
	return nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a mesh from a mask image",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sim.New(loadSettings())
			if err := initMesh(s); err != nil {
				return err
			}
			return finish(s)
		},
	}
}

func passCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pass",
		Short: "Initialize a mesh and run a heater pass across it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sim.New(loadSettings())
			if err := initMesh(s); err != nil {
				return err
			}
			if len(params) == 0 {
				return fmt.Errorf("no coordinates of laser pass provided (use -p)")
			}
			if len(params) < 4 {
				return fmt.Errorf("too few coordinates provided (at least 2 points)")
			}
			if len(params)%2 != 0 {
				return fmt.Errorf("odd number of coordinates provided (2 per point)")
			}
			var points []geom.Point
			for i := 0; i+1 < len(params); i += 2 {
				points = append(points, geom.Point{X: float64(params[i]), Y: float64(params[i+1])})
			}
			s.RunLinearPasses(points)
			return finish(s)
		},
	}
	cmd.Flags().IntSliceVarP(&params, "params", "p", nil, "laser pass coordinates, x y pairs")
	return cmd
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Emit the pass points that would be run against a target shape (identity planner)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				return fmt.Errorf("no target file provided (use -t)")
			}
			if inputPath == "" {
				return fmt.Errorf("no input file provided to initialize from (use -i)")
			}
			if len(params) == 0 {
				return fmt.Errorf("no coordinates of laser pass provided (use -p)")
			}
			if len(params) < 4 {
				return fmt.Errorf("too few coordinates provided (at least 2 points)")
			}
			if len(params)%2 != 0 {
				return fmt.Errorf("odd number of coordinates provided (2 per point)")
			}
			if outputPath == "" {
				fmt.Println("Warning: no output file provided (use -o)")
				return nil
			}
			var out string
			for i := 0; i+1 < len(params); i += 2 {
				out += fmt.Sprintf("%d %d\n", params[i], params[i+1])
			}
			return os.WriteFile(outputPath, []byte(out), 0o644)
		},
	}
	cmd.Flags().StringVarP(&targetPath, "target", "t", "", "target file (shape outline XY coordinates)")
	cmd.Flags().IntSliceVarP(&params, "params", "p", nil, "laser pass coordinates, x y pairs")
	return cmd
}

func finish(s *sim.Simulator) error {
	if outputPath == "" {
		fmt.Println("Warning: no output file provided (use -o)")
		return nil
	}
	return writeState(outputPath, s)
}
