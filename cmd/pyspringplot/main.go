// Command pyspringplot is a debug visualizer for saved simulator
// state, grounded in the teacher's examples/*/doplot.go convention of
// small standalone plotting mains driven off serialized output. It is
// not part of the core simulation and is never imported by it.
package main

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

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

type savedState struct {
	Particles []savedParticle `json:"particles"`
	Springs   []savedSpring   `json:"springs"`
}

func main() {
	filename, _ := io.ArgToFilename(0, "state.json", ".json", true)

	data, err := os.ReadFile(filename)
	if err != nil {
		chk.Panic("cannot read state file %q: %v", filename, err)
	}
	var state savedState
	if err := json.Unmarshal(data, &state); err != nil {
		chk.Panic("cannot parse state file %q: %v", filename, err)
	}

	byIndex := make(map[int]savedParticle, len(state.Particles))
	var solidX, solidY, moltenX, moltenY []float64
	for _, p := range state.Particles {
		byIndex[p.Index] = p
		if p.Molten {
			moltenX = append(moltenX, p.X)
			moltenY = append(moltenY, p.Y)
		} else {
			solidX = append(solidX, p.X)
			solidY = append(solidY, p.Y)
		}
	}

	for _, s := range state.Springs {
		a, b := byIndex[s.P1], byIndex[s.P2]
		plt.Plot([]float64{a.X, b.X}, []float64{a.Y, b.Y}, &plt.A{C: "gray", Ls: "-"})
	}
	plt.Plot(solidX, solidY, &plt.A{C: "b", M: "o", Ls: "none", L: "solid"})
	plt.Plot(moltenX, moltenY, &plt.A{C: "r", M: "o", Ls: "none", L: "molten"})

	plt.Gll("x", "y", nil)
	plt.SetForPng(1, 600, 600)
	plt.Save("/tmp/pyspringsim", "state.png")
}
