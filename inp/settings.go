// Package inp holds the simulation's input data: the immutable bag of
// numeric parameters read from an INI configuration file.
package inp

import (
	"github.com/cpmech/gosl/io"
	"gopkg.in/ini.v1"
)

// Settings is the simulator's configuration bag (spec §3/§4.2). Every
// field has a default; loading a file only overrides the fields whose
// section/key is present.
type Settings struct {
	ParticleDefaultRadius       float64
	MoltenParticleDefaultRadius float64
	MoltenParticleCooldownTime  int

	SpringDefaultStiffness       float64
	SpringDefaultLength          float64
	SpringConnectionThreshold    float64
	SpringDisconnectionThreshold float64

	RelaxationIterationLimit    int
	RelaxationConvergenceLimit float64

	HeaterSpeed float64
	HeaterSize  float64
}

// Default returns the settings defaults from spec §3.
func Default() *Settings {
	return &Settings{
		ParticleDefaultRadius:       1.0,
		MoltenParticleDefaultRadius: 2.0,
		MoltenParticleCooldownTime:  20,

		SpringDefaultStiffness:       0.01,
		SpringDefaultLength:          5.5,
		SpringConnectionThreshold:    1.0,
		SpringDisconnectionThreshold: 1.3,

		RelaxationIterationLimit:   2000,
		RelaxationConvergenceLimit: 0.001,

		HeaterSpeed: 2.0,
		HeaterSize:  20.0,
	}
}

// Load reads an INI file and overrides the recognized sections/options
// (§4.2); section and key names are matched case-insensitively. A
// missing file or a parse error is non-fatal: defaults are retained and
// a warning is logged (§7).
func (o *Settings) Load(path string) {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		io.Pfyel("warning: failed reading config file %s: %v\n", path, err)
		return
	}

	particle := cfg.Section("particle")
	if k, err := particle.GetKey("defaultradius"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.ParticleDefaultRadius = v
		}
	}
	if k, err := particle.GetKey("moltendefaultradius"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.MoltenParticleDefaultRadius = v
		}
	}
	if k, err := particle.GetKey("cooldowntime"); err == nil {
		if v, err := k.Int(); err == nil {
			o.MoltenParticleCooldownTime = v
		}
	}

	spring := cfg.Section("spring")
	if k, err := spring.GetKey("defaultstiffness"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.SpringDefaultStiffness = v
		}
	}
	if k, err := spring.GetKey("defaultlength"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.SpringDefaultLength = v
		}
	}
	if k, err := spring.GetKey("connectionthreshold"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.SpringConnectionThreshold = v
		}
	}
	if k, err := spring.GetKey("disconnectionthreshold"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.SpringDisconnectionThreshold = v
		}
	}

	relaxation := cfg.Section("relaxation")
	if k, err := relaxation.GetKey("iterationlimit"); err == nil {
		if v, err := k.Int(); err == nil {
			o.RelaxationIterationLimit = v
		}
	}
	if k, err := relaxation.GetKey("convergencelimit"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.RelaxationConvergenceLimit = v
		}
	}

	heater := cfg.Section("heater")
	if k, err := heater.GetKey("speed"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.HeaterSpeed = v
		}
	}
	if k, err := heater.GetKey("size"); err == nil {
		if v, err := k.Float64(); err == nil {
			o.HeaterSize = v
		}
	}
}

// Save writes the settings to path in the same INI layout Load expects.
// Not required by spec.md, but present in the original Python source
// (settings.py's save_to_file) and kept here for symmetry (SPEC_FULL §D.1).
func (o *Settings) Save(path string) error {
	cfg := ini.Empty()

	particle, _ := cfg.NewSection("particle")
	particle.NewKey("defaultradius", io.Sf("%.2f", o.ParticleDefaultRadius))
	particle.NewKey("moltendefaultradius", io.Sf("%.2f", o.MoltenParticleDefaultRadius))
	particle.NewKey("cooldowntime", io.Sf("%d", o.MoltenParticleCooldownTime))

	spring, _ := cfg.NewSection("spring")
	spring.NewKey("defaultstiffness", io.Sf("%.3f", o.SpringDefaultStiffness))
	spring.NewKey("defaultlength", io.Sf("%.2f", o.SpringDefaultLength))
	spring.NewKey("connectionthreshold", io.Sf("%.2f", o.SpringConnectionThreshold))
	spring.NewKey("disconnectionthreshold", io.Sf("%.2f", o.SpringDisconnectionThreshold))

	relaxation, _ := cfg.NewSection("relaxation")
	relaxation.NewKey("iterationlimit", io.Sf("%d", o.RelaxationIterationLimit))
	relaxation.NewKey("convergencelimit", io.Sf("%.4f", o.RelaxationConvergenceLimit))

	heater, _ := cfg.NewSection("heater")
	heater.NewKey("speed", io.Sf("%.2f", o.HeaterSpeed))
	heater.NewKey("size", io.Sf("%.2f", o.HeaterSize))

	return cfg.SaveTo(path)
}

// Interval is the lattice spacing derived from the particle radius and
// spring rest length (spec §4.3).
func (o *Settings) Interval() float64 {
	return 2*o.ParticleDefaultRadius + o.SpringDefaultLength
}
