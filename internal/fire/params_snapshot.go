package fire

import "doomfire/internal/core"

// Parameters describes the engine's settings and live source state.
func (e *Engine) Parameters() core.ParameterSnapshot {
	state := "extinguished"
	if e.lit {
		state = "burning"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name:    "Grid",
			Summary: e.cfg.Orientation.String() + " scan",
			Params: []core.Parameter{
				core.IntParam("w", "Width", int64(e.grid.W)),
				core.IntParam("h", "Height", int64(e.grid.H)),
				describe(core.StringParam("orientation", "Orientation", e.cfg.Orientation.String()),
					"portrait rescans only the lower half"),
				describe(core.IntParam("seed", "Seed", e.cfg.Seed), "0 seeds from the clock"),
			},
		},
		{
			Name: "Propagation",
			Params: []core.Parameter{
				describe(core.FloatParam("decay_step", "Decay step", e.decayStep),
					"decay per cell is floor(rand * step)"),
			},
		},
		{
			Name:    "Source",
			Summary: state,
			Params: []core.Parameter{
				core.BoolParam("lit", "Lit", e.lit),
				describe(core.IntParam("ramp_millis", "Ramp ms per intensity", e.cfg.RampMillis),
					"source gains one level per interval until white-hot"),
				core.IntParam("ignited_at", "Ignition clock", e.ignitedAt),
			},
		},
		{
			Name: "Diagnostics",
			Params: []core.Parameter{
				core.IntParam("ticks", "Ticks", e.ticks),
				describe(core.IntParam("anomalies", "Clamped anomalies", int64(e.anomalies)),
					"out-of-range values forced into the palette"),
			},
		},
	}}
}

func describe(p core.Parameter, text string) core.Parameter {
	p.Description = text
	return p
}
