package metadata

// Grouping arranges projects by system and subsystem. Both levels preserve
// first-seen order over the input collection, so the same input always yields
// the same grouping.
type Grouping struct {
	Systems []SystemGroup
}

// SystemGroup is one system with its distinct subsystems.
type SystemGroup struct {
	Name       string
	Subsystems []SubsystemGroup
}

// SubsystemGroup is one subsystem with the display names of the services it
// contains, in input order.
type SubsystemGroup struct {
	Name     string
	Services []string
}

// GroupBySystem builds the two-level grouping used by the system and service
// diagrams. Subsystems are deduplicated per system; services accumulate per
// (system, subsystem) pair.
func GroupBySystem(projects []Project) *Grouping {
	g := &Grouping{}
	systemIdx := make(map[string]int)

	for _, p := range projects {
		si, ok := systemIdx[p.System]
		if !ok {
			si = len(g.Systems)
			systemIdx[p.System] = si
			g.Systems = append(g.Systems, SystemGroup{Name: p.System})
		}

		sys := &g.Systems[si]
		sub := -1
		for i := range sys.Subsystems {
			if sys.Subsystems[i].Name == p.Subsystem {
				sub = i
				break
			}
		}
		if sub < 0 {
			sys.Subsystems = append(sys.Subsystems, SubsystemGroup{Name: p.Subsystem})
			sub = len(sys.Subsystems) - 1
		}

		sys.Subsystems[sub].Services = append(sys.Subsystems[sub].Services, p.Name)
	}

	return g
}
