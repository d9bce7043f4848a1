package domain

import "sort"

// SimulationRow is one observation of one simulated path.
type SimulationRow struct {
	Path        int
	Observation int
	Return      float64
	Volatility  float64
}

// SimulationPanel is the long-format table the engine's simulate command
// produces, plus the two derived scalars consumers need. NObsPerPath is
// taken from the first path group; the panel is assumed rectangular.
type SimulationPanel struct {
	Rows        []SimulationRow
	NPaths      int
	NObsPerPath int
}

// PathSeries returns the (observation, return) pairs of a single path in
// file order.
func (p *SimulationPanel) PathSeries(pathID int) (obs []int, returns []float64) {
	for _, r := range p.Rows {
		if r.Path == pathID {
			obs = append(obs, r.Observation)
			returns = append(returns, r.Return)
		}
	}
	return obs, returns
}

// Returns collects the return value of every row across all paths.
func (p *SimulationPanel) Returns() []float64 {
	out := make([]float64, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r.Return
	}
	return out
}

// TerminalReturns returns the return at the final observation index of
// each path, i.e. the row where observation == NObsPerPath-1.
func (p *SimulationPanel) TerminalReturns() []float64 {
	var out []float64
	last := p.NObsPerPath - 1
	for _, r := range p.Rows {
		if r.Observation == last {
			out = append(out, r.Return)
		}
	}
	return out
}

// LastReturnPerPath returns the return of the last row seen for each path
// in file order, keyed implicitly by ascending path id. Used for terminal
// statistics when observation indices cannot be trusted.
func (p *SimulationPanel) LastReturnPerPath() []float64 {
	last := make(map[int]float64)
	var ids []int
	for _, r := range p.Rows {
		if _, seen := last[r.Path]; !seen {
			ids = append(ids, r.Path)
		}
		last[r.Path] = r.Return
	}
	sort.Ints(ids)
	out := make([]float64, 0, len(ids))
	for _, id := range ids {
		out = append(out, last[id])
	}
	return out
}

// GroupByObservation groups returns across paths per observation index,
// in ascending observation order. The groups drive the cross-path mean and
// percentile bands.
func (p *SimulationPanel) GroupByObservation() (obs []int, groups [][]float64) {
	byObs := make(map[int][]float64)
	for _, r := range p.Rows {
		byObs[r.Observation] = append(byObs[r.Observation], r.Return)
	}
	obs = make([]int, 0, len(byObs))
	for o := range byObs {
		obs = append(obs, o)
	}
	sort.Ints(obs)
	groups = make([][]float64, len(obs))
	for i, o := range obs {
		groups[i] = byObs[o]
	}
	return obs, groups
}
