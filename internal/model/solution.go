package model

// Solution is the steady state of a solved model.
type Solution struct {
	// Occupancy is the stationary distribution, indexed by state id.
	Occupancy []float64
	// Weighted is the steady-state flow matrix: Weighted[i][j] is
	// Rates[i][j] scaled by Occupancy[i].
	Weighted [][]float64
}

// Inflow returns the total steady-state flow into state j.
func (s *Solution) Inflow(j int) float64 {
	var sum float64
	for i := range s.Weighted {
		sum += s.Weighted[i][j]
	}
	return sum
}

// Outflow returns the total steady-state flow out of state i.
func (s *Solution) Outflow(i int) float64 {
	var sum float64
	for _, f := range s.Weighted[i] {
		sum += f
	}
	return sum
}
