package solver

// Weight returns the steady-state flow matrix: every row of rates scaled by
// the occupancy of its source state. The input matrix is left untouched.
func Weight(rates [][]float64, occupancy []float64) [][]float64 {
	weighted := make([][]float64, len(rates))
	for i, row := range rates {
		weighted[i] = make([]float64, len(row))
		for j, r := range row {
			weighted[i][j] = r * occupancy[i]
		}
	}
	return weighted
}
