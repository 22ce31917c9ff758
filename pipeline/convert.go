package pipeline

import "gonum.org/v1/gonum/mat"

func columnIndices(names, want []string) []int {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	idx := make([]int, 0, len(want))
	for _, w := range want {
		if i, ok := pos[w]; ok {
			idx = append(idx, i)
		}
	}
	return idx
}

func pick(v []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = v[j]
	}
	return out
}

func denseRows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		mat.Row(rows[i], i, m)
	}
	return rows
}

func rowsMatrix(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

func labelMatrix(y []int) *mat.Dense {
	if len(y) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(y), 1, nil)
	for i, v := range y {
		m.Set(i, 0, float64(v))
	}
	return m
}

func matrixLabels(m mat.Matrix) []int {
	r, _ := m.Dims()
	out := make([]int, r)
	for i := range out {
		out[i] = int(m.At(i, 0))
	}
	return out
}
