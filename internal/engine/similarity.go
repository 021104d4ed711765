package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// Matrix es la matriz de similitud coseno: cuadrada, simétrica, diagonal
// exactamente 1, valores en [0,1]. Inmutable después de construida; se
// indexa por fila del catálogo, no por movieId.
type Matrix struct {
	n    int
	vals []float64 // fila-major, n*n
}

func (m *Matrix) Len() int { return m.n }

func (m *Matrix) At(i, j int) float64 { return m.vals[i*m.n+j] }

// Row devuelve una copia de la fila i (para persistencia).
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.n)
	copy(out, m.vals[i*m.n:(i+1)*m.n])
	return out
}

// NewMatrixFromRows rearma una matriz desde filas persistidas.
func NewMatrixFromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, vals: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("fila %d: largo %d, se esperaba %d", i, len(row), n)
		}
		copy(m.vals[i*n:(i+1)*n], row)
	}
	return m, nil
}

// buildMatrix calcula todas las similitudes por pares. O(N²·d) tiempo y
// O(N²) memoria: límite de diseño aceptado, el sistema apunta a catálogos
// de unos pocos miles de entradas. El trabajo se reparte por filas entre
// workers (fan-out de goroutines + channel, mismo patrón que el resto del
// proyecto) y es cancelable vía ctx.
func buildMatrix(ctx context.Context, rows []docVector) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, vals: make([]float64, n*n)}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				m.vals[i*n+i] = 1
				for j := i + 1; j < n; j++ {
					// cada fila la toca un solo worker y el espejo (j,i)
					// cae en filas j>i que ningún otro worker escribe en
					// su mitad inferior: sin carreras
					s := dot(rows[i], rows[j])
					if s < 0 {
						s = 0
					} else if s > 1 {
						s = 1
					}
					m.vals[i*n+j] = s
					m.vals[j*n+i] = s
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Neighbor es un vecino por fila con su similitud.
type Neighbor struct {
	Row   int
	Score float64
}

// Neighbors devuelve los top-k vecinos de una fila, excluyéndola a ella
// misma: score descendente, empates por fila ascendente (orden
// reproducible). Si k pasa del tamaño del catálogo devuelve lo que hay.
func (m *Matrix) Neighbors(row, k int) []Neighbor {
	if m.n <= 1 {
		return nil
	}

	out := make([]Neighbor, 0, m.n-1)
	for j := 0; j < m.n; j++ {
		if j == row {
			continue
		}
		out = append(out, Neighbor{Row: j, Score: m.At(row, j)})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Row < out[b].Row
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
