// internal/engine/route.go
package engine

// OptimizeVisitOrder returns a visiting order over a symmetric travel time
// matrix, starting from the given index, using greedy nearest-neighbor.
// The matrix is indexed [from][to] in minutes. Returns indices into the
// matrix, start first. A start out of range falls back to 0.
func OptimizeVisitOrder(matrix [][]float64, start int) []int {
	n := len(matrix)
	if n == 0 {
		return []int{}
	}
	if start < 0 || start >= n {
		start = 0
	}

	order := make([]int, 0, n)
	visited := make([]bool, n)
	current := start
	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		next := -1
		best := 0.0
		for j := 0; j < n; j++ {
			if visited[j] || len(matrix[current]) <= j {
				continue
			}
			if next == -1 || matrix[current][j] < best {
				next = j
				best = matrix[current][j]
			}
		}
		if next == -1 {
			break
		}
		order = append(order, next)
		visited[next] = true
		current = next
	}
	return order
}
