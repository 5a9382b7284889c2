package spin

import "math"

// quadOrder is the fixed order of the Gauss-Legendre rule used by the
// quantum thermostat integrals.
const quadOrder = 32

var glNodes, glWeights [quadOrder]float64

func init() {
	gaussLegendre(glNodes[:], glWeights[:])
}

// gaussLegendre fills nodes and weights for the n-point rule on [-1, 1]
// by Newton iteration on the Legendre polynomial recurrence.
func gaussLegendre(nodes, weights []float64) {
	n := len(nodes)
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for {
			p1, p2 := 1.0, 0.0
			for j := 0; j < n; j++ {
				p3 := p2
				p2 = p1
				p1 = ((2*float64(j)+1)*z*p2 - float64(j)*p3) / (float64(j) + 1)
			}
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)
			z1 := z
			z = z1 - p1/pp
			if math.Abs(z-z1) < 1e-15 {
				break
			}
		}
		nodes[i] = -z
		nodes[n-1-i] = z
		w := 2 / ((1 - z*z) * pp * pp)
		weights[i] = w
		weights[n-1-i] = w
	}
}

// integrate evaluates the rule for f on [0, upper].
func integrate(upper float64, f func(float64) float64) float64 {
	half := 0.5 * upper
	sum := 0.0
	for i := 0; i < quadOrder; i++ {
		sum += glWeights[i] * f(half*(glNodes[i]+1))
	}
	return half * sum
}
