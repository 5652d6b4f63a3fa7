// Package rating keeps Glicko-2 standings for simulated strategies.
// Every finished game is one rated event per contender, scored against
// the average rating of the rest of the table.
package rating

import "math"

const (
	// GlickoScale converts between the public Elo scale and Glicko-2's
	// internal mu/phi space.
	GlickoScale = 173.7178
	// DefaultElo is the baseline rating for an unseen contender.
	DefaultElo = 1500.0
	// DefaultRD is the baseline rating deviation.
	DefaultRD = 350.0
	// DefaultSigma is the baseline volatility.
	DefaultSigma = 0.06
	// Tau constrains how fast volatility can move between events.
	Tau = 0.5
	// Epsilon is the stopping tolerance for the volatility iteration.
	Epsilon = 0.000001
)

// Rating is one contender's Glicko-2 state on the public 1500-based
// scale. RD shrinks as games accumulate; Sigma tracks how erratic the
// contender's results have been.
type Rating struct {
	Elo   float64
	RD    float64
	Sigma float64
}

// NewRating returns the unrated baseline.
func NewRating() Rating {
	return Rating{Elo: DefaultElo, RD: DefaultRD, Sigma: DefaultSigma}
}

func (r Rating) mu() float64  { return (r.Elo - DefaultElo) / GlickoScale }
func (r Rating) phi() float64 { return r.RD / GlickoScale }

// update applies a single rated event against opp, with score in
// [0,1] (1 = clean win, 0 = clean loss, ties in between), and returns
// the moved rating.
func update(r, opp Rating, score float64) Rating {
	mu, phi, sigma := r.mu(), r.phi(), r.Sigma
	gVal := g(opp.phi())
	eVal := expected(mu, opp.mu(), opp.phi())

	v := 1.0 / (gVal * gVal * eVal * (1 - eVal))
	delta := v * gVal * (score - eVal)

	// Volatility update, per Glickman's iterative procedure.
	a := math.Log(sigma * sigma)
	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for volF(a-k*Tau, phi, v, delta, a) < 0 {
			k++
		}
		B = a - k*Tau
	}

	fB := volF(B, phi, v, delta, a)
	for i := 0; i < 100; i++ {
		fA := volF(A, phi, v, delta, a)
		if math.Abs(fA) < Epsilon {
			break
		}
		prev := A
		A = prev - fA*(prev-B)/(fA-fB)
		fB = volF(B, phi, v, delta, a)
		if math.Abs(A-B) < Epsilon {
			break
		}
	}
	newSigma := math.Exp(A / 2)

	phiStar := math.Sqrt(phi*phi + newSigma*newSigma)
	phiPrime := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muPrime := mu + phiPrime*phiPrime*gVal*(score-eVal)

	return Rating{
		Elo:   muPrime*GlickoScale + DefaultElo,
		RD:    phiPrime * GlickoScale,
		Sigma: newSigma,
	}
}

// g is Glicko-2's G(phi) factor, 1/sqrt(1+3phi^2/pi^2).
func g(phi float64) float64 {
	return 1.0 / math.Sqrt(1.0+3.0*phi*phi/math.Pi/math.Pi)
}

// expected is the expected score of mu against an opponent at oppMu
// with deviation oppPhi.
func expected(mu, oppMu, oppPhi float64) float64 {
	return 1.0 / (1.0 + math.Exp(-g(oppPhi)*(mu-oppMu)))
}

// volF is the volatility root-finding function f(x).
func volF(x, phi, v, delta, a float64) float64 {
	ex := math.Exp(x)
	num := ex * (delta*delta - phi*phi - v - ex)
	den := 2.0 * (phi*phi + v + ex) * (phi*phi + v + ex)
	return num/den - (x-a)/(Tau*Tau)
}
