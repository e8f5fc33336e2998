// Package analysis provides offline tools for recorded series and systems:
//
//   - [LyapunovExponent]: largest exponent via renormalized twin separation
//   - [SeparationTrend]: least-squares fit of ln(separation) against time
//   - [Summarize]: min, max, mean and spread of a series
//   - [SettleTime]: when a series stays inside a band around its final value
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(physics.NewLorenz(), x0, 0.01, 50, 1e-8)
//	if lambda > 0 {
//	    // nearby trajectories diverge
//	}
package analysis
