// Package weather models hourly solar conditions as a seasonal Markov chain.
//
// The (temperature, irradiance) plane observed in a historical dataset is cut
// into a Grid of cells. For each season a row-stochastic TransitionMatrix
// holds the probability of moving from one cell to another between two
// consecutive hours. A Process walks those matrices with an injected random
// source so that runs are reproducible.
package weather
