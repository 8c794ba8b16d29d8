// Package signal generates position commands for exercising shapers: steps,
// impulses, single-mode sines and trapezoidal point-to-point moves.
package signal
