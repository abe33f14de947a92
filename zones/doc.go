// Package zones tracks the partition of an atmosphere into radiative and
// convective regions for the equilibrium solver.
//
// 🚀 What is a zone map?
//
//	The solver balances radiative flux only across radiative levels; inside a
//	convective zone the profile follows the adiabat instead. A Map encodes up
//	to MaxZones convective zones as ordered triples of layer markers:
//
//	  RadTop  — top layer of the radiative region above the zone
//	  ConvTop — top layer of the convective zone (the last solved layer)
//	  ConvBot — bottom layer of the convective zone
//
//	Markers index layers (0..nlevel-2); the convective temperature
//	integration reaches level ConvBot+1. Each zone's radiative region starts
//	immediately below the convective bottom of the zone above:
//	RadTop(i+1) = ConvBot(i)+1 — GrowDown preserves this alignment.
//
// An external stratosphere-search driver mutates the map through GrowUp and
// GrowDown, re-solving after each change to test whether the expanded zone
// restores equilibrium. GrowDown followed by GrowUp with the same arguments
// restores the map exactly.
//
// RadiativeLevels enumerates the active (solved) level indices in order —
// the shared compact index set for residual vectors, Jacobian rows/columns
// and Newton steps. SatZero is the saturating index guard used wherever a
// zone-relative offset may go negative.
package zones
