// Package cli implements the interactive PocketFarm terminal client: a
// read–eval–print loop over the session, garden and recommendation services,
// with one file per command group and test seams for terminal input.
package cli
