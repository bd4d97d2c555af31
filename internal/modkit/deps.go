// Package modkit provides module wiring and core deps
package modkit

import (
	"govgraph/internal/adapters/opengin"
	"govgraph/internal/platform/config"
	"govgraph/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Graph opengin.Port
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the graph port
func (d Deps) ZeroOK() bool { return true }
