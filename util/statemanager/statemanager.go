// Package statemanager tracks which phase of a generation run is executing.
package statemanager

import "sync"

// Run phase choices, in execution order:
const (
	PhaseInit                = "init"
	PhaseSetupGeneration     = "setup-generation"
	PhaseSetupPersist        = "setup-persist"
	PhaseBenchmarkGeneration = "benchmark-generation"
	PhaseManifest            = "manifest"
	PhaseUpload              = "upload"
	PhaseDone                = "done"
)

type manager struct {
	state string
}

var singleton *manager
var once sync.Once

func GetManager() *manager {
	once.Do(func() {
		singleton = &manager{state: PhaseInit}
	})
	return singleton
}

func (sm *manager) GetState() string {
	return sm.state
}

func (sm *manager) SetState(s string) {
	sm.state = s
}
