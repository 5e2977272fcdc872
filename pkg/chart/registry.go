package chart

import (
	"fmt"
	"sync"

	"github.com/StudioSol/set"
)

// Process-wide record of indicator templates already registered with
// the charting library. Registration is shared across adapter
// instances; per-instance state (handles, visibility) never is.
var (
	registryMu          sync.Mutex
	registeredTemplates = set.NewLinkedHashSetString()
)

// EnsureIndicatorRegistered runs the register callback exactly once per
// template name for the process lifetime. Safe with multiple adapters
// alive concurrently; a failed registration is not recorded so a later
// caller may retry.
func EnsureIndicatorRegistered(name string, register func() error) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registeredTemplates.InArray(name) {
		return nil
	}
	if err := register(); err != nil {
		return fmt.Errorf("register indicator template %q: %w", name, err)
	}
	registeredTemplates.Add(name)
	return nil
}

// IndicatorTemplateRegistered reports whether a template name has been
// registered in this process
func IndicatorTemplateRegistered(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registeredTemplates.InArray(name)
}
