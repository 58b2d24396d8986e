package burnguard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var registryGeneration atomic.Uint64

// Function represents a callable exposed to rule expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom rule functions. Lookups are case-insensitive;
// Names reports the casing used at registration.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
	names     map[string]string
	// generation changes whenever the function set may differ; compiled
	// programs are cached per generation.
	generation uint64
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions:  make(map[string]Function),
		names:      make(map[string]string),
		generation: registryGeneration.Add(1),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("burnguard: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("burnguard: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
		r.names = make(map[string]string)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("burnguard: function %q already registered", name)
	}
	r.functions[key] = fn
	r.names[key] = name
	r.generation = registryGeneration.Add(1)
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions:  make(map[string]Function, len(r.functions)),
		names:      make(map[string]string, len(r.names)),
		generation: registryGeneration.Add(1),
	}
	for key, fn := range r.functions {
		clone.functions[key] = fn
		clone.names[key] = r.names[key]
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("burnguard: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("burnguard: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fingerprint identifies the registry contents for program cache keys.
func (r *FunctionRegistry) fingerprint() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return "fn" + strconv.FormatUint(r.generation, 10)
}
