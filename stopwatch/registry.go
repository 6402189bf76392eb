package stopwatch

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry is a named set of stopwatches with a current trace used to nest
// Tic calls. Registry methods are safe for concurrent use, the Stopwatch
// values it hands out are not.
type Registry struct {
	mu      sync.Mutex
	watches map[string]*Stopwatch
	trace   string
}

func NewRegistry() *Registry {
	return &Registry{watches: make(map[string]*Stopwatch)}
}

// Get returns the watch for key, creating a stopped one when absent
func (r *Registry) Get(key string) *Stopwatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(key)
}

func (r *Registry) get(key string) (sw *Stopwatch) {
	var ok bool
	if sw, ok = r.watches[key]; !ok {
		sw = New(false)
		r.watches[key] = sw
	}
	return
}

func (r *Registry) Keys() (keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys = make([]string, 0, len(r.watches))
	for k := range r.watches {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// Remove deletes key. With isRoot every key nested below it is removed too.
func (r *Registry) Remove(key string, isRoot bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.watches, key)
	if !isRoot {
		return
	}
	prefix := key + "/"
	for k := range r.watches {
		if strings.HasPrefix(k, prefix) {
			delete(r.watches, k)
		}
	}
}

func (r *Registry) Trace() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trace
}

func (r *Registry) SetTrace(trace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = trace
}

// Record stores a duration measured elsewhere under key
func (r *Registry) Record(key string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.get(key).record(d)
}

// Stored returns the stored durations of key in seconds
func (r *Registry) Stored(key string) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sw, ok := r.watches[key]; ok {
		return sw.Stored()
	}
	return nil
}

/*
Tic starts the watch named name below the current trace and makes it the
current trace. The returned toc stores the elapsed time and restores the
parent trace:

	toc := reg.Tic("assemble", false)
	defer toc()
*/
func (r *Registry) Tic(name string, reset bool) (toc func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var (
		parent = r.trace
		key    = name
	)
	if len(parent) != 0 {
		key = parent + "/" + name
	}
	sw := r.get(key)
	if reset {
		sw.Reset()
	}
	sw.Start()
	r.trace = key
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		sw.Stop()
		sw.Store(false)
		r.trace = parent
	}
}
