// Package component hosts scene objects and the plugins that attach
// behaviour to them.
//
// Mounting an object runs every injected plugin against the object and its
// props. A plugin that wants to participate returns Hooks, which the host
// invokes as the object's reference or props change and when the instance is
// destroyed.
package component

import (
	"fmt"
	"sync"

	"github.com/achilleasa/ptlive/log"
)

var logger = log.New("component")

// Props are the declared properties of a mounted object.
type Props map[string]any

// Has returns true if the named property is declared.
func (p Props) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Hooks are returned by plugins that attach to an instance.
type Hooks struct {
	OnMount       func()
	OnDestroy     func()
	OnRefChange   func(ref any)
	OnPropsChange func(props Props)

	// Props consumed by this plugin; they are not visible in the
	// instance's own props.
	PluginProps []string
}

// A PluginFunc inspects a newly created instance. Returning nil means the
// plugin does not attach to it.
type PluginFunc func(inst *Instance, ref any, props Props) *Hooks

type namedPlugin struct {
	name string
	fn   PluginFunc
}

// Host mounts instances and applies injected plugins to them.
type Host struct {
	mu      sync.Mutex
	plugins []namedPlugin
	live    map[*Instance]struct{}
}

func NewHost() *Host {
	return &Host{live: make(map[*Instance]struct{})}
}

// Inject a plugin. Plugins apply to instances mounted after injection, in
// injection order. Injecting a plugin with the same name replaces it.
func (h *Host) Inject(name string, fn PluginFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, p := range h.plugins {
		if p.name == name {
			h.plugins[i].fn = fn
			return
		}
	}
	h.plugins = append(h.plugins, namedPlugin{name: name, fn: fn})
}

// Mount a new instance for ref.
func (h *Host) Mount(ref any, props Props) *Instance {
	h.mu.Lock()
	plugins := make([]namedPlugin, len(h.plugins))
	copy(plugins, h.plugins)
	h.mu.Unlock()

	inst := &Instance{host: h, ref: ref, props: props.Clone()}
	pluginProps := make(map[string]struct{})
	for _, p := range plugins {
		hooks := p.fn(inst, ref, props)
		if hooks == nil {
			continue
		}
		logger.Debugf("plugin %q attached to %T", p.name, ref)
		inst.hooks = append(inst.hooks, hooks)
		for _, name := range hooks.PluginProps {
			pluginProps[name] = struct{}{}
		}
	}
	for name := range pluginProps {
		delete(inst.props, name)
	}

	h.mu.Lock()
	h.live[inst] = struct{}{}
	h.mu.Unlock()

	for _, hooks := range inst.hooks {
		if hooks.OnMount != nil {
			hooks.OnMount()
		}
	}
	return inst
}

// Get the number of mounted instances.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Destroy all mounted instances.
func (h *Host) DestroyAll() {
	h.mu.Lock()
	live := make([]*Instance, 0, len(h.live))
	for inst := range h.live {
		live = append(live, inst)
	}
	h.mu.Unlock()

	for _, inst := range live {
		inst.Destroy()
	}
}

// Instance is a mounted object.
type Instance struct {
	host     *Host
	ref      any
	props    Props
	hooks    []*Hooks
	cleanups []func()

	destroyed bool
}

// Get the current reference.
func (i *Instance) Ref() any { return i.ref }

// Get the props that were not consumed by a plugin.
func (i *Instance) Props() Props { return i.props.Clone() }

// Report whether Destroy has run.
func (i *Instance) Destroyed() bool { return i.destroyed }

// Register a cleanup that runs when the instance is destroyed. Cleanups run
// in reverse registration order. Registering on a destroyed instance runs fn
// immediately.
func (i *Instance) OnDestroy(fn func()) {
	if i.destroyed {
		fn()
		return
	}
	i.cleanups = append(i.cleanups, fn)
}

// Replace the bound reference and notify the attached plugins.
func (i *Instance) SetRef(ref any) {
	if i.destroyed {
		return
	}
	i.ref = ref
	for _, hooks := range i.hooks {
		if hooks.OnRefChange != nil {
			hooks.OnRefChange(ref)
		}
	}
}

// Replace the declared props and notify the attached plugins.
func (i *Instance) SetProps(props Props) {
	if i.destroyed {
		return
	}
	own := props.Clone()
	for _, hooks := range i.hooks {
		for _, name := range hooks.PluginProps {
			delete(own, name)
		}
	}
	i.props = own
	for _, hooks := range i.hooks {
		if hooks.OnPropsChange != nil {
			hooks.OnPropsChange(props.Clone())
		}
	}
}

// Destroy the instance. Plugin destroy hooks and registered cleanups always
// run, even when one of them panics; the first panic is re-raised once
// teardown completes. Destroy is idempotent.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	i.destroyed = true

	if i.host != nil {
		i.host.mu.Lock()
		delete(i.host.live, i)
		i.host.mu.Unlock()
	}

	var firstPanic any
	run := func(fn func()) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic during instance teardown: %v", r)
				if firstPanic == nil {
					firstPanic = r
				}
			}
		}()
		fn()
	}

	for idx := len(i.cleanups) - 1; idx >= 0; idx-- {
		run(i.cleanups[idx])
	}
	i.cleanups = nil
	for _, hooks := range i.hooks {
		if hooks.OnDestroy != nil {
			run(hooks.OnDestroy)
		}
	}

	if firstPanic != nil {
		panic(fmt.Sprintf("component: teardown panicked: %v", firstPanic))
	}
}
