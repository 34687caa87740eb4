package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPluginLifecycle(t *testing.T) {
	h := NewHost()

	var events []string
	h.Inject("recorder", func(inst *Instance, ref any, props Props) *Hooks {
		if !props.Has("tracked") {
			return nil
		}
		inst.OnDestroy(func() { events = append(events, "cleanup") })
		return &Hooks{
			OnMount:       func() { events = append(events, "mount") },
			OnRefChange:   func(ref any) { events = append(events, "ref:"+ref.(string)) },
			OnPropsChange: func(props Props) { events = append(events, "props") },
			OnDestroy:     func() { events = append(events, "destroy") },
			PluginProps:   []string{"tracked"},
		}
	})

	ignored := h.Mount("a", Props{"color": "red"})
	tracked := h.Mount("b", Props{"tracked": true, "color": "blue"})

	if tracked.Props().Has("tracked") {
		t.Fatal("expected plugin props to be stripped from instance props")
	}
	if !tracked.Props().Has("color") {
		t.Fatal("expected non-plugin props to be preserved")
	}

	tracked.SetRef("c")
	tracked.SetProps(Props{"tracked": true})
	tracked.Destroy()
	tracked.Destroy()
	ignored.Destroy()

	exp := []string{"mount", "ref:c", "props", "cleanup", "destroy"}
	if diff := cmp.Diff(exp, events); diff != "" {
		t.Fatalf("unexpected lifecycle events (-want +got):\n%s", diff)
	}
	if got := h.Len(); got != 0 {
		t.Fatalf("expected no live instances; got %d", got)
	}
}

func TestTeardownRunsDespitePanic(t *testing.T) {
	h := NewHost()

	var ran []string
	h.Inject("boom", func(inst *Instance, ref any, props Props) *Hooks {
		inst.OnDestroy(func() { ran = append(ran, "first") })
		inst.OnDestroy(func() { panic("boom") })
		return &Hooks{OnDestroy: func() { ran = append(ran, "hook") }}
	})

	inst := h.Mount(1, nil)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected teardown panic to be re-raised")
			}
		}()
		inst.Destroy()
	}()

	if diff := cmp.Diff([]string{"first", "hook"}, ran); diff != "" {
		t.Fatalf("expected all teardown steps to run (-want +got):\n%s", diff)
	}
	if !inst.Destroyed() {
		t.Fatal("expected instance to be marked destroyed")
	}
}

func TestInjectReplacesByName(t *testing.T) {
	h := NewHost()

	var calls []string
	h.Inject("p", func(*Instance, any, Props) *Hooks { calls = append(calls, "old"); return nil })
	h.Inject("p", func(*Instance, any, Props) *Hooks { calls = append(calls, "new"); return nil })
	h.Mount(nil, nil)

	if diff := cmp.Diff([]string{"new"}, calls); diff != "" {
		t.Fatalf("unexpected plugin calls (-want +got):\n%s", diff)
	}
}

func TestDestroyAll(t *testing.T) {
	h := NewHost()
	destroyed := 0
	h.Inject("count", func(*Instance, any, Props) *Hooks {
		return &Hooks{OnDestroy: func() { destroyed++ }}
	})

	for i := 0; i < 3; i++ {
		h.Mount(i, nil)
	}
	h.DestroyAll()

	if destroyed != 3 || h.Len() != 0 {
		t.Fatalf("expected 3 destroyed instances and none live; got %d destroyed, %d live", destroyed, h.Len())
	}
}
