// Package hooking lets observers attach to the execution of runnables
// without changing them.
package hooking

// HookPos names a position at which hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes the site at which a hook is invoked.
type HookCtx struct {
	// Domain is the hookable that invokes the hook.
	Domain Hookable

	// Pos is the position that triggers the hook.
	Pos *HookPos

	// Item is the object the hook is invoked for, such as the block that is
	// about to run.
	Item any

	// Detail carries position-specific information.
	Detail any
}

// Hookable is an object that accepts hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is a short piece of program that is invoked by a hookable object.
type Hook interface {
	// Func determines what to do when the hook is invoked.
	Func(ctx HookCtx)
}

// HookableBase implements Hookable. It can be embedded into other types.
type HookableBase struct {
	hookList []Hook
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// AcceptHook registers a hook. It panics if the same hook is registered
// twice.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook triggers all the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
