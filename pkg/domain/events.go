package domain

import (
	"context"
	"time"
)

// TransitionKind names the operation that produced a state change.
type TransitionKind string

const (
	TransitionNavigate    TransitionKind = "navigate"
	TransitionBack        TransitionKind = "back"
	TransitionFallback    TransitionKind = "fallback" // GoBack with nothing to go back to
	TransitionLogin       TransitionKind = "login"
	TransitionSetRole     TransitionKind = "set_role"
	TransitionSetLanguage TransitionKind = "set_language"
)

// TransitionEvent describes one applied transition.
type TransitionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      TransitionKind `json:"kind"`
	SessionID string         `json:"session_id,omitempty"`
	From      Screen         `json:"from"`
	To        Screen         `json:"to"`
	IssueID   string         `json:"issue_id,omitempty"`
	Role      Role           `json:"role,omitempty"`
	Changed   bool           `json:"changed"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	// OnTransition fires for every applied transition, including no-ops.
	OnTransition func(context.Context, *TransitionEvent)
	// OnFallback fires when GoBack resolves through the fallback policy.
	OnFallback func(context.Context, *TransitionEvent)
	// OnLogin fires after a successful login routing.
	OnLogin func(context.Context, *TransitionEvent)
}

// MergeHooks chains several hook sets; each callback runs in argument order.
func MergeHooks(all ...LifecycleHooks) LifecycleHooks {
	var transition, fallback, login []func(context.Context, *TransitionEvent)
	for _, h := range all {
		if h.OnTransition != nil {
			transition = append(transition, h.OnTransition)
		}
		if h.OnFallback != nil {
			fallback = append(fallback, h.OnFallback)
		}
		if h.OnLogin != nil {
			login = append(login, h.OnLogin)
		}
	}
	return LifecycleHooks{
		OnTransition: chain(transition),
		OnFallback:   chain(fallback),
		OnLogin:      chain(login),
	}
}

func chain(fns []func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *TransitionEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
