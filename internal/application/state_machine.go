package application

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/jobboard/internal/model"
)

const (
	textCodeInvalidTransition = "INVALID_APPLICATION_STATE_TRANSITION"
	textCodeTerminalState     = "TERMINAL_APPLICATION_STATE"
)

// ErrInvalidTransition is returned when a requested status change is not allowed.
var ErrInvalidTransition = goerrors.New("Invalid status transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrTerminalState is returned when attempting to move away from a decided
// application (accepted or rejected).
var ErrTerminalState = goerrors.New("Invalid status transition", goerrors.CategoryConflict).
	WithTextCode(textCodeTerminalState).
	WithCode(goerrors.CodeBadRequest)

// ActorRef identifies who/what triggered a transition.
type ActorRef struct {
	ID   string
	Type string
}

// TransitionMetadata captures extra context for a transition.
type TransitionMetadata struct {
	Reason   string
	Metadata map[string]any
}

// TransitionContext is passed into hooks for additional processing.
type TransitionContext struct {
	Actor       ActorRef
	Application *model.JobApplication
	From        model.ApplicationStatus
	To          model.ApplicationStatus
	Meta        TransitionMetadata
}

// TransitionHook is executed before or after a transition.
type TransitionHook func(ctx context.Context, tc TransitionContext) error

// TransitionHookPhase identifies whether a hook ran before or after persistence.
type TransitionHookPhase string

const (
	HookPhaseBefore TransitionHookPhase = "before_transition"
	HookPhaseAfter  TransitionHookPhase = "after_transition"
)

// TransitionOption customizes state machine behavior.
type TransitionOption func(*transitionOptions)

// StatusStore persists the status column for an application.
type StatusStore interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.JobApplication, error)
}

// StateMachine defines lifecycle operations for job applications.
type StateMachine interface {
	Transition(ctx context.Context, actor ActorRef, application *model.JobApplication, target model.ApplicationStatus, opts ...TransitionOption) (*model.JobApplication, error)
	CurrentStatus(application *model.JobApplication) model.ApplicationStatus
}

// HookErrorHandler handles errors surfaced by transition hooks.
type HookErrorHandler func(ctx context.Context, phase TransitionHookPhase, err error, tc TransitionContext) error

// StateMachineOption customizes state machine construction.
type StateMachineOption func(*stateMachine)

// WithStateMachineClock injects a custom clock (useful for tests).
func WithStateMachineClock(clock func() time.Time) StateMachineOption {
	return func(sm *stateMachine) {
		if clock != nil {
			sm.now = clock
		}
	}
}

// WithStateMachineHookErrorHandler overrides how hook failures are propagated.
func WithStateMachineHookErrorHandler(handler HookErrorHandler) StateMachineOption {
	return func(sm *stateMachine) {
		if handler != nil {
			sm.hookErrorHandler = handler
		}
	}
}

// WithTransitionReason sets the human-readable reason for the transition.
func WithTransitionReason(reason string) TransitionOption {
	return func(opts *transitionOptions) {
		opts.metadata.Reason = reason
	}
}

// WithTransitionMetadata merges metadata into the transition context.
func WithTransitionMetadata(metadata map[string]any) TransitionOption {
	return func(opts *transitionOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// WithForceTransition bypasses validation rules (use sparingly).
func WithForceTransition() TransitionOption {
	return func(opts *transitionOptions) {
		opts.force = true
	}
}

// WithBeforeTransitionHook adds a hook executed before the status update.
func WithBeforeTransitionHook(h TransitionHook) TransitionOption {
	return func(opts *transitionOptions) {
		if h != nil {
			opts.beforeHooks = append(opts.beforeHooks, h)
		}
	}
}

// WithAfterTransitionHook adds a hook executed after the status update succeeds.
func WithAfterTransitionHook(h TransitionHook) TransitionOption {
	return func(opts *transitionOptions) {
		if h != nil {
			opts.afterHooks = append(opts.afterHooks, h)
		}
	}
}

// NewStateMachine returns the default implementation backed by the provided store.
//
// An application moves forward only: once accepted or rejected it is decided
// and stays that way.
func NewStateMachine(store StatusStore, opts ...StateMachineOption) StateMachine {
	sm := &stateMachine{
		store: store,
		transitions: map[model.ApplicationStatus]map[model.ApplicationStatus]struct{}{
			model.StatusApplied: {
				model.StatusReviewed: {},
				model.StatusAccepted: {},
				model.StatusRejected: {},
			},
			model.StatusReviewed: {
				model.StatusAccepted: {},
				model.StatusRejected: {},
			},
		},
		now: time.Now,
		hookErrorHandler: func(ctx context.Context, phase TransitionHookPhase, err error, tc TransitionContext) error {
			return defaultHookErrorHandler(ctx, phase, err, tc)
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

type stateMachine struct {
	store            StatusStore
	transitions      map[model.ApplicationStatus]map[model.ApplicationStatus]struct{}
	now              func() time.Time
	hookErrorHandler HookErrorHandler
}

type transitionOptions struct {
	metadata    TransitionMetadata
	force       bool
	beforeHooks []TransitionHook
	afterHooks  []TransitionHook
}

func (o *transitionOptions) cloneMetadata() TransitionMetadata {
	var cloned map[string]any
	if len(o.metadata.Metadata) > 0 {
		cloned = make(map[string]any, len(o.metadata.Metadata))
		for k, v := range o.metadata.Metadata {
			cloned[k] = v
		}
	}

	return TransitionMetadata{
		Reason:   o.metadata.Reason,
		Metadata: cloned,
	}
}

func (sm *stateMachine) Transition(ctx context.Context, actor ActorRef, application *model.JobApplication, target model.ApplicationStatus, opts ...TransitionOption) (*model.JobApplication, error) {
	if application == nil {
		return nil, ErrInvalidTransition.WithMetadata(map[string]any{
			"target": string(target),
			"reason": "application is nil",
		})
	}

	application.EnsureStatus()
	from := application.Status
	if target == "" {
		return nil, ErrInvalidTransition.WithMetadata(map[string]any{
			"reason": "target status is empty",
		})
	}

	if from == target {
		return application, nil
	}

	options := sm.buildTransitionOptions(opts...)

	if from.IsTerminal() && !options.force {
		return nil, ErrTerminalState.WithMetadata(map[string]any{
			"from": string(from),
			"to":   string(target),
		})
	}

	if !options.force && !sm.canTransition(from, target) {
		return nil, ErrInvalidTransition.WithMetadata(map[string]any{
			"from": string(from),
			"to":   string(target),
		})
	}

	ctxData := TransitionContext{
		Actor:       actor,
		Application: application,
		From:        from,
		To:          target,
		Meta:        options.cloneMetadata(),
	}

	if err := sm.runHooks(ctx, options.beforeHooks, ctxData, HookPhaseBefore); err != nil {
		return nil, err
	}

	updated, err := sm.store.UpdateStatus(ctx, application.ID, target)
	if err != nil {
		return nil, err
	}

	sm.applyUpdates(application, updated, target)

	if err := sm.runHooks(ctx, options.afterHooks, ctxData, HookPhaseAfter); err != nil {
		return nil, err
	}

	return application, nil
}

func (sm *stateMachine) CurrentStatus(application *model.JobApplication) model.ApplicationStatus {
	if application == nil {
		return ""
	}
	application.EnsureStatus()
	return application.Status
}

func (sm *stateMachine) runHooks(ctx context.Context, hooks []TransitionHook, data TransitionContext, phase TransitionHookPhase) error {
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, data); err != nil {
			if sm.hookErrorHandler == nil {
				return err
			}
			return sm.hookErrorHandler(ctx, phase, err, data)
		}
	}
	return nil
}

func (sm *stateMachine) canTransition(from, to model.ApplicationStatus) bool {
	if allowed, ok := sm.transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

func (sm *stateMachine) buildTransitionOptions(opts ...TransitionOption) *transitionOptions {
	options := &transitionOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

func (sm *stateMachine) applyUpdates(application, updated *model.JobApplication, target model.ApplicationStatus) {
	if updated != nil && updated.Status != "" {
		application.Status = updated.Status
		return
	}

	application.Status = target
}

func defaultHookErrorHandler(_ context.Context, phase TransitionHookPhase, err error, tc TransitionContext) error {
	panic(fmt.Sprintf(
		"jobboard: %s transition hook failed: %v\nApplicationID: %s from=%s to=%s reason=%s\nProvide application.WithStateMachineHookErrorHandler to customize error handling in production.",
		phase,
		err,
		tc.Application.ID,
		tc.From,
		tc.To,
		tc.Meta.Reason,
	))
}
