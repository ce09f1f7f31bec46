package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nagarniyantran/civicnav"
	"github.com/nagarniyantran/civicnav/internal/presentation/tui"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/observability"
	"github.com/nagarniyantran/civicnav/pkg/runner"
)

// PlayOptions configures an interactive session.
type PlayOptions struct {
	// SessionID persists the session in the stack store. Empty plays an ephemeral session.
	SessionID string
	// Fresh discards the stored session before starting.
	Fresh bool
	// Language of a newly created session.
	Language domain.Language
	// JSON switches to JSON lines in and out.
	JSON bool
	// Quiet suppresses the banner and status messages.
	Quiet bool
	// Renderer transforms the markdown frames in text mode. Nil prints plain markdown.
	Renderer runner.ContentRenderer

	In  io.Reader
	Out io.Writer
}

// Play runs the interactive loop until the input ends or ctx is done.
func Play(ctx context.Context, stack *Stack, opts PlayOptions, logger *slog.Logger) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	quiet := opts.Quiet || opts.JSON

	if !quiet {
		tui.PrintBanner(opts.Out)
	}

	state, err := hydrate(ctx, stack, opts, logger)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	controller := civicnav.New(
		civicnav.WithLogger(logger),
		civicnav.WithLifecycleHooks(observability.LoggingHooks(logger)),
		civicnav.WithInitialState(state),
		civicnav.WithSessionID(opts.SessionID),
	)

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		var handlerOpts []runner.TextHandlerOption
		if opts.Renderer != nil {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(opts.Renderer))
		}
		handler = runner.NewTextHandler(opts.In, opts.Out, handlerOpts...)
	}

	runnerOpts := []runner.Option{
		runner.WithInputHandler(handler),
		runner.WithLogger(logger),
	}
	if opts.SessionID != "" {
		runnerOpts = append(runnerOpts, runner.WithStore(stack.Store), runner.WithSessionID(opts.SessionID))
	}

	runErr := runner.New(runnerOpts...).Run(ctx, controller)

	if !quiet {
		final := controller.State()
		switch {
		case runErr == nil:
			printSystemMessage(opts.Out, "Finished at '%s'.", final.CurrentScreen)
		case isInterrupted(runErr):
			printSystemMessage(opts.Out, "Interrupted at '%s'.", final.CurrentScreen)
		}
	}
	return handleExecutionError(runErr)
}

// hydrate resumes the stored session or starts a new one.
func hydrate(ctx context.Context, stack *Stack, opts PlayOptions, logger *slog.Logger) (domain.AppState, error) {
	if opts.SessionID == "" {
		return domain.SetLanguage(domain.NewAppState(), opts.Language), nil
	}

	manager := stack.NewManager(logger)
	if opts.Fresh {
		if err := manager.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.AppState{}, err
		}
	}

	state, err := manager.Load(ctx, opts.SessionID)
	if err == nil {
		logger.Info("Session Resumed", "session_id", opts.SessionID, "screen", state.CurrentScreen)
		if !opts.Quiet && !opts.JSON {
			printSystemMessage(opts.Out, "Resuming at '%s'...", state.CurrentScreen)
		}
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.AppState{}, err
	}

	state, err = manager.Create(ctx, opts.SessionID, opts.Language)
	if err != nil {
		return domain.AppState{}, err
	}
	logger.Info("Session Created", "session_id", opts.SessionID)
	if !opts.Quiet && !opts.JSON {
		printSystemMessage(opts.Out, "Session '%s' active.", opts.SessionID)
	}
	return state, nil
}
