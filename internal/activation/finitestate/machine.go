// Package finitestate tracks the progress of one activation through its
// pipeline. Transitions only move forward:
//
//	Start → SettingsResolved → LoggerReady → ScriptPathChecked → URIDecoded
//	  → Staged → Executed → Completed
//
// A staging or execution failure moves URIDecoded or Staged straight to
// Completed, so every run that got a logger ends in Completed.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// State constants for the activation pipeline
const (
	StateStart             = "Start"
	StateSettingsResolved  = "SettingsResolved"
	StateLoggerReady       = "LoggerReady"
	StateScriptPathChecked = "ScriptPathChecked"
	StateURIDecoded        = "URIDecoded"
	StateStaged            = "Staged"
	StateExecuted          = "Executed"
	StateCompleted         = "Completed"
)

// PipelineTransitions lists the allowed moves from each state.
var PipelineTransitions = map[string][]string{
	StateStart:             {StateSettingsResolved},
	StateSettingsResolved:  {StateLoggerReady},
	StateLoggerReady:       {StateScriptPathChecked},
	StateScriptPathChecked: {StateURIDecoded},
	StateURIDecoded:        {StateStaged, StateCompleted},
	StateStaged:            {StateExecuted, StateCompleted},
	StateExecuted:          {StateCompleted},
	StateCompleted:         {},
}

// Machine is the subset of the state machine the pipeline relies on.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// GetState returns the current state of the state machine.
	GetState() string
}

// New creates a machine in StateStart.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StateStart, PipelineTransitions)
	if err != nil {
		return nil, err
	}
	return machine, nil
}
