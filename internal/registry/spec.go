// Package registry holds the static catalog of pipeline services and turns a
// service name plus configuration into a launch command.
package registry

import "path"

// Runtime selects the program that executes a service script.
type Runtime string

const (
	RuntimeSpark  Runtime = "spark"
	RuntimePython Runtime = "python"
)

// Executable returns the program name for the runtime, looked up on PATH.
func (r Runtime) Executable() string {
	switch r {
	case RuntimePython:
		return "python3"
	default:
		return "spark-submit"
	}
}

// Binding maps one job argument to a configuration key.
type Binding struct {
	Arg      string // job argument, e.g. "-night"
	Key      string // configuration key, e.g. "NIGHT"
	Required bool
	Default  string // used when Key is unset
	Switch   bool   // emit Arg alone when the value is true
}

// ServiceSpec describes one launchable service. Specs are defined once in the
// catalog and never mutated.
type ServiceSpec struct {
	Name           string
	Description    string
	Runtime        Runtime
	Script         string // relative to FINK_HOME
	ElasticcScript string // alternate script selected by --elasticc
	Bindings       []Binding
	Connector      string // process-table marker of a long-lived connection torn down on stop
	NeedsOverlay   bool   // merge the distribution overlay before binding
	AuthKey        string // configuration key naming a JAAS file for the authenticated bus
}

// ScriptName returns the base name of the service script, as it appears on the
// command line of the running job.
func (s ServiceSpec) ScriptName() string {
	return path.Base(s.Script)
}

// HasElasticcVariant reports whether --elasticc changes the executable.
func (s ServiceSpec) HasElasticcVariant() bool {
	return s.ElasticcScript != ""
}
