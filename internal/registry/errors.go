package registry

import (
	"fmt"
	"strings"
)

// ServiceNotFoundError is returned for a name outside the catalog.
type ServiceNotFoundError struct {
	Name  string
	Known []string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("unknown service: %s (known services: %s)", e.Name, strings.Join(e.Known, ", "))
}

// MissingArgumentError is returned when a required binding has no value.
type MissingArgumentError struct {
	Service string
	Key     string
	Arg     string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("service %s requires %s (%s): set it in the configuration file or on the command line", e.Service, e.Key, e.Arg)
}
