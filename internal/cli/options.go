package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/astrolabsoftware/fink-cli/internal/registry"
)

// Invocation is the parsed form of one fink command line.
type Invocation struct {
	Verb       string
	Service    string
	ConfPath   string
	Simulator  bool
	Night      string
	Topic      string
	IndexTable string
	TNSFolder  string
	TNSSandbox bool
	Elasticc   bool
	ExitAfter  int
	Help       bool
	DryRun     bool

	exitAfterSet bool
}

// option describes one modifier accepted after the verb.
type option struct {
	name   string
	short  string
	valued bool
}

var options = []option{
	{name: "conf", short: "c", valued: true},
	{name: "help", short: "h"},
	{name: "simulator"},
	{name: "night", valued: true},
	{name: "topic", valued: true},
	{name: "index_table", valued: true},
	{name: "tns_folder", valued: true},
	{name: "tns_sandbox"},
	{name: "elasticc"},
	{name: "exit_after", valued: true},
	{name: "dry-run"},
}

func lookupOption(token string) (option, bool) {
	for _, o := range options {
		if token == "--"+o.name || (o.short != "" && token == "-"+o.short) {
			return o, true
		}
	}
	return option{}, false
}

// parseOptions turns the tokens following verb into an Invocation. It has no
// side effects. show ignores everything after it; start and stop need a
// service name first; init skips a leading service name.
func parseOptions(verb string, args []string) (*Invocation, error) {
	inv := &Invocation{Verb: verb}
	if verb == "show" {
		return inv, nil
	}

	rest := args
	switch verb {
	case "start", "stop":
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return nil, usageErrorf("missing service name")
		}
		inv.Service = rest[0]
		rest = rest[1:]
	case "init":
		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			rest = rest[1:]
		}
	}

	if err := checkTokens(rest); err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet(verb, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&inv.ConfPath, "conf", "c", "", "configuration file")
	fs.BoolVarP(&inv.Help, "help", "h", false, "pass -h to the service")
	fs.BoolVar(&inv.Simulator, "simulator", false, "read from the simulator stream")
	fs.StringVar(&inv.Night, "night", "", "night to process (YYYYMMDD)")
	fs.StringVar(&inv.Topic, "topic", "", "topic to read")
	fs.StringVar(&inv.IndexTable, "index_table", "", "HBase index table")
	fs.StringVar(&inv.TNSFolder, "tns_folder", "", "TNS folder")
	fs.BoolVar(&inv.TNSSandbox, "tns_sandbox", false, "push to the TNS sandbox")
	fs.BoolVar(&inv.Elasticc, "elasticc", false, "use the ELAsTiCC schema")
	fs.IntVar(&inv.ExitAfter, "exit_after", 0, "stop the stream after N seconds")
	fs.BoolVar(&inv.DryRun, "dry-run", false, "print the launch command instead of running it")

	if err := fs.Parse(rest); err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf("unknown option/argument: %s", fs.Arg(0))
	}
	inv.exitAfterSet = fs.Changed("exit_after")
	return inv, nil
}

// checkTokens rejects unknown tokens and valued options without a value
// before pflag sees them: pflag would silently take the next flag as the value.
func checkTokens(tokens []string) error {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "-") || tok == "-" || tok == "--" {
			return usageErrorf("unknown option/argument: %s", tok)
		}

		name, value, hasValue := strings.Cut(tok, "=")
		opt, ok := lookupOption(name)
		if !ok {
			return usageErrorf("unknown option/argument: %s", tok)
		}
		if !opt.valued {
			continue
		}
		if hasValue {
			if value == "" {
				return usageErrorf("missing %s value", opt.name)
			}
			continue
		}
		if i+1 >= len(tokens) || strings.HasPrefix(tokens[i+1], "-") {
			return usageErrorf("missing %s value", opt.name)
		}
		i++
	}
	return nil
}

// Overrides returns the configuration keys set on the command line.
func (inv *Invocation) Overrides() map[string]string {
	o := map[string]string{
		"NIGHT":       inv.Night,
		"KAFKA_TOPIC": inv.Topic,
		"INDEXTABLE":  inv.IndexTable,
		"TNS_FOLDER":  inv.TNSFolder,
	}
	if inv.TNSSandbox {
		o["TNS_SANDBOX"] = "true"
	}
	if inv.exitAfterSet {
		o["EXIT_AFTER"] = strconv.Itoa(inv.ExitAfter)
	}
	for k, v := range o {
		if v == "" {
			delete(o, k)
		}
	}
	return o
}

// Request returns the registry request for this invocation.
func (inv *Invocation) Request() registry.Request {
	return registry.Request{
		Overrides: inv.Overrides(),
		Simulator: inv.Simulator,
		Elasticc:  inv.Elasticc,
		Help:      inv.Help,
	}
}
