package registry

import "sort"

// DefaultTNSFolder is passed to index_archival when TNS_FOLDER is unset. The
// folder is only read when building the TNS index table.
const DefaultTNSFolder = "/tmp/fink/tns_placeholder"

// Common bindings shared by most services.
var (
	bindPrefix    = Binding{Arg: "-online_data_prefix", Key: "ONLINE_DATA_PREFIX", Required: true}
	bindAggPrefix = Binding{Arg: "-agg_data_prefix", Key: "AGG_DATA_PREFIX", Required: true}
	bindTrigger   = Binding{Arg: "-tinterval", Key: "FINK_TRIGGER_UPDATE", Required: true}
	bindNight     = Binding{Arg: "-night", Key: "NIGHT", Required: true}
	bindLogLevel  = Binding{Arg: "-log_level", Key: "LOG_LEVEL", Required: true}
	bindExitAfter = Binding{Arg: "-exit_after", Key: "EXIT_AFTER"}
	bindServers   = Binding{Arg: "-servers", Key: "KAFKA_IPPORT", Required: true}
	bindTopic     = Binding{Arg: "-topic", Key: "KAFKA_TOPIC", Required: true}
	bindOffset    = Binding{Arg: "-startingoffsets_stream", Key: "KAFKA_STARTING_OFFSET", Required: true}
	bindScienceDB = Binding{Arg: "-science_db_name", Key: "SCIENCE_DB_NAME", Required: true}
	bindDistServ  = Binding{Arg: "-distribution_servers", Key: "DISTRIBUTION_SERVERS", Required: true}
	bindDistSch   = Binding{Arg: "-distribution_schema", Key: "DISTRIBUTION_SCHEMA", Required: true}
	bindSubstream = Binding{Arg: "-substream_prefix", Key: "SUBSTREAM_PREFIX"}
)

var catalog = []ServiceSpec{
	{
		Name:        "checkstream",
		Description: "Monitor the incoming alert stream",
		Runtime:     RuntimeSpark,
		Script:      "bin/checkstream.py",
		Bindings:    []Binding{bindServers, bindTopic, bindOffset, bindTrigger, bindLogLevel, bindExitAfter},
	},
	{
		Name:        "stream2raw",
		Description: "Ingest alerts from the bus into the raw database",
		Runtime:     RuntimeSpark,
		Script:      "bin/stream2raw.py",
		Bindings: []Binding{
			{Arg: "-producer", Key: "PRODUCER", Default: "ztf"},
			bindServers, bindTopic,
			{Arg: "-schema", Key: "FINK_ALERT_SCHEMA", Required: true},
			bindOffset, bindPrefix, bindTrigger, bindNight, bindLogLevel, bindExitAfter,
		},
		AuthKey: "KAFKA_CONSUMER_JAAS",
	},
	{
		Name:        "raw2science",
		Description: "Apply science modules to the raw database",
		Runtime:     RuntimeSpark,
		Script:      "bin/raw2science.py",
		Bindings:    []Binding{bindPrefix, bindTrigger, bindNight, bindLogLevel, bindExitAfter},
		Connector:   "hbase",
	},
	{
		Name:           "distribution",
		Description:    "Redistribute science alerts as substreams",
		Runtime:        RuntimeSpark,
		Script:         "bin/distribute.py",
		ElasticcScript: "bin/distribute_elasticc.py",
		Bindings: []Binding{
			bindPrefix, bindDistServ, bindDistSch, bindSubstream,
			bindTrigger, bindNight, bindLogLevel, bindExitAfter,
		},
		NeedsOverlay: true,
		AuthKey:      "KAFKA_PRODUCER_JAAS",
	},
	{
		Name:        "merge",
		Description: "Merge the data of one night into the aggregated database",
		Runtime:     RuntimeSpark,
		Script:      "bin/merge_ztf_night.py",
		Bindings:    []Binding{bindPrefix, bindAggPrefix, bindNight, bindLogLevel},
	},
	{
		Name:        "stats",
		Description: "Compute statistics for one night",
		Runtime:     RuntimeSpark,
		Script:      "bin/daily_stats.py",
		Bindings:    []Binding{bindAggPrefix, bindScienceDB, bindNight, bindLogLevel},
	},
	{
		Name:        "raw2science_reprocess",
		Description: "Reprocess one night of raw data through the science modules",
		Runtime:     RuntimeSpark,
		Script:      "bin/raw2science_reprocess.py",
		Bindings:    []Binding{bindAggPrefix, bindNight, bindLogLevel},
	},
	{
		Name:        "science_archival",
		Description: "Push one night of science data to HBase",
		Runtime:     RuntimeSpark,
		Script:      "bin/science_archival.py",
		Bindings:    []Binding{bindAggPrefix, bindScienceDB, bindNight, bindLogLevel},
	},
	{
		Name:        "index_archival",
		Description: "Build one HBase index table for one night",
		Runtime:     RuntimeSpark,
		Script:      "bin/index_archival.py",
		Bindings: []Binding{
			bindAggPrefix, bindScienceDB,
			{Arg: "-index_table", Key: "INDEXTABLE", Required: true},
			{Arg: "-tns_folder", Key: "TNS_FOLDER", Default: DefaultTNSFolder},
			bindNight, bindLogLevel,
		},
	},
	{
		Name:        "object_archival",
		Description: "Archive candidate objects of one night",
		Runtime:     RuntimeSpark,
		Script:      "bin/object_archival.py",
		Bindings:    []Binding{bindAggPrefix, bindScienceDB, bindNight, bindLogLevel},
	},
	{
		Name:        "generic_archival",
		Description: "Archive one night with a generic HBase catalog",
		Runtime:     RuntimeSpark,
		Script:      "bin/generic_archival.py",
		Bindings: []Binding{
			bindAggPrefix, bindScienceDB,
			{Arg: "-index_table", Key: "INDEXTABLE"},
			bindNight, bindLogLevel,
		},
	},
	{
		Name:        "tns",
		Description: "Push early classifications of one night to TNS",
		Runtime:     RuntimeSpark,
		Script:      "bin/push_to_tns.py",
		Bindings: []Binding{
			bindAggPrefix,
			{Arg: "-tns_folder", Key: "TNS_FOLDER", Required: true},
			{Arg: "-tns_sandbox", Key: "TNS_SANDBOX", Switch: true},
			bindNight, bindLogLevel,
		},
	},
	{
		Name:        "check_archival",
		Description: "Check that archived data of one night is reachable",
		Runtime:     RuntimeSpark,
		Script:      "bin/check_archival.py",
		Bindings:    []Binding{bindScienceDB, bindNight, bindLogLevel},
	},
	{
		Name:         "distribution_test",
		Description:  "Consume the distributed substreams to check the distribution",
		Runtime:      RuntimePython,
		Script:       "bin/distribution_test.py",
		Bindings:     []Binding{bindDistServ, bindDistSch, bindSubstream, bindLogLevel, bindExitAfter},
		NeedsOverlay: true,
	},
	{
		Name:        "save_schema",
		Description: "Export the schema of one night of alerts",
		Runtime:     RuntimeSpark,
		Script:      "bin/save_schema_from_stream.py",
		Bindings:    []Binding{bindPrefix, bindNight, bindLogLevel},
	},
}

// Registry is a read-only index of service specs by name.
type Registry struct {
	specs map[string]ServiceSpec
	names []string
}

// New builds a registry over specs. Names must be unique.
func New(specs []ServiceSpec) *Registry {
	r := &Registry{specs: make(map[string]ServiceSpec, len(specs))}
	for _, s := range specs {
		r.specs[s.Name] = s
		r.names = append(r.names, s.Name)
	}
	sort.Strings(r.names)
	return r
}

// Default returns the registry of every service the pipeline ships.
func Default() *Registry {
	return New(catalog)
}

// Lookup returns the spec for name. Matching is exact and case-sensitive.
func (r *Registry) Lookup(name string) (ServiceSpec, error) {
	s, ok := r.specs[name]
	if !ok {
		return ServiceSpec{}, &ServiceNotFoundError{Name: name, Known: r.Names()}
	}
	return s, nil
}

// Names returns the sorted service names.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// All returns every spec, sorted by name.
func (r *Registry) All() []ServiceSpec {
	specs := make([]ServiceSpec, 0, len(r.names))
	for _, n := range r.names {
		specs = append(specs, r.specs[n])
	}
	return specs
}

// Connectors returns the specs holding a connector marker, sorted by name.
func (r *Registry) Connectors() []ServiceSpec {
	var specs []ServiceSpec
	for _, s := range r.All() {
		if s.Connector != "" {
			specs = append(specs, s)
		}
	}
	return specs
}
