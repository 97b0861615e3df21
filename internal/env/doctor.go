package env

import (
	"fmt"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// DoctorCheck represents a single dependency check
type DoctorCheck struct {
	Command  string // Command name
	Required bool   // true if required, false if optional
	Found    bool   // true if command is available
}

// DoctorResult holds the results of all checks
type DoctorResult struct {
	FSKind      string        // storage backend the checks were run for
	Checks      []DoctorCheck // All checks performed
	JavaMajor   int           // Java major version (0 if not found)
	DefaultFS   string        // fs.defaultFS of HADOOP_CONF_DIR, hdfs only
	HadoopErr   error         // why DefaultFS could not be read
	HasFailures bool          // true if any required check failed
}

// recommendedJava lists the Java releases the Spark jobs are run with.
var recommendedJava = map[int]bool{11: true, 17: true}

// RunDoctor checks the commands the services need. hdfs is only required
// when the storage backend is hdfs. A nil detector searches PATH.
func RunDoctor(fsKind string, tools *ToolDetector) *DoctorResult {
	if tools == nil {
		tools = NewToolDetector()
	}

	required := []string{"spark-submit", "python3", "java"}
	optional := []string{"jps"}
	if fsKind == "hdfs" {
		required = append(required, "hdfs")
	} else {
		optional = append(optional, "hdfs")
	}

	result := &DoctorResult{FSKind: fsKind}

	for _, cmd := range required {
		found := tools.IsInstalled(cmd)
		result.Checks = append(result.Checks, DoctorCheck{Command: cmd, Required: true, Found: found})
		if !found {
			result.HasFailures = true
		}
	}

	if tools.IsInstalled("java") {
		result.JavaMajor = NewJavaDetector().MajorVersion()
	}

	for _, cmd := range optional {
		result.Checks = append(result.Checks, DoctorCheck{Command: cmd, Found: tools.IsInstalled(cmd)})
	}

	return result
}

// CheckHadoopConf records the cluster hdfs commands will reach. It only runs
// for FS_KIND=hdfs and never fails the doctor: hdfs may be configured through
// its own defaults.
func (dr *DoctorResult) CheckHadoopConf(confDir string) {
	if dr.FSKind != "hdfs" {
		return
	}
	dr.DefaultFS, dr.HadoopErr = DefaultFS(confDir)
}

// Print prints the doctor check results
func (dr *DoctorResult) Print() {
	util.Log("Doctor (FS_KIND=%s):", dr.FSKind)

	for _, check := range dr.Checks {
		status := "OK  "
		msg := check.Command

		if !check.Found {
			if check.Required {
				status = "FAIL"
				msg = fmt.Sprintf("%s (required)", check.Command)
			} else {
				status = "WARN"
				msg = fmt.Sprintf("%s (optional)", check.Command)
			}
		}

		util.Println("  %s %s", status, msg)
	}

	switch {
	case dr.HadoopErr != nil:
		util.Println("  WARN hadoop configuration: %v", dr.HadoopErr)
	case dr.DefaultFS != "":
		util.Println("  OK   fs.defaultFS %s", dr.DefaultFS)
	}

	if dr.JavaMajor != 0 && !recommendedJava[dr.JavaMajor] {
		util.Println("  WARN java major version is %d (recommended: 11 or 17)", dr.JavaMajor)
		util.Println("       Fix: install a supported JDK and set JAVA_HOME")
	}
}

// ExitCode returns the appropriate exit code
// 0 if all required checks passed, 1 if any failed
func (dr *DoctorResult) ExitCode() int {
	if dr.HasFailures {
		return 1
	}
	return 0
}
