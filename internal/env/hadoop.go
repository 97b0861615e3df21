package env

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// hadoopConfiguration mirrors core-site.xml and the other *-site.xml files.
type hadoopConfiguration struct {
	XMLName    xml.Name `xml:"configuration"`
	Properties []struct {
		Name  string `xml:"name"`
		Value string `xml:"value"`
	} `xml:"property"`
}

// HadoopProperty reads one property from file (e.g. "core-site.xml") under
// confDir. A missing property is returned as "" with no error.
func HadoopProperty(confDir, file, name string) (string, error) {
	path := filepath.Join(confDir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var conf hadoopConfiguration
	if err := xml.Unmarshal(data, &conf); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, p := range conf.Properties {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return "", nil
}

// DefaultFS returns fs.defaultFS from $HADOOP_CONF_DIR/core-site.xml: the
// cluster hdfs dfs -mkdir talks to when ONLINE_DATA_PREFIX has no scheme.
func DefaultFS(confDir string) (string, error) {
	if confDir == "" {
		return "", fmt.Errorf("HADOOP_CONF_DIR is not set")
	}
	return HadoopProperty(confDir, "core-site.xml", "fs.defaultFS")
}
