package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const coreSite = `<?xml version="1.0"?>
<configuration>
  <property>
    <name>hadoop.tmp.dir</name>
    <value>/tmp/hadoop</value>
  </property>
  <property>
    <name>fs.defaultFS</name>
    <value>hdfs://namenode:8020</value>
  </property>
</configuration>
`

func writeCoreSite(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "core-site.xml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDefaultFS(t *testing.T) {
	dir := writeCoreSite(t, coreSite)

	got, err := DefaultFS(dir)
	if err != nil {
		t.Fatalf("DefaultFS: %v", err)
	}
	if got != "hdfs://namenode:8020" {
		t.Errorf("DefaultFS = %q", got)
	}
}

func TestHadoopProperty_Missing(t *testing.T) {
	dir := writeCoreSite(t, coreSite)

	got, err := HadoopProperty(dir, "core-site.xml", "dfs.replication")
	if err != nil || got != "" {
		t.Errorf("HadoopProperty = %q, %v; want empty, nil", got, err)
	}
}

func TestDefaultFS_Errors(t *testing.T) {
	if _, err := DefaultFS(""); err == nil || !strings.Contains(err.Error(), "HADOOP_CONF_DIR") {
		t.Errorf("unset conf dir: err = %v", err)
	}
	if _, err := DefaultFS(t.TempDir()); err == nil {
		t.Error("missing core-site.xml: expected error")
	}
	if _, err := DefaultFS(writeCoreSite(t, "<configuration><property>")); err == nil {
		t.Error("malformed core-site.xml: expected error")
	}
}

func TestCheckHadoopConf(t *testing.T) {
	dir := writeCoreSite(t, coreSite)

	local := &DoctorResult{FSKind: "local"}
	local.CheckHadoopConf(dir)
	if local.DefaultFS != "" || local.HadoopErr != nil {
		t.Errorf("local backend should skip the hadoop check, got %+v", local)
	}

	hdfs := &DoctorResult{FSKind: "hdfs"}
	hdfs.CheckHadoopConf(dir)
	if hdfs.DefaultFS != "hdfs://namenode:8020" || hdfs.HasFailures {
		t.Errorf("hdfs check = %+v", hdfs)
	}

	missing := &DoctorResult{FSKind: "hdfs"}
	missing.CheckHadoopConf("")
	if missing.HadoopErr == nil || missing.HasFailures {
		t.Errorf("unset HADOOP_CONF_DIR should warn only, got %+v", missing)
	}
}
