package config

import (
	"os"
	"path/filepath"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// Paths holds the standard locations under a Fink installation ($FINK_HOME).
type Paths struct {
	FinkHome string // Installation root holding bin/ and conf/
}

// NewPaths creates a new Paths instance. An empty finkHome uses DefaultFinkHome.
func NewPaths(finkHome string) *Paths {
	if finkHome == "" {
		finkHome = DefaultFinkHome()
	}
	return &Paths{FinkHome: finkHome}
}

// DefaultFinkHome returns $FINK_HOME when set. Otherwise it looks for a conf/
// directory next to the executable, one level above it, then in the working
// directory and its parent. Returns "" when nothing is found.
func DefaultFinkHome() string {
	if home := os.Getenv("FINK_HOME"); home != "" {
		return home
	}

	var candidates []string
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		candidates = append(candidates, exeDir, filepath.Dir(exeDir))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd, filepath.Dir(cwd))
	}

	for _, dir := range candidates {
		if util.FileExists(filepath.Join(dir, "conf", "fink.conf")) {
			return dir
		}
	}
	return ""
}

// ConfDir returns $FINK_HOME/conf
func (p *Paths) ConfDir() string {
	return filepath.Join(p.FinkHome, "conf")
}

// DefaultConfFile returns $FINK_HOME/conf/fink.conf
func (p *Paths) DefaultConfFile() string {
	return filepath.Join(p.ConfDir(), "fink.conf")
}

// DistributionConfFile returns $FINK_HOME/conf/fink.conf.distribution, the
// overlay read before resolving the distribution services.
func (p *Paths) DistributionConfFile() string {
	return filepath.Join(p.ConfDir(), "fink.conf.distribution")
}

// BinDir returns $FINK_HOME/bin
func (p *Paths) BinDir() string {
	return filepath.Join(p.FinkHome, "bin")
}
