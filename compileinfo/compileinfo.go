package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

// fallbackVersion is reported when the binary carries no VCS stamp, e.g. under
// go test or go run.
const fallbackVersion = "devel"

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Version is the short identifier written into the provenance header of
// merged VCFs: the abbreviated commit, with a +dirty suffix when the tree was
// modified.
func (c CompileInfo) Version() string {
	if c.Commit == "" {
		return fallbackVersion
	}

	v := c.Commit
	if len(v) > 12 {
		v = v[:12]
	}
	if c.Modified {
		v += "+dirty"
	}
	return v
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}
	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
