// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides the version and build information of the minefeed
// binary.
package version

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Info is the version and build information of the current binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`   // BuildInfo's vcs.revision
	BuiltAt string `json:"built_at"` // BuildInfo's vcs.date
	Go      string `json:"go"`       // runtime.Version()
	OS      string `json:"os"`       // runtime.GOOS
	Arch    string `json:"arch"`     // runtime.GOARCH
}

// String implements the fmt.Stringer interface.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(CmdName() + " " + i.Version + " (" + i.Go + ", " + i.OS + "/" + i.Arch + ")\n")
	if i.Commit != "" && i.BuiltAt != "" {
		sb.WriteString("commit " + i.Commit + "\n")
		sb.WriteString("built at " + i.BuiltAt + "\n")
	}
	return sb.String()
}

// UserAgent returns the User-Agent string sent with every outgoing HTTP
// request.
func (i Info) UserAgent() string {
	ver := i.Version
	if ver == "devel" && i.Commit != "" {
		ver = i.Commit
	}
	return CmdName() + "/" + ver
}

var loadOnce = sync.OnceValues(func() (string, Info) {
	exe, err := os.Executable()
	name := "minefeed"
	if err == nil {
		name = strings.TrimSuffix(filepath.Base(exe), ".exe")
	}
	return name, loadInfo(debug.ReadBuildInfo)
})

// CmdName returns the base name of the current binary.
func CmdName() string {
	name, _ := loadOnce()
	return name
}

// Version returns the version and build information of the current binary.
func Version() Info {
	_, info := loadOnce()
	return info
}

func loadInfo(read func() (*debug.BuildInfo, bool)) Info {
	i := Info{
		Version: "devel",
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	bi, ok := read()
	if !ok {
		return i
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 7 {
				i.Commit = setting.Value[:7]
			} else {
				i.Commit = setting.Value
			}
		case "vcs.time":
			i.BuiltAt = setting.Value
		}
	}
	return i
}

// UserAgent is a shorthand for Version().UserAgent().
func UserAgent() string { return Version().UserAgent() }
