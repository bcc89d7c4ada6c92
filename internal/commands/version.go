package commands

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var readBuildInfo = debug.ReadBuildInfo

// versionInfo is what the version command reports. Linker-provided values
// win over the ones Go embeds in the binary.
type versionInfo struct {
	Version  string
	Commit   string
	Modified bool
}

func (a *App) versionInfo() versionInfo {
	v := versionInfo{Version: "(devel)", Commit: a.GitSHA, Modified: a.GitDirty != ""}
	info, ok := readBuildInfo()
	if !ok {
		return v
	}
	if mv := info.Main.Version; mv != "" {
		v.Version = mv
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if v.Commit == "" {
				v.Commit = s.Value
			}
		case "vcs.modified":
			if a.GitSHA == "" && s.Value == "true" {
				v.Modified = true
			}
		}
	}
	return v
}

func (v versionInfo) write(w io.Writer) {
	fmt.Fprintf(w, "gh-search %s\n", v.Version)
	commit := v.Commit
	if commit == "" {
		commit = "unknown"
	}
	if v.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(w, "commit: %s\n", commit)
	fmt.Fprintf(w, "built with %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version, commit and Go toolchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.versionInfo().write(cmd.OutOrStdout())
			return nil
		},
	}
}
