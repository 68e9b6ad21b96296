package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/itsatony/go-curly"
)

// versionCmd prints the module version
type versionCmd struct {
	Format string `default:"text" enum:"text,json" help:"Output format (${enum})" short:"F"`
}

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Drivers   []string `json:"storage_drivers"`
}

// Run prints the version in the selected format
func (c *versionCmd) Run(a *app) error {
	if c.Format == OutputFormatJSON {
		out := versionOutput{
			Version:   curly.Version,
			GoVersion: runtime.Version(),
			Drivers:   curly.ListStoreDrivers(),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil
	}
	fmt.Fprintf(a.stdout, VersionTextFmt+FmtNewline, CLIName, curly.Version, runtime.Version())
	return nil
}
