package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	wamvgen "github.com/goliatone/go-wamvgen"
	"github.com/goliatone/go-wamvgen/pkg/layout"
	"github.com/goliatone/go-wamvgen/pkg/orchestrator"
)

// Regenerates the orchestrator golden files from their layout fixtures.
func main() {
	var (
		dir       = flag.String("dir", "pkg/orchestrator/testdata", "directory holding the layout fixtures")
		thrusters = flag.String("thrusters", "thrusters.yaml", "thruster layout fixture")
		sensors   = flag.String("sensors", "sensors.yaml", "sensor layout fixture")
	)
	flag.Parse()

	orch := wamvgen.NewOrchestrator()

	for pipeline, name := range map[string]string{
		orchestrator.PipelineThruster: *thrusters,
		orchestrator.PipelineSensor:   *sensors,
	} {
		path := filepath.Join(*dir, name)
		src, err := layout.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
			os.Exit(1)
		}
		doc, err := orch.Render(pipeline, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to render %s: %v\n", path, err)
			os.Exit(1)
		}

		golden := filepath.Join(*dir, strings.TrimSuffix(name, filepath.Ext(name))+".golden"+layout.XacroExtension)
		if err := os.WriteFile(golden, []byte(doc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", golden, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote %s golden to %s\n", pipeline, golden)
	}
}
