package workloads

import (
	"fmt"
	"path/filepath"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// BundleScript uses esbuild to bundle a JS workload entry point with all
// its imports into a single self-contained script. Bundled workloads must
// attach their entry function to globalThis themselves, e.g.
// `globalThis.benchmark = benchmark`, since the IIFE wrapper hides
// top-level declarations.
func BundleScript(entryPoint string) (string, error) {
	opts := esbuild.BuildOptions{
		EntryPoints:   []string{entryPoint},
		AbsWorkingDir: filepath.Dir(entryPoint),
		Bundle:        true,
		Format:        esbuild.FormatIIFE,
		Write:         false,
		Platform:      esbuild.PlatformNeutral,
		Target:        esbuild.ES2015,
		TreeShaking:   esbuild.TreeShakingFalse,
	}

	result := esbuild.Build(opts)
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Text)
		}
		return "", fmt.Errorf("esbuild: %s", strings.Join(msgs, "; "))
	}
	if len(result.OutputFiles) == 0 {
		return "", fmt.Errorf("esbuild produced no output for %s", entryPoint)
	}
	return string(result.OutputFiles[0].Contents), nil
}

// needsBundling reports whether the source uses ES module imports and
// therefore has to go through esbuild before a script engine can eval it.
func needsBundling(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import{") {
			return true
		}
		if strings.HasPrefix(trimmed, "export ") && strings.Contains(trimmed, " from ") {
			return true
		}
	}
	return false
}
