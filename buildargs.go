package vkdgen

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ArgsFileName is the name of the file with the dmd arguments, written by WriteBuildArgs.
const ArgsFileName = "dmd_args.txt"

// LibName returns the file name of the static library for goos: "vkd.lib" on Windows, "libvkd.a" elsewhere.
func LibName(goos string) string {
	if goos == "windows" {
		return "vkd.lib"
	}
	return "libvkd.a"
}

// BuildArgs returns the dmd arguments to build files as a static library in libDir, with srcRoot as
// import path. One argument per line.
func BuildArgs(libDir, srcRoot string, files []string) string {
	var sb strings.Builder
	sb.WriteString("-lib\n")
	_, _ = fmt.Fprintf(&sb, "-I%s\n", srcRoot)
	_, _ = fmt.Fprintf(&sb, "-of%s\n", filepath.Join(libDir, LibName(runtime.GOOS)))
	for _, f := range files {
		sb.WriteString(f)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteBuildArgs writes BuildArgs to libDir/dmd_args.txt and returns its path.
// Use it with `dmd @dmd_args.txt`.
func WriteBuildArgs(libDir, srcRoot string, files []string) (string, error) {
	if err := os.MkdirAll(libDir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create library directory %q", libDir)
	}
	path := filepath.Join(libDir, ArgsFileName)
	if err := writeFile(path, []byte(BuildArgs(libDir, srcRoot, files))); err != nil {
		return "", err
	}
	return path, nil
}
