// vkdgen generates D bindings for Vulkan from the Khronos registry (vk.xml).
//
// Typical use, with a github.com/KhronosGroup/Vulkan-Headers checkout pointed by VULKAN_HEADERS:
//
//	vkdgen copy-registry
//	vkdgen generate --package vkd --dest ./d
//	dmd @d/dmd_args.txt
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomlx/vkdgen"
	"github.com/gomlx/vkdgen/guards"
	"github.com/gomlx/vkdgen/registry"
	"github.com/janpfeifer/gonb/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const (
	registryEnvVar = "VKDGEN_REGISTRY"
	headersEnvVar  = "VULKAN_HEADERS"
)

func main() {
	klog.InitFlags(nil)
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		klog.Fatalf("vkdgen failed: %+v", err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vkdgen",
		Short: "Vulkan D bindings generator",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
	}
	// klog flags (-v, -logtostderr, ...).
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.AddCommand(newGenerateCmd(), newCopyRegistryCmd())
	return rootCmd
}

func defaultRegistry() string {
	if reg := os.Getenv(registryEnvVar); reg != "" {
		return reg
	}
	return filepath.Join("registry", "vk.xml")
}

func newGenerateCmd() *cobra.Command {
	opts := vkdgen.DefaultOptions()
	var (
		guardsPath string
		extensions []string
		stats      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the D modules",
		Long: "Generate the D modules vk.d and loader.d under <dest>/<package path>, and the dmd arguments " +
			"file <dest>/dmd_args.txt to build them as a static library.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dest = common.ReplaceTildeInDir(opts.Dest)
			opts.Registry = common.ReplaceTildeInDir(opts.Registry)
			if opts.LibDir != "" {
				opts.LibDir = common.ReplaceTildeInDir(opts.LibDir)
			}
			if guardsPath != "" {
				table, err := guards.LoadFile(common.ReplaceTildeInDir(guardsPath))
				if err != nil {
					return err
				}
				opts.Guards = table
			}
			opts.Select.Extensions = splitList(extensions)
			res, err := vkdgen.Generate(opts)
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				klog.Infof("generated %s", f)
			}
			klog.Infof("build with: dmd @%s", res.ArgsFile)
			if stats {
				printStats(os.Stdout, res.Model)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Package, "package", vkdgen.DefaultPackage, "D package of the generated modules")
	cmd.Flags().StringVar(&opts.Dest, "dest", "d", "Destination folder for the generated files")
	cmd.Flags().StringVar(&opts.Registry, "registry", defaultRegistry(),
		"Path to vk.xml. Defaults to $"+registryEnvVar+" if set")
	cmd.Flags().StringVar(&guardsPath, "guards", "",
		"YAML file with the feature guards table. Defaults to the built-in D guards (win32, xcb and wayland)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", registry.PlatformExtensions, "Extensions to generate")
	cmd.Flags().StringVar(&opts.Select.Versions, "versions", opts.Select.Versions,
		"Regular expression matching the core versions to generate, e.g. \"VK_VERSION_1_[01]\"")
	cmd.Flags().StringVar(&opts.LibDir, "libdir", "",
		"Where to write dmd_args.txt and the library it builds. Defaults to --dest")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print the number of entities generated per feature")
	return cmd
}

func newCopyRegistryCmd() *cobra.Command {
	var headers, dest string
	cmd := &cobra.Command{
		Use:   "copy-registry",
		Short: "Copy vk.xml from a Vulkan-Headers checkout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if headers == "" {
				headers = os.Getenv(headersEnvVar)
			}
			if headers == "" {
				return errors.Errorf("no Vulkan-Headers checkout given: use --headers or set $%s", headersEnvVar)
			}
			copied, err := vkdgen.CopyRegistry(common.ReplaceTildeInDir(headers), common.ReplaceTildeInDir(dest))
			if err != nil {
				return err
			}
			for _, f := range copied {
				klog.Infof("copied %s", f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&headers, "headers", "",
		"Directory of the github.com/KhronosGroup/Vulkan-Headers checkout. Defaults to $"+headersEnvVar)
	cmd.Flags().StringVar(&dest, "dest", "registry", "Destination folder for the registry files")
	return cmd
}

// splitList trims the items and drops the empty ones.
func splitList(items []string) []string {
	var list []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
