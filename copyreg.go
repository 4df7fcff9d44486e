package vkdgen

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// RegistryFile is the path of the registry inside a Vulkan-Headers checkout.
var RegistryFile = filepath.Join("registry", "vk.xml")

// RegistrySupportFiles are the python modules distributed with the registry. They are copied along
// with vk.xml when present, for tools that still use them.
var RegistrySupportFiles = []string{
	filepath.Join("registry", "reg.py"),
	filepath.Join("registry", "generator.py"),
}

// CopyRegistry copies vk.xml, and the RegistrySupportFiles found, from the Vulkan-Headers checkout
// headersDir to destDir. It returns the paths of the copied files.
func CopyRegistry(headersDir, destDir string) ([]string, error) {
	src := filepath.Join(headersDir, RegistryFile)
	if _, err := os.Stat(src); err != nil {
		return nil, errors.Wrapf(err, "registry %q could not be found, is %q a Vulkan-Headers checkout?", src, headersDir)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create registry directory %q", destDir)
	}
	var copied []string
	dst := filepath.Join(destDir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return nil, err
	}
	copied = append(copied, dst)
	for _, f := range RegistrySupportFiles {
		src = filepath.Join(headersDir, f)
		if _, err := os.Stat(src); err != nil {
			klog.V(1).Infof("skipping %q: %v", src, err)
			continue
		}
		dst = filepath.Join(destDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", dst)
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "failed to copy %q to %q", src, dst)
	}
	if err = out.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %q", dst)
	}
	klog.V(2).Infof("copied %q to %q", src, dst)
	return nil
}
