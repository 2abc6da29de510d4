package containerizer

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"racy/internal/config"
	"racy/pkg/logging"
)

// writeBuildContext streams dir as a tar archive to w, followed by the generated files.
// Top-level entries named in gen.exclude and the project's env files are skipped.
func writeBuildContext(w io.Writer, dir string, gen *generatedContext) error {
	tw := tar.NewWriter(w)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if gen.exclude[rel] {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.IsDir() && config.IsEnvFile(rel) {
			logging.Debug(dockerSubsystem, "Leaving %s out of the build context", rel)
			return nil
		}
		return addEntry(tw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", dir, err)
	}

	names := make([]string, 0, len(gen.files))
	for name := range gen.files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := gen.files[name]
		hdr := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(content)),
			ModTime: time.Now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := tw.Write(content); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
	}

	return tw.Close()
}

func addEntry(tw *tar.Writer, path, name string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&os.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
