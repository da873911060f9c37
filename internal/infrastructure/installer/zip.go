package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractZip unpacks the archive at src into dest. When every entry lives
// under one top-level directory, that directory is stripped.
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = r.Close() }()

	prefix := commonTopLevelDir(r.File)

	for _, f := range r.File {
		name := strings.TrimPrefix(filepath.ToSlash(f.Name), prefix)
		if name == "" || name == "/" {
			continue
		}

		target, err := safeJoin(dest, name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			return fmt.Errorf("archive entry %q is a symlink", f.Name)
		default:
			if err := extractFile(f, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	//nolint:gosec // G304: target was checked by safeJoin
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	//nolint:gosec // G110: archive sizes are bounded by what the catalog links to
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// safeJoin joins name onto dest and rejects results outside dest.
func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the plugin directory", name)
	}
	return target, nil
}

// contentDirs are the folders the game reads from a plug-in root. An archive
// whose only top-level entry is one of them is already laid out as a plug-in.
var contentDirs = map[string]bool{
	"data/":    true,
	"images/":  true,
	"sounds/":  true,
	"shaders/": true,
}

// commonTopLevelDir returns "dir/" if all entries are below a single
// top-level wrapper directory, else "". Plug-in content folders are never
// treated as wrappers.
func commonTopLevelDir(files []*zip.File) string {
	var top string
	for _, f := range files {
		name := filepath.ToSlash(f.Name)
		i := strings.Index(name, "/")
		if i <= 0 {
			// a file at the top level
			return ""
		}
		dir := name[:i+1]
		if top == "" {
			top = dir
		} else if dir != top {
			return ""
		}
	}
	if contentDirs[strings.ToLower(top)] {
		return ""
	}
	return top
}
