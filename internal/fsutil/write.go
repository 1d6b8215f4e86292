package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/messages"
)

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place.
func WriteFileAtomic(fsys afero.Fs, filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFmt, filename, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fsys.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(messages.FsutilWriteTempFmt, filename, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf(messages.FsutilWriteTempFmt, filename, err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf(messages.FsutilWriteTempFmt, filename, err)
	}
	if err := fsys.Rename(tmpName, filename); err != nil {
		cleanup()
		return fmt.Errorf(messages.FsutilRenameFmt, filename, err)
	}
	return nil
}

// CopyFile copies src to dst, replacing dst when it exists. The parent of dst must exist.
func CopyFile(fsys afero.Fs, src string, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf(messages.FsutilOpenFmt, src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf(messages.FsutilOpenFmt, src, err)
	}

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateFmt, dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.FsutilCopyFmt, src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.FsutilCopyFmt, src, dst, err)
	}
	return nil
}
