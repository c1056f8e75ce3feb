// Package fileutil provides the file system helpers behind the urlkit cache
// and config layers.
//
// AtomicWriteJSON and AtomicWriteFile never leave a partial file behind:
// data is written to a unique temp file in the target directory, synced,
// and renamed into place with a few short retries. Temp files are removed
// on every failure path.
//
//	if err := fileutil.EnsureDir(dir); err != nil {
//		return err
//	}
//	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, "report.json"), report); err != nil {
//		return err
//	}
//
// ReadJSON treats a missing file as "nothing to load" rather than an error.
//
// Directories are created with DirPermission (0750) and files with
// FilePermission (0644).
package fileutil
