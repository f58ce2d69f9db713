// Package archive compresses generated artifacts into tar.gz files.
package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// CompressFiles writes the given files into a single tar.gz archive and
// reports the total uncompressed input size and the resulting archive size,
// both in bytes.
func CompressFiles(filenames []string, outFilename string) (uncompressed int64, compressed int64, err error) {
	out, err := os.Create(outFilename)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "cannot create archive %s", outFilename)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for _, filename := range filenames {
		n, err := appendFile(tw, filename)
		if err != nil {
			return 0, 0, err
		}
		uncompressed += n
	}

	if err := tw.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "tar finalize failed")
	}
	if err := gz.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "gzip finalize failed")
	}

	info, err := os.Stat(outFilename)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "cannot stat archive %s", outFilename)
	}
	return uncompressed, info.Size(), nil
}

func appendFile(tw *tar.Writer, filename string) (int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "cannot stat %s", filename)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, errors.Wrapf(err, "cannot build tar header for %s", filename)
	}
	hdr.Name = filepath.Base(filename)
	if err := tw.WriteHeader(hdr); err != nil {
		return 0, errors.Wrapf(err, "cannot write tar header for %s", filename)
	}
	n, err := io.Copy(tw, f)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot archive %s", filename)
	}
	return n, nil
}
