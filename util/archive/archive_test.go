package archive

import (
	"archive/tar"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func TestCompressFiles(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("SETUP_WRITE,FT.ADD,inventory,doc,1.0\n", 1000)
	input := filepath.Join(dir, "cmds.SETUP.csv")
	require.NoError(t, ioutil.WriteFile(input, []byte(content), 0644))

	out := filepath.Join(dir, "cmds.SETUP.csv.tar.gz")
	uncompressed, compressed, err := CompressFiles([]string{input}, out)
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), uncompressed)
	require.Greater(t, compressed, int64(0))
	require.Less(t, compressed, uncompressed)

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Equal(t, compressed, info.Size())

	// the archive must round-trip
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)
	hdr, err := tr.Next()
	require.NoError(t, err)
	require.Equal(t, "cmds.SETUP.csv", hdr.Name)
	restored, err := io.ReadAll(tr)
	require.NoError(t, err)
	require.Equal(t, content, string(restored))
}

func TestCompressFilesMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, _, err := CompressFiles([]string{filepath.Join(dir, "absent.csv")}, filepath.Join(dir, "out.tar.gz"))
	require.Error(t, err)
}
