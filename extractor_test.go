package numtab

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// dataLines returns n lines of two-column data: "i 2i".
func dataLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d %d\n", i, 2*i)
	}
	return b.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleHeader = "# generated for testing\nqmax = 24.0\ntemperature = 293\ncomposition = CaTiO3\n"

func TestDataFromFile(t *testing.T) {
	path := writeFile(t, "sample.gr", sampleHeader+dataLines(12))

	data, warnings, err := Open(path).Data()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	rows, cols := data.Dims()
	assert.Equal(t, 12, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3.0, data.At(3, 0))
	assert.Equal(t, 6.0, data.At(3, 1))
}

func TestDataBelowMinRows(t *testing.T) {
	path := writeFile(t, "short.dat", sampleHeader+dataLines(5))

	data, _, err := Open(path).Data()
	require.NoError(t, err)
	assert.True(t, data.IsEmpty(), "5 rows must not qualify with the default threshold")

	data, _, err = Open(path).MinRows(5).Data()
	require.NoError(t, err)
	assert.Equal(t, 5, data.Rows())
}

func TestHeader(t *testing.T) {
	path := writeFile(t, "sample.gr", sampleHeader+dataLines(12))

	hdr, err := Open(path).Header()
	require.NoError(t, err)

	assert.Equal(t, []string{"qmax", "temperature", "composition"}, hdr.Keys())

	qmax, ok := hdr.Get("qmax")
	require.True(t, ok)
	assert.True(t, qmax.IsNumber)
	assert.Equal(t, 24.0, qmax.Number)

	comp, ok := hdr.Get("composition")
	require.True(t, ok)
	assert.False(t, comp.IsNumber)
	assert.Equal(t, "CaTiO3", comp.Text)
}

func TestColumnsAndUnpack(t *testing.T) {
	path := writeFile(t, "sample.gr", dataLines(12))

	data, _, err := Open(path).Columns(1, 0).Unpack().Data()
	require.NoError(t, err)

	// Unpacked: one outer row per selected column, in selection order.
	assert.Equal(t, 2, data.Rows())
	assert.Equal(t, 12, data.Cols())
	assert.Equal(t, 8.0, data.At(0, 4)) // column 1 of source row 4
	assert.Equal(t, 4.0, data.At(1, 4)) // column 0 of source row 4
}

func TestDelimiter(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, i*i)
	}
	path := writeFile(t, "sample.csv", b.String())

	data, _, err := Open(path).Delimiter(",").Data()
	require.NoError(t, err)
	assert.Equal(t, 10, data.Rows())
	assert.Equal(t, 9.0, data.At(3, 1))
}

func TestDatasets(t *testing.T) {
	content := "run 1\n" + dataLines(4) + "run 2\n1 2 3\n4 5 6\n7 8 9\n"
	path := writeFile(t, "multi.dat", content)

	sets, _, err := Open(path).MinRows(3).Datasets()
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "run 1\n", sets[0].Header)
	assert.Equal(t, 4, sets[0].Data.Rows())
	assert.Equal(t, 2, sets[0].Data.Cols())

	assert.Equal(t, "run 2\n", sets[1].Header)
	assert.Equal(t, 3, sets[1].Data.Rows())
	assert.Equal(t, 3, sets[1].Data.Cols())
}

func TestChainingDoesNotMutate(t *testing.T) {
	path := writeFile(t, "short.dat", dataLines(5))

	base := Open(path)
	low := base.MinRows(3)

	data, _, err := low.Data()
	require.NoError(t, err)
	assert.Equal(t, 5, data.Rows())

	// The base extractor keeps the default threshold.
	data, _, err = base.Data()
	require.NoError(t, err)
	assert.True(t, data.IsEmpty())
}

func TestFromReader(t *testing.T) {
	content := sampleHeader + dataLines(12)

	ex := FromReader(strings.NewReader(content))
	data, _, err := ex.Data()
	require.NoError(t, err)
	assert.Equal(t, 12, data.Rows())

	// The content is cached, so a second terminal op still sees it.
	hdr, err := ex.Header()
	require.NoError(t, err)
	assert.Equal(t, 3, hdr.Len())
}

func TestGzipFile(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sampleHeader + dataLines(12)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "sample.gr.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	data, warnings, err := Open(path).Data()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 12, data.Rows())

	hdr, err := Open(path).Header()
	require.NoError(t, err)
	assert.Equal(t, 3, hdr.Len())
}

func TestLatin1Warning(t *testing.T) {
	// 0xE9 is "é" in Latin-1 and invalid as a standalone UTF-8 byte.
	content := "r\xe9sum\xe9 = test\n" + dataLines(12)
	path := writeFile(t, "legacy.dat", content)

	data, warnings, err := Open(path).Data()
	require.NoError(t, err)
	assert.Equal(t, 12, data.Rows())

	require.NotEmpty(t, warnings)
	assert.Equal(t, WarnCharset, warnings[0].Code)
	assert.NotEmpty(t, FormatWarnings(warnings))
}

func TestHTMLFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body><p>measurement run</p><table>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%d</td></tr>", i, 3*i)
	}
	b.WriteString("</table></body></html>")
	path := writeFile(t, "report.html", b.String())

	data, warnings, err := Open(path).Data()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 10, data.Rows())
	assert.Equal(t, 2, data.Cols())
	assert.Equal(t, 12.0, data.At(4, 1))
}

func TestHTMLNoTablesWarning(t *testing.T) {
	html := "<!DOCTYPE html><html><body><pre>" + dataLines(10) + "</pre></body></html>"
	path := writeFile(t, "plain.html", html)

	data, warnings, err := Open(path).Data()
	require.NoError(t, err)
	assert.Equal(t, 10, data.Rows())

	require.NotEmpty(t, warnings)
	assert.Equal(t, WarnNoTables, warnings[0].Code)
}

func TestXLSXFile(t *testing.T) {
	f := excelize.NewFile()
	for i := 0; i < 10; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &[]any{float64(i), float64(i * 10)}))
	}
	_, err := f.NewSheet("Run2")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		cell, cerr := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, cerr)
		require.NoError(t, f.SetSheetRow("Run2", cell, &[]any{float64(i), float64(i), float64(i)}))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, _, err := Open(path).Data()
	require.NoError(t, err)
	assert.Equal(t, 10, data.Rows())
	assert.Equal(t, 2, data.Cols())
	assert.Equal(t, 40.0, data.At(4, 1))

	// Each sheet is partitioned independently.
	sets, _, err := Open(path).Datasets()
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 2, sets[0].Data.Cols())
	assert.Equal(t, 3, sets[1].Data.Cols())
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "absent.dat")).Data()
	assert.Error(t, err)
}

func TestNoSource(t *testing.T) {
	_, _, err := (&Extractor{options: defaultOptions()}).Data()
	assert.Error(t, err)
}

func TestMustHelpers(t *testing.T) {
	path := writeFile(t, "sample.gr", dataLines(12))

	data := MustData(Open(path).Data())
	assert.Equal(t, 12, data.Rows())

	hdr := Must(Open(path).Header())
	assert.Equal(t, 0, hdr.Len())

	assert.Panics(t, func() {
		MustData(Open(filepath.Join(t.TempDir(), "absent.dat")).Data())
	})
	assert.Panics(t, func() {
		Must(Open(filepath.Join(t.TempDir(), "absent.dat")).Header())
	})
}
