package niftiio_test

import (
	"compress/gzip"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bloyl/fsl-mrs/internal/niftiio"
	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

func sampleImage(t *testing.T) *niftimrs.Image {
	t.Helper()
	shape := []int{1, 1, 1, 8, 2}
	data := make([]complex128, 16)
	for i := range data {
		data[i] = complex(float64(i), -float64(i))
	}
	hdr := niftimrs.Header{
		SpectrometerFrequency: 123.2,
		DwellTime:             1.0 / 4000,
		Nucleus:               "1H",
	}
	meta := niftimrs.Metadata{
		{Tag: niftimrs.TagDyn, Index: 0}: 0.25,
		{Tag: niftimrs.TagDyn, Index: 1}: 0.75,
	}
	prov := niftimrs.Log{}.Extend("read", "path=raw.nmrs").Extend("conjugate", "")
	img, err := niftimrs.New(data, shape, []niftimrs.Tag{niftimrs.TagDyn}, hdr, meta, prov)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return img
}

func TestWriteReadRoundTrip(t *testing.T) {
	img := sampleImage(t)
	path := filepath.Join(t.TempDir(), "sample"+niftiio.Ext)

	if err := niftiio.Write(img, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := niftiio.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !reflect.DeepEqual(got.Shape(), img.Shape()) {
		t.Fatalf("shape = %v, want %v", got.Shape(), img.Shape())
	}
	if !reflect.DeepEqual(got.Tags(), img.Tags()) {
		t.Fatalf("tags = %v, want %v", got.Tags(), img.Tags())
	}
	if !reflect.DeepEqual(got.Data(), img.Data()) {
		t.Fatal("samples changed across the round trip")
	}
	if !got.Header().Equivalent(img.Header()) {
		t.Fatalf("header = %+v, want %+v", got.Header(), img.Header())
	}
	if !reflect.DeepEqual(got.Metadata(), img.Metadata()) {
		t.Fatalf("metadata = %v, want %v", got.Metadata(), img.Metadata())
	}

	wantProv := img.Provenance()
	gotProv := got.Provenance()
	if len(gotProv) != len(wantProv) {
		t.Fatalf("provenance length = %d, want %d", len(gotProv), len(wantProv))
	}
	for i := range wantProv {
		if gotProv[i].ID != wantProv[i].ID ||
			gotProv[i].Method != wantProv[i].Method ||
			gotProv[i].Details != wantProv[i].Details ||
			gotProv[i].Program != wantProv[i].Program ||
			gotProv[i].Version != wantProv[i].Version ||
			!gotProv[i].Time.Equal(wantProv[i].Time) {
			t.Fatalf("provenance record %d = %+v, want %+v", i, gotProv[i], wantProv[i])
		}
	}
}

func TestWriteReplacesAtomically(t *testing.T) {
	img := sampleImage(t)
	path := filepath.Join(t.TempDir(), "sample"+niftiio.Ext)

	if err := niftiio.Write(img, path); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := niftiio.Write(img, path); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if _, err := niftiio.Read(path); err != nil {
		t.Fatalf("Read after rewrite: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != filepath.Base(path) && entry.Name() != ".mrs-tools.lock" {
			t.Fatalf("leftover file %s in output dir", entry.Name())
		}
	}
}

func TestReadRejectsMissingFile(t *testing.T) {
	_, err := niftiio.Read(filepath.Join(t.TempDir(), "absent"+niftiio.Ext))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain"+niftiio.Ext)
	if err := os.WriteFile(plain, []byte("not gzip"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := niftiio.Read(plain); err == nil {
		t.Fatal("uncompressed file must be rejected")
	}

	// Valid gzip, wrong magic.
	badMagic := filepath.Join(dir, "magic"+niftiio.Ext)
	writeGzip(t, badMagic, []byte("XXXX\x00\x01rest"))
	if _, err := niftiio.Read(badMagic); err == nil {
		t.Fatal("wrong magic must be rejected")
	}
}

func TestReadRejectsInvalidDeclaredShape(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"negative axis": `{"format_version":"0.7","shape":[1,1,1,-4],"spectrometer_frequency_mhz":123.2,"dwell_time_s":0.00025,"nucleus":"1H"}`,
		"zero axis":     `{"format_version":"0.7","shape":[1,1,0,4],"spectrometer_frequency_mhz":123.2,"dwell_time_s":0.00025,"nucleus":"1H"}`,
		"huge shape":    `{"format_version":"0.7","shape":[1000000,1000000,1000000,1000000],"spectrometer_frequency_mhz":123.2,"dwell_time_s":0.00025,"nucleus":"1H"}`,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+niftiio.Ext)
			writeRawContainer(t, path, []byte(header))
			_, err := niftiio.Read(path)
			if err == nil {
				t.Fatal("corrupt shape accepted")
			}
			if !strings.Contains(err.Error(), "read "+path) {
				t.Fatalf("error %q does not name the file", err)
			}
		})
	}
}

func TestReadRejectsOversizedHeaderLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdr"+niftiio.Ext)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	zw := gzip.NewWriter(f)
	zw.Write([]byte("NMRS\x00\x01"))
	binary.Write(zw, binary.LittleEndian, uint32(1<<31))
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = niftiio.Read(path)
	if err == nil {
		t.Fatal("oversized header length accepted")
	}
	if !strings.Contains(err.Error(), "header length") {
		t.Fatalf("error %q does not mention the header length", err)
	}
}

// writeRawContainer assembles a container by hand so tests can inject
// headers the writer would never produce.
func writeRawContainer(t *testing.T, path string, header []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	zw.Write([]byte("NMRS\x00\x01"))
	binary.Write(zw, binary.LittleEndian, uint32(len(header)))
	zw.Write(header)
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}

func writeGzip(t *testing.T, path string, payload []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}
