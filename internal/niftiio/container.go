package niftiio

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Ext is the container file extension.
const Ext = ".nmrs"

// magic opens every container; the trailing byte is the payload revision.
var magic = []byte("NMRS\x00\x01")

// Sanity limits applied before any header-derived allocation, so a corrupt
// or hostile file fails with an error instead of exhausting memory.
const (
	maxHeaderLen = 16 << 20     // JSON metadata block
	maxSamples   = 1 << 32 / 16 // payload entries (complex128 = 16 bytes)
)

type metaEntry struct {
	Tag   string `json:"tag"`
	Index int    `json:"index"`
	Value any    `json:"value"`
}

type provEntry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Program string    `json:"program"`
	Version string    `json:"version"`
	Method  string    `json:"method"`
	Details string    `json:"details,omitempty"`
}

type containerHeader struct {
	FormatVersion         string      `json:"format_version"`
	Shape                 []int       `json:"shape"`
	DimTags               []string    `json:"dim_tags"`
	SpectrometerFrequency float64     `json:"spectrometer_frequency_mhz"`
	DwellTime             float64     `json:"dwell_time_s"`
	Nucleus               string      `json:"nucleus"`
	Meta                  []metaEntry `json:"per_index_metadata,omitempty"`
	Provenance            []provEntry `json:"processing_applied,omitempty"`
}

// Read loads a container from disk, restoring tags, header, per-index
// metadata, and provenance.
func Read(path string) (*niftimrs.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("read %s: not a compressed container: %w", path, err)
	}
	defer zr.Close()

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(zr, head); err != nil {
		return nil, fmt.Errorf("read %s: truncated magic: %w", path, err)
	}
	for i, b := range magic {
		if head[i] != b {
			return nil, fmt.Errorf("read %s: unrecognized container magic", path)
		}
	}

	var hdrLen uint32
	if err := binary.Read(zr, binary.LittleEndian, &hdrLen); err != nil {
		return nil, fmt.Errorf("read %s: truncated header length: %w", path, err)
	}
	if hdrLen == 0 || hdrLen > maxHeaderLen {
		return nil, fmt.Errorf("read %s: header length %d outside 1..%d", path, hdrLen, maxHeaderLen)
	}
	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(zr, hdrBytes); err != nil {
		return nil, fmt.Errorf("read %s: truncated header: %w", path, err)
	}
	var ch containerHeader
	if err := json.Unmarshal(hdrBytes, &ch); err != nil {
		return nil, fmt.Errorf("read %s: decode header: %w", path, err)
	}

	tags, err := niftimrs.ParseTags(ch.DimTags)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	total := 1
	for i, n := range ch.Shape {
		if n < 1 {
			return nil, fmt.Errorf("read %s: axis %d has invalid length %d", path, i, n)
		}
		if total > maxSamples/n {
			return nil, fmt.Errorf("read %s: declared shape %v exceeds %d samples", path, ch.Shape, maxSamples)
		}
		total *= n
	}
	raw := make([]float64, 2*total)
	if err := binary.Read(zr, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("read %s: truncated payload: %w", path, err)
	}
	data := make([]complex128, total)
	for i := range data {
		data[i] = complex(raw[2*i], raw[2*i+1])
	}

	meta := make(niftimrs.Metadata, len(ch.Meta))
	for _, entry := range ch.Meta {
		tag, err := niftimrs.ParseTag(entry.Tag)
		if err != nil {
			return nil, fmt.Errorf("read %s: metadata: %w", path, err)
		}
		meta[niftimrs.MetaKey{Tag: tag, Index: entry.Index}] = entry.Value
	}

	prov := make(niftimrs.Log, len(ch.Provenance))
	for i, entry := range ch.Provenance {
		prov[i] = niftimrs.Record(entry)
	}

	hdr := niftimrs.Header{
		SpectrometerFrequency: ch.SpectrometerFrequency,
		DwellTime:             ch.DwellTime,
		Nucleus:               ch.Nucleus,
		Version:               ch.FormatVersion,
	}
	img, err := niftimrs.New(data, ch.Shape, tags, hdr, meta, prov)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return img, nil
}

// Write serializes an image to path, creating the file atomically under the
// output directory's write lock.
func Write(img *niftimrs.Image, path string) error {
	return writeLocked(path, func(w io.Writer) error {
		return encode(img, w)
	})
}

func encode(img *niftimrs.Image, w io.Writer) error {
	hdr := img.Header()
	ch := containerHeader{
		FormatVersion:         niftimrs.FormatVersion,
		Shape:                 img.Shape(),
		DimTags:               niftimrs.TagLabels(img.Tags()),
		SpectrometerFrequency: hdr.SpectrometerFrequency,
		DwellTime:             hdr.DwellTime,
		Nucleus:               hdr.Nucleus,
	}
	for key, value := range img.Metadata() {
		ch.Meta = append(ch.Meta, metaEntry{Tag: key.Tag.String(), Index: key.Index, Value: value})
	}
	sort.Slice(ch.Meta, func(i, j int) bool {
		if ch.Meta[i].Tag != ch.Meta[j].Tag {
			return ch.Meta[i].Tag < ch.Meta[j].Tag
		}
		return ch.Meta[i].Index < ch.Meta[j].Index
	})
	for _, rec := range img.Provenance() {
		ch.Provenance = append(ch.Provenance, provEntry(rec))
	}
	hdrBytes, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if len(hdrBytes) > math.MaxUint32 {
		return fmt.Errorf("encode header: %d bytes exceeds container limit", len(hdrBytes))
	}

	zw := gzip.NewWriter(w)
	if _, err := zw.Write(magic); err != nil {
		return err
	}
	if err := binary.Write(zw, binary.LittleEndian, uint32(len(hdrBytes))); err != nil {
		return err
	}
	if _, err := zw.Write(hdrBytes); err != nil {
		return err
	}
	data := img.Data()
	raw := make([]float64, 2*len(data))
	for i, v := range data {
		raw[2*i] = real(v)
		raw[2*i+1] = imag(v)
	}
	if err := binary.Write(zw, binary.LittleEndian, raw); err != nil {
		return err
	}
	return zw.Close()
}
