package tracksrc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hepsim/tracksmear/smear"
)

// trackHeader is the required column layout of a track CSV file.
var trackHeader = []string{"pt", "eta", "phi", "mass", "charge", "xd", "yd", "zd"}

// ReadCSV replays generator-level tracks from a CSV file with the header
// pt,eta,phi,mass,charge,xd,yd,zd. Rows are returned in file order so that
// replayed runs consume the noise sequence in a stable order.
func ReadCSV(path string) ([]smear.TrackState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening track file: %w", err)
	}
	defer f.Close()

	tracks, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("track file %s: %w", path, err)
	}
	return tracks, nil
}

func parseCSV(r io.Reader) ([]smear.TrackState, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var tracks []smear.TrackState
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func checkHeader(header []string) error {
	if len(header) != len(trackHeader) {
		return fmt.Errorf("want %d columns %v, got %d", len(trackHeader), trackHeader, len(header))
	}
	for i, want := range trackHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("column %d: want %q, got %q", i, want, header[i])
		}
	}
	return nil
}

func parseRecord(rec []string) (smear.TrackState, error) {
	if len(rec) != len(trackHeader) {
		return smear.TrackState{}, fmt.Errorf("want %d fields, got %d", len(trackHeader), len(rec))
	}
	fields := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return smear.TrackState{}, fmt.Errorf("field %q: %w", trackHeader[i], err)
		}
		fields[i] = v
	}
	charge := int(fields[4])
	if float64(charge) != fields[4] {
		return smear.TrackState{}, fmt.Errorf("non-integer charge %v", fields[4])
	}
	return smear.TrackState{
		Pt:     fields[0],
		Eta:    fields[1],
		Phi:    fields[2],
		Mass:   fields[3],
		Charge: charge,
		Xd:     fields[5],
		Yd:     fields[6],
		Zd:     fields[7],
	}, nil
}
