package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// CSVStore keeps each league season in its own CSV file
type CSVStore struct {
	root    string
	columns []string
	headers map[string][]string // path -> header of an existing file
}

// NewCSV creates a store rooted at root. columns is the header written to new
// files; existing files keep their own header.
func NewCSV(root string, columns []string) (*CSVStore, error) {
	if strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, root[2:])
	}
	if len(columns) == 0 {
		return nil, errors.New("csv store needs at least one column")
	}
	return &CSVStore{
		root:    root,
		columns: columns,
		headers: make(map[string][]string),
	}, nil
}

// Dir returns the directory holding a league's files
func (s *CSVStore) Dir(league string) string {
	return filepath.Join(s.root, strings.ReplaceAll(league, " ", "_"))
}

// Path returns the file of a league season
func (s *CSVStore) Path(league, season string) string {
	return filepath.Join(s.Dir(league), fmt.Sprintf("%s_%s_matches.csv", league, season))
}

// Prepare creates the league directory
func (s *CSVStore) Prepare(league, season string) error {
	if err := os.MkdirAll(s.Dir(league), 0755); err != nil {
		return fmt.Errorf("creating league directory: %w", err)
	}
	return nil
}

// LoadKeys reads the Date, Home_Team_ID and Away_Team_ID columns
func (s *CSVStore) LoadKeys(league, season string) (match.KeySet, error) {
	path := s.Path(league, season)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return match.NewKeySet(), nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return match.NewKeySet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	s.headers[path] = header

	idx, err := keyColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	keys := match.NewKeySet()
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		keys.Add(match.Key{
			Date:       field(row, idx[0]),
			HomeTeamID: field(row, idx[1]),
			AwayTeamID: field(row, idx[2]),
		})
	}
	return keys, nil
}

// Append writes rec as one row, adding the header when the file is new. The
// file is opened and closed per call so an interrupted run keeps every row
// appended before it.
func (s *CSVStore) Append(league, season string, rec *match.Record) error {
	path := s.Path(league, season)

	header, err := s.header(path)
	if err != nil {
		return err
	}
	isNew := header == nil
	if isNew {
		header = s.columns
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if !isNew {
		// A file saved without a final newline would glue the row onto the last one.
		terminated, err := endsWithNewline(f)
		if err != nil {
			return fmt.Errorf("checking end of %s: %w", path, err)
		}
		if !terminated {
			if _, err := f.Write([]byte("\n")); err != nil {
				return fmt.Errorf("terminating last row of %s: %w", path, err)
			}
		}
	}

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := w.Write(rec.Row(header)); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	s.headers[path] = header
	return f.Close()
}

// header returns the header of an existing file, or nil if the file is
// missing or empty
func (s *CSVStore) header(path string) ([]string, error) {
	if h, ok := s.headers[path]; ok {
		if _, err := os.Stat(path); err == nil {
			return h, nil
		}
		delete(s.headers, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	h, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	s.headers[path] = h
	return h, nil
}

// endsWithNewline reports whether f is empty or its last byte is '\n'
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

func keyColumns(header []string) ([3]int, error) {
	idx := [3]int{-1, -1, -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case match.ColDate:
			idx[0] = i
		case match.ColHomeTeamID:
			idx[1] = i
		case match.ColAwayTeamID:
			idx[2] = i
		}
	}
	var missing []string
	for i, col := range []string{match.ColDate, match.ColHomeTeamID, match.ColAwayTeamID} {
		if idx[i] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing key column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
