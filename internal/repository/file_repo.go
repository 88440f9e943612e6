package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"truckbook/internal/db"
)

// fileRecord accepts both the current layout and the one written by the
// first release of the bot, which had no id and kept the occupant under "userId".
type fileRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Free     bool    `json:"free"`
	Occupant *string `json:"occupant,omitempty"`
	UserID   *string `json:"userId,omitempty"`
}

// FileFleetStore keeps the roster as a JSON array in a single file.
type FileFleetStore struct {
	Path    string
	Default db.Fleet
}

func NewFileFleetStore(path string, defaultFleet db.Fleet) *FileFleetStore {
	return &FileFleetStore{Path: path, Default: defaultFleet.Clone()}
}

// Load reads the roster. A missing file yields the default roster.
func (s *FileFleetStore) Load(ctx context.Context) (db.Fleet, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", s.Path).Info("Fleet file not found, starting from default roster")
		return s.Default.Clone(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading fleet file %s: %w", s.Path, err)
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding fleet file %s: %w", s.Path, err)
	}

	fleet := make(db.Fleet, 0, len(records))
	for _, rec := range records {
		fleet = append(fleet, rec.vehicle())
	}
	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("fleet file %s: %w", s.Path, err)
	}
	return fleet, nil
}

// Save replaces the file through a temp file and rename, so readers never
// see a partially written roster.
func (s *FileFleetStore) Save(ctx context.Context, fleet db.Fleet) error {
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("refusing to save roster: %w", err)
	}
	data, err := json.MarshalIndent(fleet, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding fleet: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp fleet file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temp fleet file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing temp fleet file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp fleet file: %w", err)
	}
	if err = os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("error replacing fleet file %s: %w", s.Path, err)
	}
	return nil
}

func (r fileRecord) vehicle() db.Vehicle {
	v := db.Vehicle{ID: r.ID, Name: r.Name, Free: r.Free, Occupant: r.Occupant}
	if v.ID == "" && v.Name != "" {
		v.ID = db.VehicleID(v.Name)
	}
	if v.Occupant == nil && !v.Free && r.UserID != nil && *r.UserID != "" {
		userID := *r.UserID
		v.Occupant = &userID
	}
	return v
}
