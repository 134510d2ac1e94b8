package config

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"enrollment/domain"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/lookups.yaml
var defaultLookups []byte

type SeedEnrollmentPlan struct {
	Program  string `yaml:"program"`
	RoomType string `yaml:"roomType"`
}

type SeedData struct {
	Programs        []domain.Program     `yaml:"programs"`
	RoomTypes       []domain.RoomType    `yaml:"roomTypes"`
	PaymentPlans    []domain.PaymentPlan `yaml:"paymentPlans"`
	EnrollmentPlans []SeedEnrollmentPlan `yaml:"enrollmentPlans"`
}

func LoadSeedData(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &data, nil
}

// DefaultSeedData returns the reference data shipped with the binary.
func DefaultSeedData() (*SeedData, error) {
	return LoadSeedData(bytes.NewReader(defaultLookups))
}

// SeedLookups inserts missing reference rows. Running it twice is a no-op.
func SeedLookups(ctx context.Context, db *gorm.DB, data *SeedData) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		programs := make(map[string]uint, len(data.Programs))
		for _, p := range data.Programs {
			row := domain.Program{Name: strings.TrimSpace(p.Name)}
			if err := tx.Where("name = ?", row.Name).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed program %q: %w", row.Name, err)
			}
			programs[strings.ToLower(row.Name)] = row.ID
		}

		rooms := make(map[string]uint, len(data.RoomTypes))
		for _, r := range data.RoomTypes {
			row := domain.RoomType{Type: strings.TrimSpace(r.Type)}
			if err := tx.Where("type = ?", row.Type).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed room type %q: %w", row.Type, err)
			}
			rooms[strings.ToLower(row.Type)] = row.ID
		}

		for _, p := range data.PaymentPlans {
			row := domain.PaymentPlan{Type: strings.TrimSpace(p.Type)}
			if err := tx.Where("type = ?", row.Type).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed payment plan %q: %w", row.Type, err)
			}
		}

		for _, ep := range data.EnrollmentPlans {
			programID, ok := programs[strings.ToLower(strings.TrimSpace(ep.Program))]
			if !ok {
				return fmt.Errorf("enrollment plan references unknown program %q", ep.Program)
			}
			roomID, ok := rooms[strings.ToLower(strings.TrimSpace(ep.RoomType))]
			if !ok {
				return fmt.Errorf("enrollment plan references unknown room type %q", ep.RoomType)
			}
			row := domain.EnrollmentPlan{ProgramID: programID, RoomTypeID: roomID}
			if err := tx.Where("program_id = ? AND room_type_id = ?", programID, roomID).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed enrollment plan %s/%s: %w", ep.Program, ep.RoomType, err)
			}
		}
		return nil
	})
}
