package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/types"
)

// ErrMissing is wrapped by LoadError when a catalog file does not exist.
var ErrMissing = errors.New("catalog file not found")

// LoadError describes why one catalog document could not be used.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadDir reads the three catalog documents from dir. It never fails: problems are logged,
// recorded in Warnings and the affected catalog is left empty.
func LoadDir(dir string, log *zap.Logger) *Store {
	log = logger.Named(log, "catalog")

	taxonomy, taxErr := loadTaxonomy(filepath.Join(dir, SkillsFile))
	roles, rolesErr := loadRoles(filepath.Join(dir, RolesFile))
	roadmaps, roadmapErr := loadRoadmaps(filepath.Join(dir, RoadmapsFile))

	s := &Store{}
	docs := []struct {
		name string
		file string
		err  error
	}{
		{schemas.SkillsDatabase, SkillsFile, taxErr},
		{schemas.RoleRequirements, RolesFile, rolesErr},
		{schemas.LearningRoadmaps, RoadmapsFile, roadmapErr},
	}
	for _, d := range docs {
		if d.err != nil {
			s.warn("%v", d.err)
			continue
		}
		log.Debug("catalog document read", logger.CatalogFields(d.name, d.file)...)
	}
	s.taxonomy = s.cleanTaxonomy(taxonomy)
	s.roles = s.cleanRoles(roles)
	s.roadmaps, s.roadmapOrder = s.cleanRoadmaps(roadmaps)

	for _, w := range s.warnings {
		log.Warn("catalog problem", zap.String("warning", w))
	}
	log.Info("catalog loaded",
		zap.String(logger.FieldPath, dir),
		zap.Int("categories", len(s.taxonomy)),
		zap.Int("skills", s.taxonomy.SkillCount()),
		zap.Int("roles", len(s.roles)),
		zap.Int("roadmaps", len(s.roadmapOrder)),
		zap.Int("warnings", len(s.warnings)))

	return s
}

// Validate checks the catalog documents in dir strictly and returns every problem found.
// An empty result means LoadDir would load the directory without warnings.
func Validate(dir string) []error {
	var errs []error

	taxonomy, err := loadTaxonomy(filepath.Join(dir, SkillsFile))
	if err != nil {
		errs = append(errs, err)
	}
	roles, err := loadRoles(filepath.Join(dir, RolesFile))
	if err != nil {
		errs = append(errs, err)
	}
	roadmaps, err := loadRoadmaps(filepath.Join(dir, RoadmapsFile))
	if err != nil {
		errs = append(errs, err)
	}

	s := NewOrdered(taxonomy, roles, roadmaps)
	for _, w := range s.Warnings() {
		errs = append(errs, errors.New(w))
	}

	for _, r := range s.Roles() {
		if _, ok := s.roadmaps[r.Role]; !ok {
			errs = append(errs, fmt.Errorf("learning roadmaps: no roadmap for role %q", r.Role))
		}
	}
	return errs
}

func readDocument(path, schema string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{File: path, Err: ErrMissing}
		}
		return nil, &LoadError{File: path, Err: err}
	}
	if err := schemas.ValidateCatalog(schema, data); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return data, nil
}

func loadTaxonomy(path string) ([]types.SkillCategory, error) {
	data, err := readDocument(path, schemas.SkillsDatabase)
	if err != nil {
		return nil, err
	}
	var out []types.SkillCategory
	err = decodeOrdered(data, func(key string, dec *json.Decoder) error {
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return err
		}
		out = append(out, types.SkillCategory{Name: key, Skills: skills})
		return nil
	})
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return out, nil
}

type roleDocument struct {
	CriticalSkills    []string `json:"critical_skills"`
	RecommendedSkills []string `json:"recommended_skills"`
}

func loadRoles(path string) ([]types.RoleRequirement, error) {
	data, err := readDocument(path, schemas.RoleRequirements)
	if err != nil {
		return nil, err
	}
	var out []types.RoleRequirement
	err = decodeOrdered(data, func(key string, dec *json.Decoder) error {
		var doc roleDocument
		if err := dec.Decode(&doc); err != nil {
			return err
		}
		out = append(out, types.RoleRequirement{
			Role:              key,
			CriticalSkills:    doc.CriticalSkills,
			RecommendedSkills: doc.RecommendedSkills,
		})
		return nil
	})
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return out, nil
}

func loadRoadmaps(path string) ([]types.Roadmap, error) {
	data, err := readDocument(path, schemas.LearningRoadmaps)
	if err != nil {
		return nil, err
	}
	var out []types.Roadmap
	err = decodeOrdered(data, func(key string, dec *json.Decoder) error {
		var steps []string
		if err := dec.Decode(&steps); err != nil {
			return err
		}
		out = append(out, types.Roadmap{Role: key, Steps: steps})
		return nil
	})
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return out, nil
}
