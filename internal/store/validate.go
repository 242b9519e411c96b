package store

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/petar-djukic/equipments/pkg/types"
)

// Validation tags. Each rule is checked on its own so the first failure
// maps to exactly one reason.
const (
	tagName       = "required"
	tagPrice      = "gte=0"
	tagRating     = "gte=0,lte=5"
	tagImagePath  = "required"
	tagImageExist = "image_exists"
)

// newValidator builds the validator and registers the image existence rule
// when a checker is configured.
func newValidator(checker types.ImageChecker) (*validator.Validate, error) {
	v := validator.New()
	if checker != nil {
		err := v.RegisterValidation(tagImageExist, func(fl validator.FieldLevel) bool {
			return checker.Exists(fl.Field().String())
		})
		if err != nil {
			return nil, fmt.Errorf("registering %s validation: %w", tagImageExist, err)
		}
	}
	return v, nil
}

func (s *Store) checkName(name string) error {
	if s.validate.Var(strings.TrimSpace(name), tagName) != nil {
		return types.ErrEmptyName
	}
	return nil
}

// checkEquipment runs the ordered equipment pipeline: name, price, rating,
// image paths, then references. The caller must hold s.mu.
func (s *Store) checkEquipment(e *types.Equipment) error {
	if err := s.checkName(e.Name); err != nil {
		return err
	}
	if s.validate.Var(e.Price, tagPrice) != nil {
		return types.ErrInvalidPrice
	}
	if s.validate.Var(e.Rating, tagRating) != nil {
		return types.ErrInvalidRating
	}
	for i, path := range e.Images {
		if s.validate.Var(strings.TrimSpace(path), tagImagePath) != nil {
			return fmt.Errorf("image %d: %w", i, types.ErrInvalidImagePath)
		}
		if s.images != nil && s.validate.Var(path, tagImageExist) != nil {
			return fmt.Errorf("image %q: %w", path, types.ErrInvalidImagePath)
		}
	}
	if e.PlayTypeID != nil && s.playTypeIndex(*e.PlayTypeID) < 0 {
		return fmt.Errorf("play type %s: %w", *e.PlayTypeID, types.ErrNotFound)
	}
	if e.CategoryID != nil && s.categoryIndex(*e.CategoryID) < 0 {
		return fmt.Errorf("category %s: %w", *e.CategoryID, types.ErrNotFound)
	}
	return nil
}

// sameName reports whether two names collide once surrounding whitespace is
// ignored.
func sameName(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
