// Rostercheck
// Copyright (c) 2026 The Rostercheck Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Rostercheck.
//
// Rostercheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rostercheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rostercheck.  If not, see <http://www.gnu.org/licenses/>.

// Package validation checks API request bodies using go-playground/validator
// with custom validators for school prefixes and Drive folder links.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rostercheck/rostercheck/pkg/api/models"
	"github.com/rostercheck/rostercheck/pkg/listing"
)

// Common validation errors.
var (
	ErrMissingParams = errors.New("missing params")
	ErrInvalidParams = errors.New("invalid params")
)

// prefixPattern is the school part of team_last_first filenames.
var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,32}$`)

// Validator handles validation of API parameters.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator with registered custom validators.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	_ = v.RegisterValidation("prefix", validatePrefix)
	_ = v.RegisterValidation("drivefolder", validateDriveFolder)
	v.RegisterStructValidation(validateCheckSources, models.CheckRequest{})

	return &Validator{validate: v}
}

// DefaultValidator is a shared validator instance for API use.
var DefaultValidator = NewValidator()

// Validate validates a struct and returns a formatted error if validation fails.
func (v *Validator) Validate(params any) error {
	return v.ValidateCtx(context.Background(), params)
}

// ValidateCtx validates a struct with context and returns a formatted error.
func (v *Validator) ValidateCtx(ctx context.Context, params any) error {
	if err := v.validate.StructCtx(ctx, params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateAndUnmarshal unmarshals JSON params and validates them.
// Returns ErrMissingParams if params is empty, ErrInvalidParams if unmarshal fails,
// or an Error if validation fails.
func ValidateAndUnmarshal[T any](params json.RawMessage, dest *T) error {
	return ValidateAndUnmarshalCtx(context.Background(), params, dest)
}

// ValidateAndUnmarshalCtx unmarshals JSON params and validates them with context.
func ValidateAndUnmarshalCtx[T any](ctx context.Context, params json.RawMessage, dest *T) error {
	if len(params) == 0 {
		return ErrMissingParams
	}
	if err := json.Unmarshal(params, dest); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParams, err.Error())
	}
	return DefaultValidator.ValidateCtx(ctx, dest)
}

// jsonFieldName reports fields by their JSON name so messages match the
// request body. Fields without a json tag keep the Go name.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validatePrefix checks a school prefix: letters, digits and hyphens, no
// underscores.
func validatePrefix(fl validator.FieldLevel) bool {
	return prefixPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateDriveFolder checks that a Drive folder id can be found in the URL.
func validateDriveFolder(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := listing.FolderID(val)
	return err == nil
}

// validateCheckSources requires exactly one photo source and exactly one
// roster source.
func validateCheckSources(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(models.CheckRequest)
	if !ok {
		return
	}

	hasFiles := len(req.Filenames) > 0
	hasDrive := req.DriveFolderURL != ""
	switch {
	case hasFiles && hasDrive:
		sl.ReportError(req.DriveFolderURL, "driveFolderUrl", "DriveFolderURL", "photosource", "")
	case !hasFiles && !hasDrive:
		sl.ReportError(req.Filenames, "filenames", "Filenames", "photosource", "")
	}

	hasURL := req.RosterURL != ""
	hasInline := req.Roster != nil
	switch {
	case hasURL && hasInline:
		sl.ReportError(req.Roster, "roster", "Roster", "rostersource", "")
	case !hasURL && !hasInline:
		sl.ReportError(req.RosterURL, "rosterUrl", "RosterURL", "rostersource", "")
	}
}
