package types

import "fmt"

// Feature is a single named value produced by a feature extractor. The value
// is opaque to the core; only nil is rejected.
type Feature struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Validate rejects features with a nil value. Training on silently defaulted
// values corrupts the model, so the caller must treat this as fatal.
func (f Feature) Validate() error {
	if f.Value == nil {
		return fmt.Errorf("%w: %q", ErrNilFeatureValue, f.Name)
	}
	return nil
}

// ValidateFeatures checks every feature in the list.
func ValidateFeatures(features []Feature) error {
	for _, f := range features {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TrainingExample is a labeled feature vector delivered to the classifier
// training sink. Label holds the encoded wire category.
type TrainingExample struct {
	Features []Feature `json:"features"`
	Label    string    `json:"label"`
}
