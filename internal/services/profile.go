package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
)

// assignedProfile loads the POS profile the user is listed on.
func assignedProfile(ctx context.Context, profiles repositories.Profiles, user string) (*models.POSProfile, error) {
	name, err := profiles.GetAssignedProfileName(ctx, user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, failf(ErrNoProfileAssigned, "No POS Profile assigned to user %s. Please configure a POS Profile.", user)
	}
	if err != nil {
		return nil, fmt.Errorf("get assigned profile: %w", err)
	}
	return loadProfile(ctx, profiles, name)
}

func loadProfile(ctx context.Context, profiles repositories.Profiles, name string) (*models.POSProfile, error) {
	p, err := profiles.GetProfile(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, failf(ErrProfileNotFound, "POS Profile %s not found.", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}
