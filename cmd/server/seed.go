package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	dirmodels "amlengine/internal/directory/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
)

// directorySeed lists the staff and clients loaded into the in-memory
// directory for local runs, where no external directory is available.
type directorySeed struct {
	Staff []struct {
		ID         string   `yaml:"id"`
		UserID     string   `yaml:"user_id"`
		Name       string   `yaml:"name"`
		Role       string   `yaml:"role"`
		Businesses []string `yaml:"businesses"`
		Inactive   bool     `yaml:"inactive"`
	} `yaml:"staff"`
	Clients []struct {
		ID         string   `yaml:"id"`
		Name       string   `yaml:"name"`
		Type       string   `yaml:"client_type"`
		Country    string   `yaml:"country"`
		Businesses []string `yaml:"businesses"`
	} `yaml:"clients"`
}

type staffCreator interface {
	Create(ctx context.Context, st *dirmodels.Staff) error
}

type clientCreator interface {
	Create(ctx context.Context, c *dirmodels.Client) error
}

func loadDirectorySeed(ctx context.Context, path string, staff staffCreator, clients clientCreator) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read directory seed: %w", err)
	}
	var seed directorySeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse directory seed: %w", err)
	}

	for _, s := range seed.Staff {
		staffID, err := id.ParseStaffID(s.ID)
		if err != nil {
			return 0, fmt.Errorf("seed staff %q: %w", s.Name, err)
		}
		userID, err := id.ParseUserID(s.UserID)
		if err != nil {
			return 0, fmt.Errorf("seed staff %q: %w", s.Name, err)
		}
		role := dirmodels.StaffRole(s.Role)
		if !role.IsValid() {
			return 0, fmt.Errorf("seed staff %q: unknown role %q", s.Name, s.Role)
		}
		if err := staff.Create(ctx, &dirmodels.Staff{
			ID: staffID, UserID: userID, Name: s.Name, Role: role,
			Businesses: s.Businesses, IsActive: !s.Inactive,
		}); err != nil {
			return 0, fmt.Errorf("seed staff %q: %w", s.Name, err)
		}
	}

	for _, c := range seed.Clients {
		clientID, err := id.ParseClientID(c.ID)
		if err != nil {
			return 0, fmt.Errorf("seed client %q: %w", c.Name, err)
		}
		clientType := risk.ClientType(c.Type)
		if !clientType.IsValid() {
			return 0, fmt.Errorf("seed client %q: unknown client_type %q", c.Name, c.Type)
		}
		if err := clients.Create(ctx, &dirmodels.Client{
			ID: clientID, Name: c.Name, Type: clientType, Country: c.Country, Businesses: c.Businesses,
		}); err != nil {
			return 0, fmt.Errorf("seed client %q: %w", c.Name, err)
		}
	}
	return len(seed.Staff) + len(seed.Clients), nil
}
