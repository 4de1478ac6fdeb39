// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
	"gopkg.in/yaml.v3"
)

// Seed is the content of a seed file for the in-memory backend.
type Seed struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Name         string       `yaml:"name"`
	Password     string       `yaml:"password"`
	PasswordHash string       `yaml:"password_hash"`
	Folders      []SeedFolder `yaml:"folders"`
}

type SeedFolder struct {
	ID       string            `yaml:"id"`
	ParentID string            `yaml:"parent_id"`
	Name     string            `yaml:"name"`
	Type     models.FolderType `yaml:"type"`
	Items    []SeedItem        `yaml:"items"`
}

type SeedItem struct {
	ID         string              `yaml:"id"`
	Class      models.ContentClass `yaml:"class"`
	Received   time.Time           `yaml:"received"`
	Properties map[string]string   `yaml:"properties"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("error decoding seed: %w", err)
	}
	return seed, nil
}

// LoadSeedFile reads path and applies it to b.
func (b *MemoryBackend) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening seed file: %w", err)
	}
	defer f.Close()

	seed, err := ParseSeed(f)
	if err != nil {
		return err
	}
	return b.ApplySeed(seed)
}

// ApplySeed creates the users, folders and items of seed.
func (b *MemoryBackend) ApplySeed(seed Seed) error {
	for _, u := range seed.Users {
		var err error
		switch {
		case u.PasswordHash != "":
			err = b.AddUserHash(u.Name, u.PasswordHash)
		default:
			err = b.AddUser(u.Name, u.Password)
		}
		if err != nil {
			return err
		}

		for _, f := range u.Folders {
			if f.ID == "" {
				return fmt.Errorf("seed folder %q of %s has no id", f.Name, u.Name)
			}
			if err := b.AddFolder(u.Name, models.BackendFolder{ID: f.ID, ParentID: f.ParentID, Name: f.Name, Type: f.Type}); err != nil {
				return err
			}
			for _, it := range f.Items {
				if _, err := b.PutItem(u.Name, f.ID, it.ID, seedItem(it, f.Type), it.Received); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedItem(it SeedItem, folderType models.FolderType) models.Item {
	class := it.Class
	if class == "" {
		class = folderType.Class()
	}

	names := make([]string, 0, len(it.Properties))
	for name := range it.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	item := models.Item{Class: class, Properties: make([]models.Property, 0, len(names))}
	for _, name := range names {
		item.Properties = append(item.Properties, models.Property{Name: name, Value: it.Properties[name]})
	}
	return item
}
