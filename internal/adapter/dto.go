// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "github.com/MKhiriev/go-eas-sync/models"

type logonRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type logonResponse struct {
	Token string `json:"token"`
}

type statResponse struct {
	Stat string `json:"stat"`
}

type importResponse struct {
	ID string `json:"id"`
}

// changeDTO is one entry of a change listing. State is the cursor to
// persist once the change reached the device.
type changeDTO struct {
	Type     string      `json:"type"`
	ServerID string      `json:"server_id"`
	Item     models.Item `json:"item"`
	State    string      `json:"state"`
}

type changesResponse struct {
	Changes []changeDTO `json:"changes"`
}

func changeType(s string) (models.ChangeType, bool) {
	switch s {
	case "add":
		return models.ChangeAdd, true
	case "modify":
		return models.ChangeModify, true
	case "delete":
		return models.ChangeDelete, true
	case "softdelete":
		return models.ChangeSoftDelete, true
	}
	return 0, false
}
