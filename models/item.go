// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Property is one element of an item's ApplicationData. Name is the
// qualified tag name (e.g. "Email:Subject"); a property either carries a
// Value or nested Children.
type Property struct {
	Name     string     `json:"name"`
	Value    string     `json:"value,omitempty"`
	Children []Property `json:"children,omitempty"`
}

// Item is an opaque groupware object exchanged with the device.
type Item struct {
	Class      ContentClass `json:"class,omitempty"`
	Properties []Property   `json:"properties"`
}

// Get returns the value of the first top-level property called name.
func (i Item) Get(name string) (string, bool) {
	for _, p := range i.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ChangeType enumerates outgoing change kinds.
type ChangeType int

const (
	ChangeAdd ChangeType = iota + 1
	ChangeModify
	ChangeDelete
	ChangeSoftDelete
)

func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	case ChangeSoftDelete:
		return "softdelete"
	}
	return "unknown"
}

// Change is one outgoing backend change streamed to the device.
type Change struct {
	Type     ChangeType
	ServerID string
	Item     Item
}

// ExportOptions narrows what an exporter reports.
type ExportOptions struct {
	Class          ContentClass
	FilterType     int
	TruncationSize int
	MIMESupport    int
}

// FilterType values (time-window cutoffs).
const (
	FilterAll         = 0
	FilterOneDay      = 1
	FilterThreeDays   = 2
	FilterOneWeek     = 3
	FilterTwoWeeks    = 4
	FilterOneMonth    = 5
	FilterThreeMonths = 6
	FilterSixMonths   = 7
	FilterIncomplete  = 8
)
