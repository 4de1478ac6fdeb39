// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FolderType is the ActiveSync folder type code.
type FolderType int

const (
	FolderTypeUserGeneric   FolderType = 1
	FolderTypeInbox         FolderType = 2
	FolderTypeDrafts        FolderType = 3
	FolderTypeDeletedItems  FolderType = 4
	FolderTypeSentItems     FolderType = 5
	FolderTypeOutbox        FolderType = 6
	FolderTypeTasks         FolderType = 7
	FolderTypeCalendar      FolderType = 8
	FolderTypeContacts      FolderType = 9
	FolderTypeNotes         FolderType = 10
	FolderTypeJournal       FolderType = 11
	FolderTypeUserMail      FolderType = 12
	FolderTypeUserCalendar  FolderType = 13
	FolderTypeUserContacts  FolderType = 14
	FolderTypeUserTasks     FolderType = 15
	FolderTypeUserJournal   FolderType = 16
	FolderTypeUserNotes     FolderType = 17
	FolderTypeUnknown       FolderType = 18
	FolderTypeRecipientInfo FolderType = 19
)

// ContentClass is the kind of items a folder holds.
type ContentClass string

const (
	ClassEmail    ContentClass = "Email"
	ClassCalendar ContentClass = "Calendar"
	ClassContacts ContentClass = "Contacts"
	ClassTasks    ContentClass = "Tasks"
	ClassNotes    ContentClass = "Notes"
	ClassSMS      ContentClass = "SMS"
)

// Class returns the content class stored in folders of type t.
func (t FolderType) Class() ContentClass {
	switch t {
	case FolderTypeTasks, FolderTypeUserTasks:
		return ClassTasks
	case FolderTypeCalendar, FolderTypeUserCalendar:
		return ClassCalendar
	case FolderTypeContacts, FolderTypeUserContacts, FolderTypeRecipientInfo:
		return ClassContacts
	case FolderTypeNotes, FolderTypeUserNotes:
		return ClassNotes
	default:
		return ClassEmail
	}
}

// BackendFolder is a folder as reported by the groupware backend.
type BackendFolder struct {
	ID       string     `json:"id"`
	ParentID string     `json:"parent_id"`
	Name     string     `json:"name"`
	Type     FolderType `json:"type"`
}

// Folder is a folder as known to one device. ID is the short logical id
// handed to the device; BackendID is the backend-native identity it maps to.
// Both are kept because backend ids are long and may not be stable enough to
// hand out directly.
type Folder struct {
	ID        string     `json:"id"`
	BackendID string     `json:"backend_id"`
	ParentID  string     `json:"parent_id"`
	Name      string     `json:"name"`
	Type      FolderType `json:"type"`
}
