// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ImportOptions tell an importer how to treat device changes.
type ImportOptions struct {
	// Conflict follows the protocol values: 0 the device wins, 1 the
	// server wins.
	Conflict       int
	DeletesAsMoves bool
}

// Conflict resolution values.
const (
	ConflictClientWins = 0
	ConflictServerWins = 1
)

// ClientCommandType enumerates the operations a device may submit inside a
// Sync collection.
type ClientCommandType int

const (
	CommandAdd ClientCommandType = iota + 1
	CommandChange
	CommandDelete
	CommandFetch
)

func (c ClientCommandType) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandChange:
		return "change"
	case CommandDelete:
		return "delete"
	case CommandFetch:
		return "fetch"
	}
	return "unknown"
}

// ClientCommand is one device-submitted operation. Adds carry a ClientID,
// every other command a ServerID.
type ClientCommand struct {
	Type     ClientCommandType
	ClientID string
	ServerID string
	Item     Item
}

// SyncOptions are the per-collection options of a Sync request. Has* fields
// tell an absent value from a zero one.
type SyncOptions struct {
	FilterType      int
	HasFilterType   bool
	Conflict        int
	HasConflict     bool
	MIMESupport     int
	MIMETruncation  int
	TruncationSize  int
	BodyPreferences []BodyPreference
}

// SyncCollectionRequest is one Collection element of a Sync request.
type SyncCollectionRequest struct {
	SyncKey        string
	CollectionID   string
	Class          ContentClass
	GetChanges     *bool
	WindowSize     int
	DeletesAsMoves *bool
	Options        *SyncOptions
	Commands       []ClientCommand
}

// HasCommands reports whether the collection submits any operation.
func (c SyncCollectionRequest) HasCommands() bool {
	return len(c.Commands) > 0
}

// SyncRequest is a decoded Sync command.
type SyncRequest struct {
	// Empty is set when the device sent no body at all.
	Empty             bool
	Collections       []SyncCollectionRequest
	Wait              int
	HasWait           bool
	HeartbeatInterval int
	HasHeartbeat      bool
	WindowSize        int
	Partial           bool
}

// CommandResult is the server answer to one ClientCommand.
type CommandResult struct {
	Type     ClientCommandType
	ClientID string
	ServerID string
	Status   int
	// Item is set for successful fetches.
	Item *Item
}

// SyncCollectionResponse is one Collection element of a Sync response.
type SyncCollectionResponse struct {
	SyncKey       string
	CollectionID  string
	Class         ContentClass
	Status        int
	Responses     []CommandResult
	Changes       []Change
	MoreAvailable bool
}

// PingFolder is one folder of a Ping request.
type PingFolder struct {
	ID    string
	Class ContentClass
}

// PingRequest is a decoded Ping command. A zero HeartbeatInterval and no
// folders mean "same as last time".
type PingRequest struct {
	HeartbeatInterval int
	Folders           []PingFolder
}

// PingResponse is the result of a Ping command. HeartbeatInterval and
// MaxFolders are only set with the statuses that report a limit.
type PingResponse struct {
	Status            int
	Folders           []string
	HeartbeatInterval int
	MaxFolders        int
}

// ProvisionRequest is a decoded Provision command.
type ProvisionRequest struct {
	PolicyType string
	PolicyKey  string
	// Status is the device's acknowledgement status of the policy.
	Status int
	// RemoteWipeStatus is set when the device acknowledges a wipe.
	RemoteWipeStatus    int
	HasRemoteWipeStatus bool
	DeviceInformation   map[string]string
}

// ProvisionResponse is the result of a Provision command.
type ProvisionResponse struct {
	Status       int
	PolicyType   string
	PolicyStatus int
	PolicyKey    string
	// Policy is sent in the first phase only.
	Policy     *Policy
	RemoteWipe bool
}

// FolderSyncRequest is a decoded FolderSync command.
type FolderSyncRequest struct {
	SyncKey string
}

// FolderSyncResponse is the result of a FolderSync command.
type FolderSyncResponse struct {
	Status  int
	SyncKey string
	Adds    []Folder
	Updates []Folder
	Deletes []string
}
