// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wbxml

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies an element by code page and token id (without the content
// flag).
type Tag struct {
	Page byte
	ID   byte
}

func (t Tag) String() string {
	return TagName(t)
}

// Code pages.
const (
	PageAirSync         byte = 0
	PageContacts        byte = 1
	PageEmail           byte = 2
	PageCalendar        byte = 4
	PageFolderHierarchy byte = 7
	PagePing            byte = 13
	PageProvision       byte = 14
	PageAirSyncBase     byte = 17
)

// AirSync.
var (
	AirSyncSync              = Tag{PageAirSync, 0x05}
	AirSyncResponses         = Tag{PageAirSync, 0x06}
	AirSyncAdd               = Tag{PageAirSync, 0x07}
	AirSyncChange            = Tag{PageAirSync, 0x08}
	AirSyncDelete            = Tag{PageAirSync, 0x09}
	AirSyncFetch             = Tag{PageAirSync, 0x0A}
	AirSyncSyncKey           = Tag{PageAirSync, 0x0B}
	AirSyncClientID          = Tag{PageAirSync, 0x0C}
	AirSyncServerID          = Tag{PageAirSync, 0x0D}
	AirSyncStatus            = Tag{PageAirSync, 0x0E}
	AirSyncCollection        = Tag{PageAirSync, 0x0F}
	AirSyncClass             = Tag{PageAirSync, 0x10}
	AirSyncCollectionID      = Tag{PageAirSync, 0x12}
	AirSyncGetChanges        = Tag{PageAirSync, 0x13}
	AirSyncMoreAvailable     = Tag{PageAirSync, 0x14}
	AirSyncWindowSize        = Tag{PageAirSync, 0x15}
	AirSyncCommands          = Tag{PageAirSync, 0x16}
	AirSyncOptions           = Tag{PageAirSync, 0x17}
	AirSyncFilterType        = Tag{PageAirSync, 0x18}
	AirSyncConflict          = Tag{PageAirSync, 0x1B}
	AirSyncCollections       = Tag{PageAirSync, 0x1C}
	AirSyncApplicationData   = Tag{PageAirSync, 0x1D}
	AirSyncDeletesAsMoves    = Tag{PageAirSync, 0x1E}
	AirSyncSupported         = Tag{PageAirSync, 0x20}
	AirSyncSoftDelete        = Tag{PageAirSync, 0x21}
	AirSyncMIMESupport       = Tag{PageAirSync, 0x22}
	AirSyncMIMETruncation    = Tag{PageAirSync, 0x23}
	AirSyncWait              = Tag{PageAirSync, 0x24}
	AirSyncLimit             = Tag{PageAirSync, 0x25}
	AirSyncPartial           = Tag{PageAirSync, 0x26}
	AirSyncConversationMode  = Tag{PageAirSync, 0x27}
	AirSyncMaxItems          = Tag{PageAirSync, 0x28}
	AirSyncHeartbeatInterval = Tag{PageAirSync, 0x29}
)

// FolderHierarchy.
var (
	FolderDisplayName = Tag{PageFolderHierarchy, 0x07}
	FolderServerID    = Tag{PageFolderHierarchy, 0x08}
	FolderParentID    = Tag{PageFolderHierarchy, 0x09}
	FolderType        = Tag{PageFolderHierarchy, 0x0A}
	FolderStatus      = Tag{PageFolderHierarchy, 0x0C}
	FolderChanges     = Tag{PageFolderHierarchy, 0x0E}
	FolderAdd         = Tag{PageFolderHierarchy, 0x0F}
	FolderDelete      = Tag{PageFolderHierarchy, 0x10}
	FolderUpdate      = Tag{PageFolderHierarchy, 0x11}
	FolderSyncKey     = Tag{PageFolderHierarchy, 0x12}
	FolderFolderSync  = Tag{PageFolderHierarchy, 0x16}
	FolderCount       = Tag{PageFolderHierarchy, 0x17}
)

// Ping.
var (
	PingPing              = Tag{PagePing, 0x05}
	PingAutdState         = Tag{PagePing, 0x06}
	PingStatus            = Tag{PagePing, 0x07}
	PingHeartbeatInterval = Tag{PagePing, 0x08}
	PingFolders           = Tag{PagePing, 0x09}
	PingFolder            = Tag{PagePing, 0x0A}
	PingID                = Tag{PagePing, 0x0B}
	PingClass             = Tag{PagePing, 0x0C}
	PingMaxFolders        = Tag{PagePing, 0x0D}
)

// Provision.
var (
	ProvisionProvision                          = Tag{PageProvision, 0x05}
	ProvisionPolicies                           = Tag{PageProvision, 0x06}
	ProvisionPolicy                             = Tag{PageProvision, 0x07}
	ProvisionPolicyType                         = Tag{PageProvision, 0x08}
	ProvisionPolicyKey                          = Tag{PageProvision, 0x09}
	ProvisionData                               = Tag{PageProvision, 0x0A}
	ProvisionStatus                             = Tag{PageProvision, 0x0B}
	ProvisionRemoteWipe                         = Tag{PageProvision, 0x0C}
	ProvisionEASProvisionDoc                    = Tag{PageProvision, 0x0D}
	ProvisionDevicePasswordEnabled              = Tag{PageProvision, 0x0E}
	ProvisionAlphanumericDevicePasswordRequired = Tag{PageProvision, 0x0F}
	ProvisionRequireStorageCardEncryption       = Tag{PageProvision, 0x10}
	ProvisionPasswordRecoveryEnabled            = Tag{PageProvision, 0x11}
	ProvisionAttachmentsEnabled                 = Tag{PageProvision, 0x13}
	ProvisionMinDevicePasswordLength            = Tag{PageProvision, 0x14}
	ProvisionMaxInactivityTimeDeviceLock        = Tag{PageProvision, 0x15}
	ProvisionMaxDevicePasswordFailedAttempts    = Tag{PageProvision, 0x16}
	ProvisionMaxAttachmentSize                  = Tag{PageProvision, 0x17}
	ProvisionAllowSimpleDevicePassword          = Tag{PageProvision, 0x18}
	ProvisionDevicePasswordExpiration           = Tag{PageProvision, 0x19}
	ProvisionDevicePasswordHistory              = Tag{PageProvision, 0x1A}
)

// AirSyncBase.
var (
	BaseBodyPreference    = Tag{PageAirSyncBase, 0x05}
	BaseType              = Tag{PageAirSyncBase, 0x06}
	BaseTruncationSize    = Tag{PageAirSyncBase, 0x07}
	BaseAllOrNone         = Tag{PageAirSyncBase, 0x08}
	BaseBody              = Tag{PageAirSyncBase, 0x0A}
	BaseData              = Tag{PageAirSyncBase, 0x0B}
	BaseEstimatedDataSize = Tag{PageAirSyncBase, 0x0C}
	BaseTruncated         = Tag{PageAirSyncBase, 0x0D}
)

type codePage struct {
	name string
	tags map[byte]string
}

// dictionary covers the elements the server reads or writes. Item
// properties outside of it are dropped on output and kept under their
// numeric name on input.
var dictionary = map[byte]codePage{
	PageAirSync: {"AirSync", map[byte]string{
		0x05: "Sync", 0x06: "Responses", 0x07: "Add", 0x08: "Change", 0x09: "Delete",
		0x0A: "Fetch", 0x0B: "SyncKey", 0x0C: "ClientId", 0x0D: "ServerId", 0x0E: "Status",
		0x0F: "Collection", 0x10: "Class", 0x12: "CollectionId", 0x13: "GetChanges",
		0x14: "MoreAvailable", 0x15: "WindowSize", 0x16: "Commands", 0x17: "Options",
		0x18: "FilterType", 0x1B: "Conflict", 0x1C: "Collections", 0x1D: "ApplicationData",
		0x1E: "DeletesAsMoves", 0x20: "Supported", 0x21: "SoftDelete", 0x22: "MIMESupport",
		0x23: "MIMETruncation", 0x24: "Wait", 0x25: "Limit", 0x26: "Partial",
		0x27: "ConversationMode", 0x28: "MaxItems", 0x29: "HeartbeatInterval",
	}},
	PageContacts: {"Contacts", map[byte]string{
		0x08: "Birthday", 0x1B: "Email1Address", 0x1C: "Email2Address", 0x1E: "FileAs",
		0x1F: "FirstName", 0x28: "JobTitle", 0x29: "LastName", 0x2A: "MiddleName",
		0x2B: "MobilePhoneNumber",
	}},
	PageEmail: {"Email", map[byte]string{
		0x0F: "DateReceived", 0x11: "DisplayTo", 0x12: "Importance", 0x13: "MessageClass",
		0x14: "Subject", 0x15: "Read", 0x16: "To", 0x17: "Cc", 0x18: "From", 0x19: "ReplyTo",
	}},
	PageCalendar: {"Calendar", map[byte]string{
		0x06: "AllDayEvent", 0x11: "DtStamp", 0x12: "EndTime", 0x17: "Location",
		0x26: "Subject", 0x27: "StartTime", 0x28: "UID",
	}},
	PageFolderHierarchy: {"FolderHierarchy", map[byte]string{
		0x07: "DisplayName", 0x08: "ServerId", 0x09: "ParentId", 0x0A: "Type",
		0x0C: "Status", 0x0E: "Changes", 0x0F: "Add", 0x10: "Delete", 0x11: "Update",
		0x12: "SyncKey", 0x16: "FolderSync", 0x17: "Count",
	}},
	PagePing: {"Ping", map[byte]string{
		0x05: "Ping", 0x06: "AutdState", 0x07: "Status", 0x08: "HeartbeatInterval",
		0x09: "Folders", 0x0A: "Folder", 0x0B: "Id", 0x0C: "Class", 0x0D: "MaxFolders",
	}},
	PageProvision: {"Provision", map[byte]string{
		0x05: "Provision", 0x06: "Policies", 0x07: "Policy", 0x08: "PolicyType",
		0x09: "PolicyKey", 0x0A: "Data", 0x0B: "Status", 0x0C: "RemoteWipe",
		0x0D: "EASProvisionDoc", 0x0E: "DevicePasswordEnabled",
		0x0F: "AlphanumericDevicePasswordRequired", 0x10: "RequireStorageCardEncryption",
		0x11: "PasswordRecoveryEnabled", 0x13: "AttachmentsEnabled",
		0x14: "MinDevicePasswordLength", 0x15: "MaxInactivityTimeDeviceLock",
		0x16: "MaxDevicePasswordFailedAttempts", 0x17: "MaxAttachmentSize",
		0x18: "AllowSimpleDevicePassword", 0x19: "DevicePasswordExpiration",
		0x1A: "DevicePasswordHistory",
	}},
	PageAirSyncBase: {"AirSyncBase", map[byte]string{
		0x05: "BodyPreference", 0x06: "Type", 0x07: "TruncationSize", 0x08: "AllOrNone",
		0x0A: "Body", 0x0B: "Data", 0x0C: "EstimatedDataSize", 0x0D: "Truncated",
	}},
}

var byName = func() map[string]Tag {
	m := make(map[string]Tag)
	for page, cp := range dictionary {
		for id, name := range cp.tags {
			m[cp.name+":"+name] = Tag{Page: page, ID: id}
		}
	}
	return m
}()

// TagName returns "Page:Name" for known tags and "page:0xNN" otherwise.
func TagName(t Tag) string {
	if cp, ok := dictionary[t.Page]; ok {
		if name, ok := cp.tags[t.ID]; ok {
			return cp.name + ":" + name
		}
	}
	return fmt.Sprintf("%d:0x%02X", t.Page, t.ID)
}

// ParseTag is the inverse of TagName.
func ParseTag(name string) (Tag, bool) {
	if t, ok := byName[name]; ok {
		return t, true
	}

	page, id, found := strings.Cut(name, ":")
	if !found || !strings.HasPrefix(id, "0x") {
		return Tag{}, false
	}
	p, err := strconv.ParseUint(page, 10, 8)
	if err != nil {
		return Tag{}, false
	}
	i, err := strconv.ParseUint(id[2:], 16, 8)
	if err != nil || i > 0x3F {
		return Tag{}, false
	}
	return Tag{Page: byte(p), ID: byte(i)}, true
}
