// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PolicyTypeWBXML is the only policy type handed to devices.
const PolicyTypeWBXML = "MS-EAS-Provisioning-WBXML"

// Policy is the device security policy sent during provisioning.
type Policy struct {
	DevicePasswordEnabled              bool `json:"device_password_enabled" yaml:"device_password_enabled"`
	AlphanumericDevicePasswordRequired bool `json:"alphanumeric_device_password_required" yaml:"alphanumeric_device_password_required"`
	PasswordRecoveryEnabled            bool `json:"password_recovery_enabled" yaml:"password_recovery_enabled"`
	RequireStorageCardEncryption       bool `json:"require_storage_card_encryption" yaml:"require_storage_card_encryption"`
	AttachmentsEnabled                 bool `json:"attachments_enabled" yaml:"attachments_enabled"`
	MinDevicePasswordLength            int  `json:"min_device_password_length" yaml:"min_device_password_length"`
	MaxInactivityTimeDeviceLock        int  `json:"max_inactivity_time_device_lock" yaml:"max_inactivity_time_device_lock"`
	MaxDevicePasswordFailedAttempts    int  `json:"max_device_password_failed_attempts" yaml:"max_device_password_failed_attempts"`
	MaxAttachmentSize                  int  `json:"max_attachment_size" yaml:"max_attachment_size"`
	AllowSimpleDevicePassword          bool `json:"allow_simple_device_password" yaml:"allow_simple_device_password"`
	DevicePasswordExpiration           int  `json:"device_password_expiration" yaml:"device_password_expiration"`
	DevicePasswordHistory              int  `json:"device_password_history" yaml:"device_password_history"`
}
