package sai

import (
	"errors"
	"fmt"
)

// Status is the SAI status code, shared by every operation
type Status int32

// SAI status codes
const (
	StatusSuccess                   Status = 0
	StatusFailure                   Status = -1
	StatusNotSupported              Status = -2
	StatusNoMemory                  Status = -3
	StatusInsufficientResources     Status = -4
	StatusInvalidParameter          Status = -5
	StatusItemAlreadyExists         Status = -6
	StatusItemNotFound              Status = -7
	StatusBufferOverflow            Status = -8
	StatusUninitialized             Status = -12
	StatusTableFull                 Status = -13
	StatusMandatoryAttributeMissing Status = -14
	StatusNotImplemented            Status = -15
	StatusAddrNotFound              Status = -16
	StatusObjectInUse               Status = -17
	StatusInvalidObjectType         Status = -18
	StatusInvalidObjectID           Status = -19
)

// attribute indexed status ranges, the index is subtracted from the base
const (
	StatusInvalidAttribute0   Status = -0x00010000
	StatusInvalidAttrValue0   Status = -0x00020000
	StatusAttrNotImplemented0 Status = -0x00030000
	StatusUnknownAttribute0   Status = -0x00040000
	StatusAttrNotSupported0   Status = -0x00050000

	attrStatusRange = 0x10000
)

var statusNames = map[Status]string{
	StatusSuccess:                   "SAI_STATUS_SUCCESS",
	StatusFailure:                   "SAI_STATUS_FAILURE",
	StatusNotSupported:              "SAI_STATUS_NOT_SUPPORTED",
	StatusNoMemory:                  "SAI_STATUS_NO_MEMORY",
	StatusInsufficientResources:     "SAI_STATUS_INSUFFICIENT_RESOURCES",
	StatusInvalidParameter:          "SAI_STATUS_INVALID_PARAMETER",
	StatusItemAlreadyExists:         "SAI_STATUS_ITEM_ALREADY_EXISTS",
	StatusItemNotFound:              "SAI_STATUS_ITEM_NOT_FOUND",
	StatusBufferOverflow:            "SAI_STATUS_BUFFER_OVERFLOW",
	StatusUninitialized:             "SAI_STATUS_UNINITIALIZED",
	StatusTableFull:                 "SAI_STATUS_TABLE_FULL",
	StatusMandatoryAttributeMissing: "SAI_STATUS_MANDATORY_ATTRIBUTE_MISSING",
	StatusNotImplemented:            "SAI_STATUS_NOT_IMPLEMENTED",
	StatusAddrNotFound:              "SAI_STATUS_ADDR_NOT_FOUND",
	StatusObjectInUse:               "SAI_STATUS_OBJECT_IN_USE",
	StatusInvalidObjectType:         "SAI_STATUS_INVALID_OBJECT_TYPE",
	StatusInvalidObjectID:           "SAI_STATUS_INVALID_OBJECT_ID",
}

var attrStatusNames = map[Status]string{
	StatusInvalidAttribute0:   "SAI_STATUS_INVALID_ATTRIBUTE",
	StatusInvalidAttrValue0:   "SAI_STATUS_INVALID_ATTR_VALUE",
	StatusAttrNotImplemented0: "SAI_STATUS_ATTR_NOT_IMPLEMENTED",
	StatusUnknownAttribute0:   "SAI_STATUS_UNKNOWN_ATTRIBUTE",
	StatusAttrNotSupported0:   "SAI_STATUS_ATTR_NOT_SUPPORTED",
}

// StatusInvalidAttribute for attribute at index
func StatusInvalidAttribute(index int) Status {
	return StatusInvalidAttribute0 - Status(index)
}

// StatusInvalidAttrValue for attribute at index
func StatusInvalidAttrValue(index int) Status {
	return StatusInvalidAttrValue0 - Status(index)
}

// StatusAttrNotImplemented for attribute at index
func StatusAttrNotImplemented(index int) Status {
	return StatusAttrNotImplemented0 - Status(index)
}

// StatusUnknownAttribute for attribute at index
func StatusUnknownAttribute(index int) Status {
	return StatusUnknownAttribute0 - Status(index)
}

// StatusAttrNotSupported for attribute at index
func StatusAttrNotSupported(index int) Status {
	return StatusAttrNotSupported0 - Status(index)
}

// attrBase returns the range base of an attribute indexed status
func (s Status) attrBase() (Status, bool) {
	if s > StatusInvalidAttribute0 || s <= StatusAttrNotSupported0-attrStatusRange {
		return 0, false
	}
	base := -((-s) / attrStatusRange * attrStatusRange)
	return base, true
}

// AttrIndex returns the attribute index carried by s,
// false when s is not an attribute indexed status
func (s Status) AttrIndex() (int, bool) {
	base, ok := s.attrBase()
	if !ok {
		return 0, false
	}
	return int(base - s), true
}

// Is reports whether s belongs to the same code (or attribute range) as target
func (s Status) Is(target error) bool {
	t, ok := target.(Status)
	if !ok {
		return false
	}
	if s == t {
		return true
	}
	b1, ok1 := s.attrBase()
	b2, ok2 := t.attrBase()
	return ok1 && ok2 && b1 == b2 && t == b2
}

// IsSuccess status
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	if base, ok := s.attrBase(); ok {
		return fmt.Sprintf("%s_%d", attrStatusNames[base], base-s)
	}
	return fmt.Sprintf("SAI_STATUS_%d", int32(s))
}

func (s Status) Error() string {
	return s.String()
}

// Err returns nil for success and s otherwise
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return s
}

// StatusOf recover the SAI status from an error chain,
// non SAI errors map to StatusFailure
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusFailure
}
