package core

// error_messages.go maps errors to user-facing messages with support codes.
//
// # Catalog error kinds (CAT001-CAT005)
//
//	CAT001 - Not found: the product, review or record does not exist
//	CAT002 - Invalid argument: bad import mode, mismatched asset files, etc.
//	CAT003 - Concurrency conflict: inventory/pricing changed since it was read
//	CAT004 - Constraint: duplicate sku or a dangling reference
//	CAT005 - Internal: an uploaded file or payload could not be read
//
// # Infrastructure patterns (DB, IMP, RATE)
//
// Errors that carry no catalog kind, or whose kind is Internal, are matched by
// message against errorPatterns first, so a lost connection still reports
// DB004 rather than a bare CAT005.
//
//	DB004 - connection refused     DB005 - connection reset
//	DB006 - timeout                DB007 - deadlock
//	IMP001 - too many concurrent imports
//	IMP002 - unsupported charset
//	RATE001 - rate limit exceeded

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/catalog/internal/catalog"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type kindMessage struct {
	kind error
	msg  UserMessage
}

// kindMessages is checked in order; the first kind err wraps wins.
var kindMessages = []kindMessage{
	{catalog.ErrConcurrencyConflict, UserMessage{
		Message: "The record was changed by someone else",
		Action:  "Reload it and apply your change again",
		Code:    "CAT003",
	}},
	{catalog.ErrNotFound, UserMessage{
		Message: "The requested record does not exist",
		Action:  "Check the id and try again",
		Code:    "CAT001",
	}},
	{catalog.ErrInvalidArgument, UserMessage{
		Message: "The request is not valid",
		Action:  "Correct the highlighted input and resubmit",
		Code:    "CAT002",
	}},
	{catalog.ErrConstraint, UserMessage{
		Message: "The change conflicts with existing data",
		Action:  "Check for a duplicate SKU or a missing category, brand or product",
		Code:    "CAT004",
	}},
}

var internalMessage = UserMessage{
	Message: "The uploaded data could not be processed",
	Action:  "Check the file and try again",
	Code:    "CAT005",
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains. More
// specific patterns come first.
var errorPatterns = []errorPattern{
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"deadline exceeded", UserMessage{
		Message: "Operation timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "DB006",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "DB006",
	}},
	{"deadlock", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB007",
	}},
	{"too many concurrent imports", UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}},
	{"unsupported charset", UserMessage{
		Message: "The file encoding is not supported",
		Action:  "Use UTF-8, windows-1252, windows-1251 or iso-8859-1",
		Code:    "IMP002",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

// defaultMessage is the ERR000 fallback for errors nothing else matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-facing message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	kind := catalog.Kind(err)

	if kind == nil || kind == catalog.ErrInternal || kind == catalog.ErrInvalidArgument {
		for _, ep := range errorPatterns {
			if strings.Contains(errStr, ep.pattern) {
				return ep.msg
			}
		}
	}

	for _, km := range kindMessages {
		if errors.Is(err, km.kind) {
			return km.msg
		}
	}
	if kind == catalog.ErrInternal {
		return internalMessage
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
