package filestore

import (
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/filepolicy"
)

// Reject reasons reported to clients.
const (
	ReasonUnsafeName     = "unsafe_name"
	ReasonDisallowedType = "disallowed_type"
	ReasonQuotaExceeded  = "quota_exceeded"
)

// RejectError is a policy refusal of an upload. It unwraps to the matching
// sentinel in package common.
type RejectError struct {
	Reason  string
	Name    string
	Message string
}

func (e *RejectError) Error() string {
	return e.Message
}

func (e *RejectError) Unwrap() error {
	switch e.Reason {
	case ReasonUnsafeName:
		return common.ErrUnsafeName
	case ReasonDisallowedType:
		return common.ErrDisallowedType
	case ReasonQuotaExceeded:
		return common.ErrQuotaExceeded
	}
	return nil
}

func unsafeName(name string) *RejectError {
	return &RejectError{
		Reason:  ReasonUnsafeName,
		Name:    name,
		Message: fmt.Sprintf("file name %q is not allowed", name),
	}
}

func disallowedType(name string) *RejectError {
	return &RejectError{
		Reason:  ReasonDisallowedType,
		Name:    name,
		Message: fmt.Sprintf("%s: uploading a %s is not allowed", name, filepolicy.DescribeType(name)),
	}
}

func quotaExceeded(name string, size, available int64) *RejectError {
	return &RejectError{
		Reason: ReasonQuotaExceeded,
		Name:   name,
		Message: fmt.Sprintf("%s: storage quota exceeded, file is %s but only %s is available",
			name, common.FormatFileSize(size), common.FormatFileSize(available)),
	}
}
