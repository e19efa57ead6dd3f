package service

import "layman-go/internal/domain"

// CompleteAccessRights merges a partially-specified access-rights change
// with the full defaults. A right absent from partial (nil slice, or
// partial itself nil) falls back to the default; a present right replaces
// the default verbatim, no union is performed.
func CompleteAccessRights(partial *domain.AccessRightsUpdate, defaults domain.AccessRights) domain.AccessRights {
	full := defaults
	if partial == nil {
		return full
	}
	if partial.Read != nil {
		full.Read = partial.Read
	}
	if partial.Write != nil {
		full.Write = partial.Write
	}
	return full
}
