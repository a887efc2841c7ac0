// Package access holds the visibility rules shared by the clipboard
// collections.
package access

// Policy decides who may see and change a record.
type Policy struct{}

// CanView reports whether requester may read a record owned by owner.
// Public records are visible to every authenticated user.
func (Policy) CanView(requester, owner string, isPublic bool) bool {
	return isPublic || (requester != "" && requester == owner)
}

// CanModify reports whether requester may update or delete the record.
func (Policy) CanModify(requester, owner string) bool {
	return requester != "" && requester == owner
}
