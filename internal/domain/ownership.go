package domain

// Owned is implemented by resources that record the user who created them.
type Owned interface {
	OwnerID() int64
}

// AssertOwnership returns ErrUnauthorized unless userID created the resource.
// Every write path that needs an ownership check goes through here.
func AssertOwnership(resource Owned, userID int64, message string) error {
	if resource == nil || resource.OwnerID() != userID {
		return NewError(ErrUnauthorized, message)
	}
	return nil
}
