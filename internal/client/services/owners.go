package services

import (
	"strings"

	"github.com/gnode/gcaeditor/internal/client/models"
)

// OwnerTracking is implemented by session objects that know who may edit the
// current abstract.
type OwnerTracking interface {
	Owners() []*models.Owner
	IsOwner(mail string) bool
}

// OwnerTracker holds the owner list of the abstract being edited.
type OwnerTracker struct {
	owners []*models.Owner
}

// Owners returns a copy of the owner list.
func (t *OwnerTracker) Owners() []*models.Owner {
	out := make([]*models.Owner, len(t.owners))
	copy(out, t.owners)
	return out
}

// IsOwner matches mail case-insensitively against the owner addresses.
func (t *OwnerTracker) IsOwner(mail string) bool {
	for _, o := range t.owners {
		if strings.EqualFold(models.Deref(o.Mail), mail) {
			return true
		}
	}
	return false
}

func (t *OwnerTracker) setOwners(owners []*models.Owner) {
	t.owners = owners
}
