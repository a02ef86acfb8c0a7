package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// UpdateProfile persists profile changes and merges them into the container.
// The profile has no calendar representation, so the store write is the only
// network step.
func (o *Orchestrator) UpdateProfile(ctx context.Context, patch store.UserPatch) *Outcome {
	if patch.Name != nil && *patch.Name == "" {
		err := &store.ValidationError{Field: "name", Reason: "is required"}
		return failure("Profile not updated", err.Error(), err)
	}

	if err := o.users.Update(ctx, o.user.ID, patch); err != nil {
		o.log.Error("profile update failed", zap.Error(err))
		return failure("Profile not updated", "The change could not be saved. Try again.", err)
	}

	apply := func(u *models.User) {
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Name != nil {
			u.Name = patch.Name
		}
		if patch.AvatarURL != nil {
			u.AvatarURL = patch.AvatarURL
		}
	}
	apply(o.user)
	o.container.UpdateProfile(apply)

	return success("Profile updated", "Your profile was saved.")
}
