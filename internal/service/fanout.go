package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/repository"
)

// Event is one audited action. It always produces a single Activity and
// one Notification per recipient left after removing the actor.
type Event struct {
	WorkspaceID uuid.UUID
	ProjectID   *uuid.UUID
	ActorID     uuid.UUID
	Verb        string
	// NotifyVerb overrides Verb on the notifications
	NotifyVerb string
	Target     domain.TargetRef
	Metadata   map[string]interface{}
	Recipients []uuid.UUID
}

// Recipients builds {assignee, owner} minus the actor, assignee first
func Recipients(assignee *uuid.UUID, owner, actor uuid.UUID) []uuid.UUID {
	candidates := make([]uuid.UUID, 0, 2)
	if assignee != nil && *assignee != uuid.Nil {
		candidates = append(candidates, *assignee)
	}
	candidates = append(candidates, owner)
	return excludeActor(candidates, actor)
}

func excludeActor(ids []uuid.UUID, actor uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range removeDuplicateUUIDs(ids) {
		if id != actor && id != uuid.Nil {
			out = append(out, id)
		}
	}
	return out
}

// recordEvent writes the activity and notifications of ev through tx and
// returns the notifications for dispatch after commit
func recordEvent(ctx context.Context, tx repository.Store, ev Event, now time.Time) ([]*domain.Notification, error) {
	activity := &domain.Activity{
		WorkspaceID: ev.WorkspaceID,
		ProjectID:   ev.ProjectID,
		ActorID:     ev.ActorID,
		Verb:        ev.Verb,
		Target:      ev.Target,
		CreatedAt:   now,
	}
	if len(ev.Metadata) > 0 {
		activity.Metadata = datatypes.JSONMap(ev.Metadata)
	}
	if err := tx.Activities().Create(ctx, activity); err != nil {
		return nil, err
	}

	verb := ev.NotifyVerb
	if verb == "" {
		verb = ev.Verb
	}

	recipients := excludeActor(ev.Recipients, ev.ActorID)
	if len(recipients) == 0 {
		return nil, nil
	}

	notifications := make([]*domain.Notification, 0, len(recipients))
	for _, id := range recipients {
		notifications = append(notifications, &domain.Notification{
			RecipientID: id,
			ActorID:     ev.ActorID,
			WorkspaceID: ev.WorkspaceID,
			Verb:        verb,
			Target:      ev.Target,
			CreatedAt:   now,
		})
	}
	if err := tx.Notifications().CreateBatch(ctx, notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
