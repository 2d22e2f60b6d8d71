package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/repository"
)

// Recipients never contains the actor or a duplicate, and keeps the
// assignee ahead of the owner.
func TestProperty_RecipientsExcludeActor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Three identities; each role picks one of them so collisions are common
	pool := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	properties.Property("actor is never notified", prop.ForAll(
		func(assigneeIdx, ownerIdx, actorIdx int, hasAssignee bool) bool {
			var assignee *uuid.UUID
			if hasAssignee {
				assignee = &pool[assigneeIdx]
			}
			owner, actor := pool[ownerIdx], pool[actorIdx]

			got := Recipients(assignee, owner, actor)

			seen := map[uuid.UUID]bool{}
			for _, id := range got {
				if id == actor || seen[id] {
					return false
				}
				seen[id] = true
			}
			if owner != actor && !seen[owner] {
				return false
			}
			if assignee != nil && *assignee != actor {
				if !seen[*assignee] || got[0] != *assignee {
					return false
				}
			}
			return len(got) <= 2
		},
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestRecordEvent(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	ws := f.workspace(owner, "W")
	p := f.project(ws, nil)
	target := domain.TaskTarget(uuid.New())

	var notifications []*domain.Notification
	err := f.store.Transaction(context.Background(), func(tx repository.Store) error {
		var err error
		notifications, err = recordEvent(context.Background(), tx, Event{
			WorkspaceID: ws.ID,
			ProjectID:   &p.ID,
			ActorID:     owner.ID,
			Verb:        "commented on task",
			Target:      target,
			Metadata:    map[string]interface{}{"comment_id": "c1"},
			Recipients:  []uuid.UUID{bob.ID, owner.ID, bob.ID},
		}, fixedNow)
		return err
	})
	require.NoError(t, err)

	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].RecipientID)
	assert.Equal(t, target, notifications[0].Target)
	assert.NotEqual(t, uuid.Nil, notifications[0].ID)
	assert.Equal(t, int64(1), f.count(&domain.Activity{}, ""))
	assert.Equal(t, int64(1), f.count(&domain.Notification{}, "recipient_id = ?", bob.ID))
}

func TestRecordEvent_RollsBackWithTransaction(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	ws := f.workspace(owner, "W")

	err := f.store.Transaction(context.Background(), func(tx repository.Store) error {
		if _, err := recordEvent(context.Background(), tx, Event{
			WorkspaceID: ws.ID,
			ActorID:     owner.ID,
			Verb:        "did something",
			Recipients:  []uuid.UUID{bob.ID},
		}, fixedNow); err != nil {
			return err
		}
		return validation("abort")
	})
	require.Error(t, err)
	assert.Zero(t, f.count(&domain.Activity{}, ""))
	assert.Zero(t, f.count(&domain.Notification{}, ""))
}
