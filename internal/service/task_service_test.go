package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
)

func statusReq(task *domain.Task, status domain.TaskStatus) *dto.UpdateTaskStatusRequest {
	return &dto.UpdateTaskStatusRequest{TaskID: task.ID, NewStatus: string(status)}
}

func strPtr(s string) *string { return &s }

func TestTaskService_UpdateTaskStatus_PredecessorScenario(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	ws := f.workspace(owner, "W")
	p := f.project(ws, nil)
	y := f.task(p, "Y", domain.TaskStatusTodo, nil)
	x := f.task(p, "X", domain.TaskStatusTodo, nil)
	f.precede(x, y)

	svc := f.taskService(uuid.Nil)
	ctx := context.Background()

	err := svc.UpdateTaskStatus(ctx, owner.ID, statusReq(x, domain.TaskStatusInProgress))
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
	assert.Contains(t, err.Error(), `"Y"`)
	assert.Equal(t, domain.TaskStatusTodo, f.reload(x).Status)
	assert.Zero(t, f.count(&domain.Activity{}, ""))

	require.NoError(t, svc.UpdateTaskStatus(ctx, owner.ID, statusReq(y, domain.TaskStatusDone)))
	require.NoError(t, svc.UpdateTaskStatus(ctx, owner.ID, statusReq(x, domain.TaskStatusInProgress)))
	assert.Equal(t, domain.TaskStatusInProgress, f.reload(x).Status)
	assert.Equal(t, int64(2), f.count(&domain.Activity{}, ""))
}

// Entering IN_PROGRESS succeeds iff every predecessor is DONE, and a
// rejected attempt leaves the task untouched.
func TestProperty_PredecessorGate(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	ws := f.workspace(owner, "W")
	svc := f.taskService(uuid.Nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	notDone := []domain.TaskStatus{
		domain.TaskStatusBacklog, domain.TaskStatusTodo, domain.TaskStatusInProgress,
		domain.TaskStatusPaused, domain.TaskStatusCanceled,
	}

	properties.Property("IN_PROGRESS accepted iff all predecessors DONE", prop.ForAll(
		func(count int, doneMask uint8) bool {
			p := f.project(ws, nil)
			task := f.task(p, "successor", domain.TaskStatusTodo, nil)

			allDone := true
			preds := make([]*domain.Task, 0, count)
			for i := 0; i < count; i++ {
				st := domain.TaskStatusDone
				if doneMask&(1<<i) == 0 {
					st = notDone[i%len(notDone)]
					allDone = false
				}
				preds = append(preds, f.task(p, "pred", st, nil))
			}
			f.precede(task, preds...)

			err := svc.UpdateTaskStatus(context.Background(), owner.ID, statusReq(task, domain.TaskStatusInProgress))
			got := f.reload(task).Status
			if allDone {
				return err == nil && got == domain.TaskStatusInProgress
			}
			return appErrorCode(err) == response.ErrCodeValidation && got == domain.TaskStatusTodo
		},
		gen.IntRange(0, 4),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}

func TestTaskService_UpdateTaskStatus_FanOut(t *testing.T) {
	tests := []struct {
		name           string
		actorIsOwner   bool
		assignToOwner  bool
		wantRecipients func(owner, bob *domain.User) []uuid.UUID
	}{
		{
			name:         "성공: owner가 변경하면 assignee에게만 알림",
			actorIsOwner: true,
			wantRecipients: func(owner, bob *domain.User) []uuid.UUID {
				return []uuid.UUID{bob.ID}
			},
		},
		{
			name:         "성공: assignee가 변경하면 owner에게만 알림",
			actorIsOwner: false,
			wantRecipients: func(owner, bob *domain.User) []uuid.UUID {
				return []uuid.UUID{owner.ID}
			},
		},
		{
			name:          "성공: actor가 owner이자 assignee이면 알림 없음",
			actorIsOwner:  true,
			assignToOwner: true,
			wantRecipients: func(owner, bob *domain.User) []uuid.UUID {
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			owner := f.user("alice")
			bob := f.user("bob")
			ws := f.workspace(owner, "W")
			f.member(ws, bob, domain.RoleNameMember, false)
			p := f.project(ws, nil)

			assignee := bob
			if tt.assignToOwner {
				assignee = owner
			}
			task := f.task(p, "Ship it", domain.TaskStatusTodo, assignee)

			actor := bob
			if tt.actorIsOwner {
				actor = owner
			}
			require.NoError(t, f.taskService(uuid.Nil).UpdateTaskStatus(context.Background(), actor.ID, statusReq(task, domain.TaskStatusPaused)))

			var got []uuid.UUID
			for _, n := range f.dispatcher.all() {
				got = append(got, n.RecipientID)
				assert.Equal(t, `changed status from "To Do" to "Paused"`, n.Verb)
				assert.Equal(t, domain.TaskTarget(task.ID), n.Target)
			}
			assert.Equal(t, tt.wantRecipients(owner, bob), got)
			assert.Equal(t, int64(len(got)), f.count(&domain.Notification{}, ""))

			var activities []domain.Activity
			require.NoError(t, f.db.Find(&activities).Error)
			require.Len(t, activities, 1)
			assert.Equal(t, actor.ID, activities[0].ActorID)
			assert.Equal(t, "TODO", activities[0].Metadata["old_status"])
			assert.Equal(t, "PAUSED", activities[0].Metadata["new_status"])
		})
	}
}

func TestTaskService_UpdateTaskStatus_ReviewComment(t *testing.T) {
	t.Run("system actor posts the review comment", func(t *testing.T) {
		f := newFixture(t)
		owner := f.user("alice")
		bot := f.user("bot")
		ws := f.workspace(owner, "W")
		task := f.task(f.project(ws, nil), "Report", domain.TaskStatusInProgress, nil)

		require.NoError(t, f.taskService(bot.ID).UpdateTaskStatus(context.Background(), owner.ID, statusReq(task, domain.TaskStatusDone)))

		var comments []domain.Comment
		require.NoError(t, f.db.Where("task_id = ?", task.ID).Find(&comments).Error)
		require.Len(t, comments, 1)
		assert.Equal(t, bot.ID, comments[0].AuthorID)
		assert.Equal(t, ReviewCommentText, comments[0].Text)
	})

	t.Run("missing system actor is logged and tolerated", func(t *testing.T) {
		f := newFixture(t)
		core, logs := observer.New(zapcore.WarnLevel)
		f.logger = zap.New(core)
		owner := f.user("alice")
		ws := f.workspace(owner, "W")
		task := f.task(f.project(ws, nil), "Report", domain.TaskStatusInProgress, nil)

		require.NoError(t, f.taskService(uuid.New()).UpdateTaskStatus(context.Background(), owner.ID, statusReq(task, domain.TaskStatusDone)))

		assert.Equal(t, domain.TaskStatusDone, f.reload(task).Status)
		assert.Zero(t, f.count(&domain.Comment{}, ""))
		assert.Equal(t, 1, logs.FilterMessage("System actor not found, skipping review comment").Len())
	})
}

func TestTaskService_UpdateTaskStatus_Errors(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	stranger := f.user("mallory")
	ws := f.workspace(owner, "W")
	task := f.task(f.project(ws, nil), "Task", domain.TaskStatusTodo, nil)
	svc := f.taskService(uuid.Nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   uuid.UUID
		req      *dto.UpdateTaskStatusRequest
		wantCode string
	}{
		{"실패: 알 수 없는 상태", owner.ID, &dto.UpdateTaskStatusRequest{TaskID: task.ID, NewStatus: "ARCHIVED"}, response.ErrCodeValidation},
		{"실패: 존재하지 않는 Task", owner.ID, &dto.UpdateTaskStatusRequest{TaskID: uuid.New(), NewStatus: "DONE"}, response.ErrCodeForbidden},
		{"실패: 워크스페이스 멤버가 아님", stranger.ID, statusReq(task, domain.TaskStatusDone), response.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateTaskStatus(ctx, tt.userID, tt.req)
			assert.Equal(t, tt.wantCode, appErrorCode(err))
			assert.Equal(t, domain.TaskStatusTodo, f.reload(task).Status)
		})
	}
}

func TestTaskService_UpdateTaskStatus_SameStatusIsNoop(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	task := f.task(f.project(f.workspace(owner, "W"), nil), "Task", domain.TaskStatusTodo, nil)

	require.NoError(t, f.taskService(uuid.Nil).UpdateTaskStatus(context.Background(), owner.ID, statusReq(task, domain.TaskStatusTodo)))
	assert.Zero(t, f.count(&domain.Activity{}, ""))
	assert.Empty(t, f.dispatcher.all())
}

// Deadline yesterday makes the project Overdue: only the owner may still act.
func TestTaskService_OverdueProjectScenario(t *testing.T) {
	f := newFixture(t)
	a := f.user("alice")
	b := f.user("bob")
	ws := f.workspace(a, "W")
	f.member(ws, b, domain.RoleNameMember, false)
	p := f.project(ws, daysFromNow(-1))
	open := f.task(p, "Still open", domain.TaskStatusTodo, b)

	svc := f.taskService(uuid.Nil)
	ctx := context.Background()

	health, _, err := projectHealth(ctx, f.store, p, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, domain.HealthOverdue, health)

	_, err = svc.CreateTask(ctx, b.ID, p.Slug, &dto.CreateTaskRequest{Title: "New"})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(err))

	err = svc.UpdateTaskStatus(ctx, b.ID, statusReq(open, domain.TaskStatusDone))
	assert.Equal(t, response.ErrCodeForbidden, appErrorCode(err))

	resp, err := svc.CreateTask(ctx, a.ID, p.Slug, &dto.CreateTaskRequest{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusBacklog, resp.Status)
	assert.Equal(t, domain.TaskPriorityMedium, resp.Priority)
}

func TestTaskService_CreateTask(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	outsider := f.user("eve")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, domain.RoleNameMember, false)
	p := f.project(ws, nil)
	other := f.project(f.workspace(owner, "Other"), nil)
	foreign := f.task(other, "Elsewhere", domain.TaskStatusDone, nil)
	pred := f.task(p, "Design", domain.TaskStatusTodo, nil)

	svc := f.taskService(uuid.Nil)
	ctx := context.Background()

	t.Run("성공: 담당자와 선행 작업을 지정하여 생성", func(t *testing.T) {
		resp, err := svc.CreateTask(ctx, bob.ID, p.Slug, &dto.CreateTaskRequest{
			Title:          "Build",
			AssigneeID:     &bob.ID,
			StartDate:      strPtr("2024-06-10"),
			DueDate:        strPtr("2024-06-20"),
			EffortPoints:   5,
			PredecessorIDs: []uuid.UUID{pred.ID, pred.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "build", resp.Slug)
		assert.Equal(t, []uuid.UUID{pred.ID}, resp.PredecessorIDs)
		assert.Equal(t, "2024-06-20", *resp.DueDate)
		require.NotNil(t, resp.Assignee)
		assert.Equal(t, bob.ID, resp.Assignee.ID)

		// bob created and is assigned: only the owner hears about it
		notifications := f.dispatcher.all()
		require.Len(t, notifications, 1)
		assert.Equal(t, owner.ID, notifications[0].RecipientID)
		assert.Equal(t, `created task "Build"`, notifications[0].Verb)
	})

	t.Run("성공: 같은 제목은 slug 접미사", func(t *testing.T) {
		resp, err := svc.CreateTask(ctx, owner.ID, p.Slug, &dto.CreateTaskRequest{Title: "Build"})
		require.NoError(t, err)
		assert.Equal(t, "build-2", resp.Slug)
	})

	failures := []struct {
		name     string
		userID   uuid.UUID
		req      *dto.CreateTaskRequest
		wantCode string
	}{
		{"실패: 멤버가 아닌 사용자", outsider.ID, &dto.CreateTaskRequest{Title: "x"}, response.ErrCodeNotFound},
		{"실패: 멤버가 아닌 담당자", owner.ID, &dto.CreateTaskRequest{Title: "x", AssigneeID: &outsider.ID}, response.ErrCodeValidation},
		{"실패: 다른 프로젝트의 선행 작업", owner.ID, &dto.CreateTaskRequest{Title: "x", PredecessorIDs: []uuid.UUID{foreign.ID}}, response.ErrCodeValidation},
		{"실패: 시작일이 마감일 이후", owner.ID, &dto.CreateTaskRequest{Title: "x", StartDate: strPtr("2024-07-01"), DueDate: strPtr("2024-06-01")}, response.ErrCodeValidation},
		{"실패: 선행 작업 미완료 상태로 IN_PROGRESS 생성", owner.ID, &dto.CreateTaskRequest{Title: "x", Status: "IN_PROGRESS", PredecessorIDs: []uuid.UUID{pred.ID}}, response.ErrCodeValidation},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, tt.userID, p.Slug, tt.req)
			assert.Equal(t, tt.wantCode, appErrorCode(err))
		})
	}
}

func TestTaskService_UpdateTask(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	carol := f.user("carol")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, domain.RoleNameMember, false)
	f.member(ws, carol, domain.RoleNameMember, false)
	p := f.project(ws, nil)
	a := f.task(p, "A", domain.TaskStatusTodo, bob)
	b := f.task(p, "B", domain.TaskStatusTodo, nil)
	f.precede(b, a)

	points := &domain.CustomField{WorkspaceID: ws.ID, Name: "Points", FieldType: domain.FieldTypeNumber}
	sprint := &domain.CustomField{
		WorkspaceID: ws.ID, Name: "Sprint", FieldType: domain.FieldTypeDropdown,
		Options: []domain.FieldOption{{Value: "S1"}, {Value: "S2", DisplayOrder: 1}},
	}
	require.NoError(t, f.store.CustomFields().Create(context.Background(), points))
	require.NoError(t, f.store.CustomFields().Create(context.Background(), sprint))

	svc := f.taskService(uuid.Nil)
	ctx := context.Background()

	t.Run("실패: 담당자도 owner도 아니면 수정 불가", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, carol.ID, a.ID, &dto.UpdateTaskRequest{Title: "A"})
		assert.Equal(t, response.ErrCodeForbidden, appErrorCode(err))
	})

	t.Run("실패: 자기 자신을 선행 작업으로 지정", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, bob.ID, a.ID, &dto.UpdateTaskRequest{Title: "A", PredecessorIDs: []uuid.UUID{a.ID}})
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
	})

	t.Run("실패: 역방향 선행 관계", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, bob.ID, a.ID, &dto.UpdateTaskRequest{Title: "A", AssigneeID: &bob.ID, PredecessorIDs: []uuid.UUID{b.ID}})
		require.Error(t, err)
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
		ids, err := f.store.Tasks().PredecessorIDs(ctx, []uuid.UUID{a.ID})
		require.NoError(t, err)
		assert.Empty(t, ids[a.ID])
	})

	t.Run("실패: 숫자가 아닌 NUMBER 값", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, bob.ID, a.ID, &dto.UpdateTaskRequest{
			Title: "A", AssigneeID: &bob.ID,
			CustomFields: map[string]string{points.ID.String(): "lots"},
		})
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
	})

	t.Run("성공: 담당자 변경과 custom field 저장", func(t *testing.T) {
		resp, err := svc.UpdateTask(ctx, bob.ID, a.ID, &dto.UpdateTaskRequest{
			Title:      "A renamed",
			Priority:   "HIGH",
			AssigneeID: &carol.ID,
			CustomFields: map[string]string{
				points.ID.String(): "8",
				sprint.ID.String(): "S2",
				uuid.NewString():   "",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "A renamed", resp.Title)
		assert.Equal(t, domain.TaskPriorityHigh, resp.Priority)
		assert.Equal(t, domain.TaskStatusTodo, resp.Status)

		notifications := f.dispatcher.all()
		require.Len(t, notifications, 2)
		assert.ElementsMatch(t, []uuid.UUID{carol.ID, owner.ID},
			[]uuid.UUID{notifications[0].RecipientID, notifications[1].RecipientID})
		assert.Equal(t, `assigned task "A renamed"`, notifications[0].Verb)

		detail, err := svc.GetTaskDetail(ctx, owner.ID, a.ID)
		require.NoError(t, err)
		byName := map[string]dto.CustomFieldValueResponse{}
		for _, v := range detail.CustomFields {
			byName[v.Name] = v
		}
		assert.Equal(t, 8.0, byName["Points"].Value)
		assert.Equal(t, "S2", byName["Sprint"].Display)
	})

	t.Run("성공: 담당자가 그대로면 알림 없음", func(t *testing.T) {
		before := len(f.dispatcher.all())
		_, err := svc.UpdateTask(ctx, owner.ID, b.ID, &dto.UpdateTaskRequest{Title: "B", PredecessorIDs: []uuid.UUID{a.ID}})
		require.NoError(t, err)
		assert.Len(t, f.dispatcher.all(), before)
		assert.Equal(t, int64(1), f.count(&domain.Activity{}, "verb = ?", `updated task "B"`))
	})
}

func TestTaskService_GetTaskDetail_TimeSummary(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, "", false)
	task := f.task(f.project(ws, nil), "Timed", domain.TaskStatusInProgress, bob)

	closedEnd := fixedNow.Add(-time.Hour)
	closed := &domain.TimeLog{TaskID: task.ID, UserID: owner.ID, StartTime: closedEnd.Add(-time.Hour), EndTime: &closedEnd}
	require.NoError(t, f.db.Create(closed).Error)
	open := &domain.TimeLog{TaskID: task.ID, UserID: bob.ID, StartTime: fixedNow.Add(-30*time.Minute)}
	require.NoError(t, f.store.TimeLogs().Open(context.Background(), open))

	svc := f.taskService(uuid.Nil)

	detail, err := svc.GetTaskDetail(context.Background(), bob.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "1h 0m", detail.TimeSummary.TotalLoggedTime)
	assert.Equal(t, int64(3600), detail.TimeSummary.TotalSeconds)
	assert.True(t, detail.TimeSummary.InProgress)
	require.NotNil(t, detail.ActiveTimer)
	assert.Equal(t, open.ID, detail.ActiveTimer.ID)
	assert.True(t, detail.CanEdit)

	ownerView, err := svc.GetTaskDetail(context.Background(), owner.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, ownerView.ActiveTimer)
	assert.True(t, ownerView.CanEdit)
}
