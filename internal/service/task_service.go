package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
)

// ReviewCommentText is posted by the system actor when a task is finished
const ReviewCommentText = "Task finished, pending review"

// Rejection reasons recorded on the transition metrics
const (
	rejectPredecessorsIncomplete = "predecessors_incomplete"
	rejectProjectLocked          = "project_locked"
	rejectInvalidStatus          = "invalid_status"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, projectSlug string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTaskDetail(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskDetailResponse, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskStatusRequest) error
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	store       repository.Store
	dispatcher  Dispatcher
	fields      *FieldRegistry
	s3Client    client.S3ClientInterface
	systemActor uuid.UUID
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         Clock
}

// NewTaskService creates a new instance of TaskService. systemActor is the
// user that posts the review comment; uuid.Nil disables it.
func NewTaskService(store repository.Store, dispatcher Dispatcher, fields *FieldRegistry, s3Client client.S3ClientInterface, systemActor uuid.UUID, m *metrics.Metrics, logger *zap.Logger) TaskService {
	return &taskServiceImpl{
		store:       store,
		dispatcher:  dispatcher,
		fields:      fields,
		s3Client:    s3Client,
		systemActor: systemActor,
		metrics:     m,
		logger:      logger,
		now:         systemClock,
	}
}

// taskForMember loads a task with its project and workspace. Tasks the
// caller cannot see are reported as not found.
func taskForMember(ctx context.Context, st repository.Store, userID, taskID uuid.UUID) (*domain.Task, policy.Subject, error) {
	task, err := st.Tasks().FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.Subject{}, notFound("Task")
		}
		return nil, policy.Subject{}, internal("Failed to load task", err)
	}
	sub, err := subjectIn(ctx, st, userID, task.Project.Workspace)
	if err != nil {
		return nil, policy.Subject{}, err
	}
	if !sub.IsMember() {
		return nil, policy.Subject{}, notFound("Task")
	}
	return task, sub, nil
}

func taskVerb(action string, t *domain.Task) string {
	return fmt.Sprintf("%s %q", action, t.Title)
}

// CreateTask adds a task to the project and notifies the assignee and owner
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, projectSlug string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	project, sub, err := projectForMember(ctx, s.store, userID, projectSlug)
	if err != nil {
		return nil, err
	}
	health, _, err := projectHealth(ctx, s.store, project, s.now())
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionInteract, policy.Resource{Health: health}); !d.Allowed() {
		return nil, forbidden(d)
	}

	status := domain.TaskStatusBacklog
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, validation(fmt.Sprintf("Invalid task status: %s", req.Status))
		}
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(startDate, dueDate); err != nil {
		return nil, err
	}

	if err := s.validateAssignee(ctx, req.AssigneeID, project.Workspace); err != nil {
		return nil, err
	}

	predecessors, err := s.loadPredecessors(ctx, project.ID, req.PredecessorIDs)
	if err != nil {
		return nil, err
	}
	if status == domain.TaskStatusInProgress {
		probe := &domain.Task{Predecessors: predecessors}
		if pending := probe.IncompletePredecessors(); len(pending) > 0 {
			return nil, predecessorsNotDone(pending)
		}
	}

	title := strings.TrimSpace(req.Title)
	task := &domain.Task{
		ProjectID:    project.ID,
		Title:        title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		AssigneeID:   req.AssigneeID,
		StartDate:    startDate,
		DueDate:      dueDate,
		EffortPoints: req.EffortPoints,
	}
	predecessorIDs := make([]uuid.UUID, 0, len(predecessors))
	for _, p := range predecessors {
		predecessorIDs = append(predecessorIDs, p.ID)
	}

	var notifications []*domain.Notification
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		slug, err := uniqueSlug(slugify(title), func(c string) (bool, error) {
			return tx.Tasks().SlugExists(ctx, project.ID, c)
		})
		if err != nil {
			return err
		}
		task.Slug = slug

		if err := tx.Tasks().Create(ctx, task); err != nil {
			return err
		}
		if err := tx.Tasks().ReplacePredecessors(ctx, task.ID, predecessorIDs); err != nil {
			return err
		}

		notifications, err = recordEvent(ctx, tx, Event{
			WorkspaceID: project.WorkspaceID,
			ProjectID:   &project.ID,
			ActorID:     userID,
			Verb:        taskVerb("created task", task),
			Target:      domain.TaskTarget(task.ID),
			Recipients:  Recipients(task.AssigneeID, project.Workspace.OwnerID, userID),
		}, s.now())
		return err
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict("A task with this title was just created, try again")
		}
		return nil, passThrough("Failed to create task", err)
	}

	s.dispatcher.Dispatch(ctx, notifications)
	s.metrics.IncrementTaskCreated()
	s.logger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("project_id", project.ID.String()),
		zap.Int("notifications", len(notifications)),
	)

	users, err := userMap(ctx, s.store, assigneeIDs([]*domain.Task{task}))
	if err != nil {
		return nil, err
	}
	return dto.NewTaskResponse(task, users, predecessorIDs), nil
}

func parsePriority(raw string) (domain.TaskPriority, error) {
	if raw == "" {
		return domain.TaskPriorityMedium, nil
	}
	p := domain.TaskPriority(raw)
	if !p.IsValid() {
		return "", validation(fmt.Sprintf("Invalid task priority: %s", raw))
	}
	return p, nil
}

// validateAssignee requires the assignee to be a member of the workspace
func (s *taskServiceImpl) validateAssignee(ctx context.Context, assigneeID *uuid.UUID, ws *domain.Workspace) error {
	if assigneeID == nil {
		return nil
	}
	ok, err := isWorkspaceMember(ctx, s.store, *assigneeID, ws)
	if err != nil {
		return err
	}
	if !ok {
		return validation("Assignee must be a member of the workspace")
	}
	return nil
}

// loadPredecessors resolves the requested predecessors, all of which must
// belong to projectID
func (s *taskServiceImpl) loadPredecessors(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]*domain.Task, error) {
	ids = removeDuplicateUUIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	tasks, err := s.store.Tasks().FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal("Failed to load predecessors", err)
	}
	if len(tasks) != len(ids) {
		return nil, validation("Predecessor task not found")
	}
	for _, t := range tasks {
		if t.ProjectID != projectID {
			return nil, validation("Predecessors must belong to the same project")
		}
	}
	return tasks, nil
}

func predecessorsNotDone(pending []*domain.Task) error {
	titles := make([]string, 0, len(pending))
	for _, p := range pending {
		titles = append(titles, fmt.Sprintf("%q", p.Title))
	}
	return validation("Cannot start this task until its predecessors are done: " + strings.Join(titles, ", "))
}

// GetTaskDetail returns the task with everything its page shows
func (s *taskServiceImpl) GetTaskDetail(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskDetailResponse, error) {
	task, sub, err := taskForMember(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}
	project := task.Project

	health, progress, err := projectHealth(ctx, s.store, project, s.now())
	if err != nil {
		return nil, err
	}
	canEdit := sub.Authorize(policy.ActionEditTask, policy.Resource{Health: health, AssigneeID: task.AssigneeID}).Allowed()

	predecessors, err := s.store.Tasks().FindPredecessors(ctx, task.ID)
	if err != nil {
		return nil, internal("Failed to load predecessors", err)
	}
	customFields, err := s.customFieldValues(ctx, task)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListByTask(ctx, task.ID)
	if err != nil {
		return nil, internal("Failed to load comments", err)
	}
	logs, err := s.store.TimeLogs().ListByTask(ctx, task.ID)
	if err != nil {
		return nil, internal("Failed to load time logs", err)
	}

	ids := assigneeIDs(append([]*domain.Task{task}, predecessors...))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	users, err := userMap(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	predecessorIDs := make([]uuid.UUID, 0, len(predecessors))
	for _, p := range predecessors {
		predecessorIDs = append(predecessorIDs, p.ID)
	}

	var active *dto.ActiveTimerResponse
	for i := range logs {
		if logs[i].UserID == userID && logs[i].IsRunning() {
			active = &dto.ActiveTimerResponse{ID: logs[i].ID, StartTime: logs[i].StartTime}
		}
	}
	summary := domain.SummarizeTimeLogs(logs)

	return &dto.TaskDetailResponse{
		Task:         dto.NewTaskResponse(task, users, predecessorIDs),
		Project:      dto.NewProjectSummary(project, health, progress),
		Predecessors: taskSummaries(predecessors, users),
		CustomFields: customFields,
		Comments:     commentResponses(comments, users, s.s3Client),
		CanEdit:      canEdit,
		ActiveTimer:  active,
		TimeSummary: dto.TimeSummaryResponse{
			TotalLoggedTime: domain.FormatDuration(summary.Total),
			TotalSeconds:    int64(summary.Total.Seconds()),
			InProgress:      summary.InProgress,
		},
	}, nil
}

// customFieldValues renders every field of the workspace, unset ones with a nil value
func (s *taskServiceImpl) customFieldValues(ctx context.Context, task *domain.Task) ([]dto.CustomFieldValueResponse, error) {
	fields, err := s.store.CustomFields().ListByWorkspace(ctx, task.Project.WorkspaceID)
	if err != nil {
		return nil, internal("Failed to load custom fields", err)
	}
	values, err := s.store.CustomFields().ListValuesByTask(ctx, task.ID)
	if err != nil {
		return nil, internal("Failed to load custom field values", err)
	}

	byField := make(map[uuid.UUID]*domain.CustomFieldValue, len(values))
	for _, v := range values {
		byField[v.FieldID] = v
	}

	out := make([]dto.CustomFieldValueResponse, 0, len(fields))
	for _, f := range fields {
		if v, ok := byField[f.ID]; ok {
			out = append(out, renderFieldValue(f, v))
			continue
		}
		out = append(out, dto.CustomFieldValueResponse{FieldID: f.ID, Name: f.Name, FieldType: f.FieldType})
	}
	return out, nil
}

// UpdateTask replaces the editable fields of a task. Only the workspace
// owner or the assignee may edit, and never while the project is locked.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, sub, err := taskForMember(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}
	project := task.Project

	health, _, err := projectHealth(ctx, s.store, project, s.now())
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionEditTask, policy.Resource{Health: health, AssigneeID: task.AssigneeID}); !d.Allowed() {
		return nil, forbidden(d)
	}

	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := validateDateRange(startDate, dueDate); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, req.AssigneeID, project.Workspace); err != nil {
		return nil, err
	}

	predecessorIDs, err := s.validatePredecessors(ctx, task, req.PredecessorIDs)
	if err != nil {
		return nil, err
	}
	fieldValues, err := s.parseCustomFields(ctx, project.WorkspaceID, req.CustomFields)
	if err != nil {
		return nil, err
	}

	var notifications []*domain.Notification
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := tx.Tasks().FindByIDForUpdate(ctx, task.ID)
		if err != nil {
			return err
		}
		previousAssignee := current.AssigneeID

		current.Title = strings.TrimSpace(req.Title)
		current.Description = req.Description
		current.Priority = priority
		current.AssigneeID = req.AssigneeID
		current.StartDate = startDate
		current.DueDate = dueDate
		current.EffortPoints = req.EffortPoints
		if err := tx.Tasks().Update(ctx, current); err != nil {
			return err
		}
		if err := tx.Tasks().ReplacePredecessors(ctx, current.ID, predecessorIDs); err != nil {
			return err
		}

		for fieldID, v := range fieldValues {
			row := &domain.CustomFieldValue{TaskID: current.ID, FieldID: fieldID}
			v.Apply(row)
			if err := tx.CustomFields().UpsertValue(ctx, row); err != nil {
				return err
			}
		}

		ev := Event{
			WorkspaceID: project.WorkspaceID,
			ProjectID:   &project.ID,
			ActorID:     userID,
			Verb:        taskVerb("updated task", current),
			Target:      domain.TaskTarget(current.ID),
		}
		if assigneeChanged(previousAssignee, current.AssigneeID) {
			ev.NotifyVerb = taskVerb("assigned task", current)
			ev.Recipients = Recipients(current.AssigneeID, project.Workspace.OwnerID, userID)
		}
		notifications, err = recordEvent(ctx, tx, ev, s.now())
		if err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		return nil, passThrough("Failed to update task", err)
	}

	s.dispatcher.Dispatch(ctx, notifications)
	s.logger.Info("Task updated",
		zap.String("task_id", task.ID.String()),
		zap.Int("custom_fields", len(fieldValues)),
	)

	users, err := userMap(ctx, s.store, assigneeIDs([]*domain.Task{task}))
	if err != nil {
		return nil, err
	}
	return dto.NewTaskResponse(task, users, predecessorIDs), nil
}

func assigneeChanged(before, after *uuid.UUID) bool {
	if before == nil || after == nil {
		return before != after
	}
	return *before != *after
}

// validatePredecessors rejects self references, tasks of other projects and
// direct cycles: B cannot precede A while A precedes B
func (s *taskServiceImpl) validatePredecessors(ctx context.Context, task *domain.Task, ids []uuid.UUID) ([]uuid.UUID, error) {
	ids = removeDuplicateUUIDs(ids)
	for _, id := range ids {
		if id == task.ID {
			return nil, validation("A task cannot be its own predecessor")
		}
	}

	predecessors, err := s.loadPredecessors(ctx, task.ProjectID, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range predecessors {
		cyclic, err := s.store.Tasks().IsPredecessorOf(ctx, task.ID, p.ID)
		if err != nil {
			return nil, internal("Failed to check dependencies", err)
		}
		if cyclic {
			return nil, validation(fmt.Sprintf("%q already depends on this task", p.Title))
		}
	}
	return ids, nil
}

// parseCustomFields converts the submitted raw values keyed by field ID.
// Empty values are skipped.
func (s *taskServiceImpl) parseCustomFields(ctx context.Context, workspaceID uuid.UUID, raw map[string]string) (map[uuid.UUID]FieldValue, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	fields, err := s.store.CustomFields().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, internal("Failed to load custom fields", err)
	}
	byID := make(map[uuid.UUID]*domain.CustomField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	out := make(map[uuid.UUID]FieldValue, len(raw))
	for key, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, validation(fmt.Sprintf("Unknown custom field: %s", key))
		}
		field, ok := byID[id]
		if !ok {
			return nil, validation(fmt.Sprintf("Unknown custom field: %s", key))
		}
		v, err := s.fields.Parse(field, value)
		if err != nil {
			return nil, validation(fmt.Sprintf("Invalid value for %s: %v", field.Name, err))
		}
		out[id] = v
	}
	return out, nil
}

// UpdateTaskStatus moves a task to another status. Entering IN_PROGRESS
// requires every predecessor to be DONE; the task and its predecessors stay
// locked until the transaction ends. An unknown or invisible task is
// reported as forbidden.
func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskStatusRequest) error {
	newStatus := domain.TaskStatus(req.NewStatus)
	if !newStatus.IsValid() {
		s.metrics.RecordTaskTransitionRejected(rejectInvalidStatus)
		return validation(fmt.Sprintf("Invalid task status: %s", req.NewStatus))
	}

	denied := forbidden(policy.DeniedNotMember)
	var (
		oldStatus     domain.TaskStatus
		notifications []*domain.Notification
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		task, err := tx.Tasks().FindByIDForUpdate(ctx, req.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return denied
			}
			return err
		}
		project, err := tx.Projects().FindByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		sub, err := subjectIn(ctx, tx, userID, project.Workspace)
		if err != nil {
			return err
		}
		if !sub.IsMember() {
			return denied
		}

		now := s.now()
		health, _, err := projectHealth(ctx, tx, project, now)
		if err != nil {
			return err
		}
		if d := sub.Authorize(policy.ActionInteract, policy.Resource{Health: health}); !d.Allowed() {
			s.metrics.RecordTaskTransitionRejected(rejectProjectLocked)
			return forbidden(d)
		}

		oldStatus = task.Status
		if oldStatus == newStatus {
			return nil
		}

		if newStatus == domain.TaskStatusInProgress {
			task.Predecessors, err = tx.Tasks().FindPredecessorsForUpdate(ctx, task.ID)
			if err != nil {
				return err
			}
			if pending := task.IncompletePredecessors(); len(pending) > 0 {
				s.metrics.RecordTaskTransitionRejected(rejectPredecessorsIncomplete)
				return predecessorsNotDone(pending)
			}
		}

		if err := tx.Tasks().UpdateStatus(ctx, task.ID, newStatus); err != nil {
			return err
		}
		task.Status = newStatus

		if newStatus == domain.TaskStatusDone {
			if err := s.postReviewComment(ctx, tx, task); err != nil {
				return err
			}
		}

		notifications, err = recordEvent(ctx, tx, Event{
			WorkspaceID: project.WorkspaceID,
			ProjectID:   &project.ID,
			ActorID:     userID,
			Verb:        fmt.Sprintf("changed status from %q to %q", oldStatus.Label(), newStatus.Label()),
			Target:      domain.TaskTarget(task.ID),
			Metadata: map[string]interface{}{
				"old_status": string(oldStatus),
				"new_status": string(newStatus),
			},
			Recipients: Recipients(task.AssigneeID, project.Workspace.OwnerID, userID),
		}, now)
		return err
	})
	if err != nil {
		return passThrough("Failed to update task status", err)
	}
	if oldStatus == newStatus {
		return nil
	}

	s.dispatcher.Dispatch(ctx, notifications)
	s.metrics.RecordTaskTransition(string(oldStatus), string(newStatus))
	s.logger.Info("Task status changed",
		zap.String("task_id", req.TaskID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// postReviewComment adds the system actor's review comment. A missing or
// unknown system actor is logged and skipped.
func (s *taskServiceImpl) postReviewComment(ctx context.Context, tx repository.Store, task *domain.Task) error {
	if s.systemActor == uuid.Nil {
		s.logger.Warn("System actor not configured, skipping review comment", zap.String("task_id", task.ID.String()))
		return nil
	}
	if _, err := tx.Users().FindByID(ctx, s.systemActor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("System actor not found, skipping review comment",
				zap.String("task_id", task.ID.String()),
				zap.String("system_actor_id", s.systemActor.String()),
			)
			return nil
		}
		return err
	}
	return tx.Comments().Create(ctx, &domain.Comment{
		TaskID:   task.ID,
		AuthorID: s.systemActor,
		Text:     ReviewCommentText,
	})
}
