package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/response"
)

// Clock returns the current time; tests replace it
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func notFound(what string) *response.AppError {
	return response.NewAppError(response.ErrCodeNotFound, what+" not found", "")
}

func forbidden(d policy.Decision) *response.AppError {
	return response.NewAppError(response.ErrCodeForbidden, "Permission denied", d.Reason())
}

func validation(message string) *response.AppError {
	return response.NewAppError(response.ErrCodeValidation, message, "")
}

func conflict(message string) *response.AppError {
	return response.NewAppError(response.ErrCodeConflict, message, "")
}

func internal(message string, err error) *response.AppError {
	return response.NewAppError(response.ErrCodeInternal, message, err.Error())
}

// passThrough keeps an AppError raised inside a transaction closure and
// wraps anything else as an internal error
func passThrough(message string, err error) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return internal(message, err)
}

// removeDuplicateUUIDs removes duplicate UUIDs from a slice
func removeDuplicateUUIDs(uuids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	result := make([]uuid.UUID, 0, len(uuids))

	for _, id := range uuids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}

	return result
}

// parseDate parses an optional YYYY-MM-DD value into a UTC date
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, validation(fmt.Sprintf("%s must use the YYYY-MM-DD format", field))
	}
	return &t, nil
}

// validateDateRange validates that startDate is not after dueDate
func validateDateRange(startDate, dueDate *time.Time) error {
	if startDate != nil && dueDate != nil && startDate.After(*dueDate) {
		return validation("Start date cannot be after due date")
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s and joins its alphanumeric runs with dashes
func slugify(s string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		slug = "item"
	}
	if len(slug) > 150 {
		slug = strings.TrimRight(slug[:150], "-")
	}
	return slug
}

// uniqueSlug appends -2, -3, ... to base until exists reports false
func uniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// subjectIn loads the caller's membership in ws
func subjectIn(ctx context.Context, st repository.Store, userID uuid.UUID, ws *domain.Workspace) (policy.Subject, error) {
	m, err := st.Memberships().FindByUserAndWorkspace(ctx, userID, ws.ID)
	if err != nil {
		return policy.Subject{}, internal("Failed to load membership", err)
	}
	return policy.Subject{UserID: userID, Workspace: ws, Membership: m}, nil
}

// workspaceBySlug resolves a workspace the caller belongs to. Workspaces
// the caller cannot see are reported as not found.
func workspaceBySlug(ctx context.Context, st repository.Store, userID uuid.UUID, slug string) (*domain.Workspace, policy.Subject, error) {
	ws, err := st.Workspaces().FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.Subject{}, notFound("Workspace")
		}
		return nil, policy.Subject{}, internal("Failed to load workspace", err)
	}
	sub, err := subjectIn(ctx, st, userID, ws)
	if err != nil {
		return nil, policy.Subject{}, err
	}
	if !sub.IsMember() {
		return nil, policy.Subject{}, notFound("Workspace")
	}
	return ws, sub, nil
}

// projectHealth derives health and progress for one project
func projectHealth(ctx context.Context, st repository.Store, p *domain.Project, now time.Time) (domain.HealthStatus, int, error) {
	counts, err := st.Projects().TaskCounts(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return "", 0, internal("Failed to count tasks", err)
	}
	c := counts[p.ID]
	return c.Health(p.Deadline, now), c.Progress(), nil
}

// userMap loads the users with the given IDs, skipping unknown ones
func userMap(ctx context.Context, st repository.Store, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	ids = removeDuplicateUUIDs(ids)
	users, err := st.Users().FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal("Failed to load users", err)
	}
	m := make(map[uuid.UUID]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}

func assigneeIDs(tasks []*domain.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		if t.AssigneeID != nil {
			ids = append(ids, *t.AssigneeID)
		}
	}
	return ids
}

func taskSummaries(tasks []*domain.Task, users map[uuid.UUID]*domain.User) []dto.TaskSummary {
	out := make([]dto.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.NewTaskSummary(t, users))
	}
	return out
}
