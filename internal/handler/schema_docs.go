package handler

import (
	"nexus-project-api/internal/client"
	"nexus-project-api/internal/dto"
)

// This file exists solely to ensure DTO schemas that no handler returns
// directly are still included in the Swagger definitions.

// SchemaDocumentation references the payloads pushed over the notification
// stream and the nested task/project views
type SchemaDocumentation struct {
	NotificationEvent client.NotificationEvent `json:"notificationEvent"`
	TaskSummary       dto.TaskSummary          `json:"taskSummary"`
	ProjectSummary    dto.ProjectSummary       `json:"projectSummary"`
	GanttTask         dto.GanttTask            `json:"ganttTask"`
	WorkloadEntry     dto.WorkloadEntry        `json:"workloadEntry"`
}

// GetSchemaDocumentation is a dummy handler that will never be called
// It exists only to make swag parse the SchemaDocumentation struct
// @Summary      Schema Documentation (Not a real endpoint)
// @Description  This endpoint does not exist. It's used to document DTO schemas.
// @Tags         internal
// @Produce      json
// @Success      200 {object} SchemaDocumentation
// @Router       /internal/schemas [get]
func GetSchemaDocumentation() {
	// This function is never called - it exists only for swagger documentation
}
