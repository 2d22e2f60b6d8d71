package dto

// DashboardResponse is the landing view of a user
// @Description atRiskTasks and overdueTasks are only present for PMO members
type DashboardResponse struct {
	OwnedWorkspaces  []WorkspaceResponse `json:"owned_workspaces"`
	SharedWorkspaces []WorkspaceResponse `json:"shared_workspaces"`
	MyTasks          []TaskSummary       `json:"my_tasks"`
	IsPMO            bool                `json:"is_pmo"`
	AtRiskTasks      []TaskSummary       `json:"at_risk_tasks,omitempty"`
	OverdueTasks     []TaskSummary       `json:"overdue_tasks,omitempty"`
}
