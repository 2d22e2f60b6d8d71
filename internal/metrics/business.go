package metrics

// IncrementWorkspaceCreated increments workspace creation counter
func (m *Metrics) IncrementWorkspaceCreated() {
	m.safeExecute("IncrementWorkspaceCreated", func() {
		m.WorkspaceCreatedTotal.Inc()
	})
}

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// RecordTaskTransition counts an accepted status change
func (m *Metrics) RecordTaskTransition(from, to string) {
	m.safeExecute("RecordTaskTransition", func() {
		m.TaskTransitionsTotal.WithLabelValues(from, to).Inc()
	})
}

// RecordTaskTransitionRejected counts a refused status change by reason
func (m *Metrics) RecordTaskTransitionRejected(reason string) {
	m.safeExecute("RecordTaskTransitionRejected", func() {
		m.TaskTransitionsRejected.WithLabelValues(reason).Inc()
	})
}

// AddNotificationsCreated adds n fan-out notifications
func (m *Metrics) AddNotificationsCreated(n int) {
	m.safeExecute("AddNotificationsCreated", func() {
		m.NotificationsCreatedTotal.Add(float64(n))
	})
}

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementInvitationSent increments the sent invitations counter
func (m *Metrics) IncrementInvitationSent() {
	m.safeExecute("IncrementInvitationSent", func() {
		m.InvitationsSentTotal.Inc()
	})
}

// IncrementInvitationAccepted increments the accepted invitations counter
func (m *Metrics) IncrementInvitationAccepted() {
	m.safeExecute("IncrementInvitationAccepted", func() {
		m.InvitationsAcceptedTotal.Inc()
	})
}

// RecordTimeLogToggle counts a timer start or stop
func (m *Metrics) RecordTimeLogToggle(action string) {
	m.safeExecute("RecordTimeLogToggle", func() {
		m.TimeLogTogglesTotal.WithLabelValues(action).Inc()
	})
}

// SetWorkspacesTotal sets total workspaces gauge
func (m *Metrics) SetWorkspacesTotal(count int64) {
	m.safeExecute("SetWorkspacesTotal", func() {
		m.WorkspacesTotal.Set(float64(count))
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}

// SetOpenTimeLogs sets the running time logs gauge
func (m *Metrics) SetOpenTimeLogs(count int64) {
	m.safeExecute("SetOpenTimeLogs", func() {
		m.OpenTimeLogs.Set(float64(count))
	})
}
