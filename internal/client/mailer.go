package client

import (
	"context"

	"go.uber.org/zap"
)

// InvitationMail is the message sent to an invitee
type InvitationMail struct {
	To            string
	WorkspaceName string
	SenderName    string
	Link          string
}

// Mailer delivers invitation links
type Mailer interface {
	SendInvitation(ctx context.Context, mail InvitationMail) error
}

// LogMailer writes the invitation link to the log instead of sending email
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendInvitation(ctx context.Context, mail InvitationMail) error {
	m.logger.Info("Invitation link generated",
		zap.String("to", mail.To),
		zap.String("workspace", mail.WorkspaceName),
		zap.String("sender", mail.SenderName),
		zap.String("link", mail.Link),
	)
	return nil
}
