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

const (
	alreadyMemberWarning = "You are already a member of this workspace"
	acceptedNotifyVerb   = "accepted your invitation to join the team"
)

// errAlreadyMember rolls back an acceptance that lost the membership race
var errAlreadyMember = errors.New("already a member")

// InvitationService defines the interface for the invitation flow
type InvitationService interface {
	SendInvitation(ctx context.Context, userID uuid.UUID, slug string, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error)
	AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.AcceptInvitationResponse, error)
}

type invitationServiceImpl struct {
	store      repository.Store
	dispatcher Dispatcher
	mailer     client.Mailer
	linkBase   string
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        Clock
}

// NewInvitationService creates a new instance of InvitationService.
// Links are built as <publicBaseURL><basePath>/invitations/accept/<token>.
func NewInvitationService(store repository.Store, dispatcher Dispatcher, mailer client.Mailer, publicBaseURL, basePath string, m *metrics.Metrics, logger *zap.Logger) InvitationService {
	return &invitationServiceImpl{
		store:      store,
		dispatcher: dispatcher,
		mailer:     mailer,
		linkBase:   strings.TrimRight(publicBaseURL, "/") + basePath + "/invitations/accept/",
		metrics:    m,
		logger:     logger,
		now:        systemClock,
	}
}

// SendInvitation invites an email address to the workspace. Only the owner
// may invite, and neither members nor already invited addresses qualify.
func (s *invitationServiceImpl) SendInvitation(ctx context.Context, userID uuid.UUID, slug string, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check existing membership
	invitee, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("Failed to look up invitee", err)
	}
	if invitee != nil {
		member, err := isWorkspaceMember(ctx, s.store, invitee.ID, ws)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, conflict(fmt.Sprintf("%s is already a member of this workspace", email))
		}
	}

	pending, err := s.store.Invitations().HasPending(ctx, ws.ID, email)
	if err != nil {
		return nil, internal("Failed to check invitations", err)
	}
	if pending {
		return nil, conflict(fmt.Sprintf("%s has already been invited", email))
	}

	invitation := &domain.Invitation{
		WorkspaceID: ws.ID,
		SenderID:    userID,
		Email:       email,
		Token:       uuid.NewString(),
		CreatedAt:   s.now(),
	}
	if err := s.store.Invitations().Create(ctx, invitation); err != nil {
		return nil, internal("Failed to create invitation", err)
	}
	s.metrics.IncrementInvitationSent()

	senderName := userID.String()
	if sender, err := s.store.Users().FindByID(ctx, userID); err == nil {
		senderName = sender.FullName()
	}
	mail := client.InvitationMail{
		To:            email,
		WorkspaceName: ws.Name,
		SenderName:    senderName,
		Link:          s.linkBase + invitation.Token,
	}
	if err := s.mailer.SendInvitation(ctx, mail); err != nil {
		s.logger.Warn("Failed to deliver invitation",
			zap.String("invitation_id", invitation.ID.String()),
			zap.Error(err),
		)
	}

	return &dto.InvitationResponse{
		ID:          invitation.ID,
		WorkspaceID: ws.ID,
		Email:       invitation.Email,
		IsAccepted:  false,
		CreatedAt:   invitation.CreatedAt,
	}, nil
}

// AcceptInvitation consumes a pending token and makes the caller a member
// with the Member role. A caller who is already a member gets a warning
// and the invitation stays pending.
func (s *invitationServiceImpl) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.AcceptInvitationResponse, error) {
	var (
		ws            *domain.Workspace
		joined        bool
		notifications []*domain.Notification
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		invitation, err := tx.Invitations().FindPendingByTokenForUpdate(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Invitation")
			}
			return err
		}
		ws, err = tx.Workspaces().FindByID(ctx, invitation.WorkspaceID)
		if err != nil {
			return err
		}

		member, err := isWorkspaceMember(ctx, tx, userID, ws)
		if err != nil {
			return err
		}
		if member {
			return nil
		}

		role, err := tx.Roles().GetOrCreate(ctx, ws.ID, domain.RoleNameMember, false)
		if err != nil {
			return err
		}
		now := s.now()
		if err := tx.Memberships().Create(ctx, &domain.Membership{
			UserID:      userID,
			WorkspaceID: ws.ID,
			RoleID:      &role.ID,
			JoinedAt:    now,
		}); err != nil {
			if repository.IsDuplicateKey(err) {
				return errAlreadyMember
			}
			return err
		}

		accepted, err := tx.Invitations().MarkAccepted(ctx, invitation.ID)
		if err != nil {
			return err
		}
		if !accepted {
			return notFound("Invitation")
		}

		notifications, err = recordEvent(ctx, tx, Event{
			WorkspaceID: ws.ID,
			ActorID:     userID,
			Verb:        fmt.Sprintf("joined the team %q", ws.Name),
			NotifyVerb:  acceptedNotifyVerb,
			Target:      domain.WorkspaceTarget(ws.ID),
			Recipients:  []uuid.UUID{ws.OwnerID},
		}, now)
		if err != nil {
			return err
		}
		joined = true
		return nil
	})
	if errors.Is(err, errAlreadyMember) {
		err, joined = nil, false
	}
	if err != nil {
		return nil, passThrough("Failed to accept invitation", err)
	}

	resp := &dto.AcceptInvitationResponse{Joined: joined, Workspace: dto.NewWorkspaceResponse(ws)}
	if !joined {
		resp.Warning = alreadyMemberWarning
		return resp, nil
	}

	s.dispatcher.Dispatch(ctx, notifications)
	s.metrics.IncrementInvitationAccepted()
	s.logger.Info("Invitation accepted",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return resp, nil
}
