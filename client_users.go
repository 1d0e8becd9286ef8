package pmAuth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/pmAuth/internal/flows"
	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

var errUserIDRequired = errors.New("user id required")

// ListUsers describes the listusers operation and its observable behavior.
//
// ListUsers is admin-only and gated before the request is sent.
func (c *Client) ListUsers(ctx context.Context) ([]session.User, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	ctx = ensureRequestID(ctx)

	if err := c.checkGate(ctx, adminOnly, "list_users"); err != nil {
		return nil, err
	}
	users, err := flows.RunListUsers(ctx, c.deps.Users)
	if err != nil {
		c.countRequestFailure(err)
		return nil, err
	}
	c.metricInc(MetricUsersListed)
	return users, nil
}

// ChangeUserRole describes the changeuserrole operation and its observable behavior.
//
// The new role is applied by the backend; the local session is not updated
// even when userID is the signed-in user.
func (c *Client) ChangeUserRole(ctx context.Context, userID string, role permission.Role) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	ctx = ensureRequestID(ctx)

	if err := c.checkGate(ctx, adminOnly, "change_user_role"); err != nil {
		return err
	}
	if err := validateTarget(userID); err != nil {
		return err
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, permission.ErrRoleInvalid)
	}

	if err := flows.RunChangeUserRole(ctx, userID, role, c.deps.Users); err != nil {
		c.countRequestFailure(err)
		c.emitAudit(ctx, auditEventUserRoleChanged, false, c.actorID(), "", err, func() map[string]string {
			return map[string]string{"target_user_id": userID, "role": role.String()}
		})
		return err
	}

	c.metricInc(MetricUserRoleChanged)
	c.emitAudit(ctx, auditEventUserRoleChanged, true, c.actorID(), "", nil, func() map[string]string {
		return map[string]string{"target_user_id": userID, "role": role.String()}
	})
	return nil
}

// ChangeUserStatus describes the changeuserstatus operation and its observable behavior.
func (c *Client) ChangeUserStatus(ctx context.Context, userID string, status permission.AccountStatus) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	ctx = ensureRequestID(ctx)

	if err := c.checkGate(ctx, adminOnly, "change_user_status"); err != nil {
		return err
	}
	if err := validateTarget(userID); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, permission.ErrStatusInvalid)
	}

	if err := flows.RunChangeUserStatus(ctx, userID, status, c.deps.Users); err != nil {
		c.countRequestFailure(err)
		c.emitAudit(ctx, auditEventUserStatusChanged, false, c.actorID(), "", err, func() map[string]string {
			return map[string]string{"target_user_id": userID, "status": status.String()}
		})
		return err
	}

	c.metricInc(MetricUserStatusChanged)
	c.emitAudit(ctx, auditEventUserStatusChanged, true, c.actorID(), "", nil, func() map[string]string {
		return map[string]string{"target_user_id": userID, "status": status.String()}
	})
	return nil
}

// ToggleUserStatus flips user between ACTIVE and INACTIVE based on the status
// last fetched, and returns the status requested.
func (c *Client) ToggleUserStatus(ctx context.Context, user session.User) (permission.AccountStatus, error) {
	next := user.Status.Toggled()
	if err := c.ChangeUserStatus(ctx, user.ID, next); err != nil {
		return "", err
	}
	return next, nil
}

func validateTarget(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errUserIDRequired)
	}
	return nil
}
