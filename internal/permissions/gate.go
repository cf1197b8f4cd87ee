package permissions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrForbidden   = errors.New("permissions: forbidden")
	ErrUnavailable = errors.New("permissions: resolution unavailable")
)

// Outcomes reported to a Recorder.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

// Principal is the authenticated caller as read from a verified token.
type Principal struct {
	UserID int64
	Role   string
}

// Checker answers point permission queries. *Resolver implements it.
type Checker interface {
	HasPermission(ctx context.Context, userID int64, role, permission string) (bool, error)
}

// Recorder receives one observation per gate decision.
type Recorder interface {
	Observe(permission, outcome string)
}

// Gate is the per-request precondition check in front of protected operations.
// It holds no per-request state.
type Gate struct {
	checker  Checker
	logger   *zap.SugaredLogger
	recorder Recorder
}

// NewGate builds a gate. logger and recorder may be nil.
func NewGate(checker Checker, logger *zap.SugaredLogger, recorder Recorder) *Gate {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Gate{checker: checker, logger: logger, recorder: recorder}
}

// Authorize returns nil when p may use permission, ErrForbidden when it may not,
// and an error wrapping ErrUnavailable when the decision could not be made.
// Callers must treat any non-nil result as a denial.
func (g *Gate) Authorize(ctx context.Context, p Principal, permission string) error {
	allowed, err := g.checker.HasPermission(ctx, p.UserID, p.Role, permission)
	if err != nil {
		g.observe(permission, OutcomeError)
		g.logger.Errorw("authorization check failed",
			"user_id", p.UserID, "role", p.Role, "permission", permission, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !allowed {
		g.observe(permission, OutcomeDenied)
		if v, ok := g.checker.(interface{ IsValidPermission(string) bool }); ok && !v.IsValidPermission(permission) {
			g.logger.Warnw("route requires a permission missing from the catalog", "permission", permission)
		}
		g.logger.Infow("authorization denied", "user_id", p.UserID, "role", p.Role, "permission", permission)
		return ErrForbidden
	}
	g.observe(permission, OutcomeAllowed)
	return nil
}

func (g *Gate) observe(permission, outcome string) {
	if g.recorder != nil {
		g.recorder.Observe(permission, outcome)
	}
}
