package businessflow

import (
	"context"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	"github.com/JakubKrejcir/alza-cost-control/app/services"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"golang.org/x/crypto/bcrypt"
)

// ClientMetadata carries request-level client information into the flows
type ClientMetadata struct {
	IPAddress string
	UserAgent string
}

// NewClientMetadata creates client metadata from request information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// AuthFlow handles user authentication
type AuthFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionToken string) error
	// Authenticate resolves a session token to its user, checking the
	// session store first and falling back to the persisted session row.
	Authenticate(ctx context.Context, sessionToken string) (*models.User, error)
}

// AuthFlowImpl implements the authentication flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.UserSessionRepository
	tokenService services.TokenService
	sessionStore services.SessionStore
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	tokenService services.TokenService,
	sessionStore services.SessionStore,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
		sessionStore: sessionStore,
	}
}

func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := af.userRepo.ByUsername(ctx, request.Username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "Invalid username or password", ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, NewBusinessError("USER_INACTIVE", "Account is inactive", ErrUserInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Invalid username or password", ErrIncorrectPassword)
	}

	token, err := af.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	now := utils.UTCNow()
	expiresAt := now.Add(utils.SessionTTL)

	session := &models.UserSession{
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			session.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			session.UserAgent = &metadata.UserAgent
		}
	}
	if err := af.sessionRepo.Save(ctx, session); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if err := af.sessionStore.Create(ctx, token, user.ID, expiresAt); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	_ = af.userRepo.UpdateLastLogin(ctx, user.ID, now)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role.String(),
		},
	}, nil
}

func (af *AuthFlowImpl) Logout(ctx context.Context, sessionToken string) error {
	if err := af.sessionStore.Evict(ctx, sessionToken); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}
	if err := af.sessionRepo.Revoke(ctx, sessionToken, utils.UTCNow()); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}
	return nil
}

func (af *AuthFlowImpl) Authenticate(ctx context.Context, sessionToken string) (*models.User, error) {
	if _, err := af.tokenService.ValidateToken(sessionToken); err != nil {
		return nil, NewBusinessError("SESSION_INVALID", "Session is invalid", ErrSessionNotFound)
	}

	entry, err := af.sessionStore.Lookup(ctx, sessionToken)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Session lookup failed", err)
	}

	var userID uint
	if entry != nil {
		userID = entry.UserID
	} else {
		// The store may have restarted; the persisted session row is the
		// source of truth.
		session, err := af.sessionRepo.ByToken(ctx, sessionToken)
		if err != nil {
			return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Session lookup failed", err)
		}
		if session == nil {
			return nil, NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
		}
		if !session.IsValid() {
			return nil, NewBusinessError("SESSION_EXPIRED", "Session has expired", ErrSessionExpired)
		}
		userID = session.UserID
		_ = af.sessionStore.Create(ctx, sessionToken, userID, session.ExpiresAt)
	}

	user, err := af.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Session lookup failed", err)
	}
	if user == nil || !user.IsActive {
		return nil, NewBusinessError("USER_INACTIVE", "Account is inactive", ErrUserInactive)
	}
	return user, nil
}
