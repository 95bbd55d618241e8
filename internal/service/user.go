package service

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/queue"
	"chirpnet/internal/repository"
)

// Suggestion sizing: sample a wide pool, return a short list after
// filtering out accounts the caller already follows.
const (
	suggestedSampleSize = 10
	suggestedCount      = 2
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService handles accounts: signup, login, profile management and
// the social graph queries hanging off a user document.
type UserService struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenManager
	media     Uploader
	publisher queue.Publisher
}

func NewUserService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	media Uploader,
	publisher queue.Publisher,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokens:    tokens,
		media:     media,
		publisher: publisher,
	}
}

// Signup validates the request, creates the account and returns it with
// a signed session token. Checks run in a fixed order so clients see
// the same first error every time: email format, email taken, username
// taken, password length.
func (s *UserService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, model.ErrInvalidEmail
	}

	emailTaken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, model.ErrEmailExists
	}

	usernameTaken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, model.ErrUsernameExists
	}

	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Fullname: req.Fullname,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     auth.RoleBasic,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[UserService] Signup OK: user=%s username=%s", user.ID.Hex(), user.Username)
	return &model.AuthResponse{User: user, Token: token}, nil
}

// Login authenticates by email. Unknown email and wrong password both
// map to ErrInvalidCredentials so the response does not reveal which
// part failed.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

// Me returns the caller's own account.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (*model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Profile returns any user's account by id.
func (s *UserService) Profile(ctx context.Context, id auth.Identity, userID bson.ObjectID) (*model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, id auth.Identity) ([]model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	if err := auth.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.FindAll(ctx)
}

// Followers resolves a user's follower list to summaries.
func (s *UserService) Followers(ctx context.Context, id auth.Identity, userID bson.ObjectID) ([]model.UserSummary, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetSummariesByIDs(ctx, user.Followers)
}

// Following resolves a user's following list to summaries.
func (s *UserService) Following(ctx context.Context, id auth.Identity, userID bson.ObjectID) ([]model.UserSummary, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetSummariesByIDs(ctx, user.Following)
}

// Suggested samples random accounts and returns a couple the caller
// does not follow yet.
func (s *UserService) Suggested(ctx context.Context, id auth.Identity) ([]model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	caller, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followed := make(map[bson.ObjectID]bool, len(caller.Following))
	for _, f := range caller.Following {
		followed[f] = true
	}

	sampled, err := s.userRepo.Sample(ctx, userID, suggestedSampleSize)
	if err != nil {
		return nil, err
	}

	suggested := make([]model.User, 0, suggestedCount)
	for _, candidate := range sampled {
		if followed[candidate.ID] {
			continue
		}
		suggested = append(suggested, candidate)
		if len(suggested) == suggestedCount {
			break
		}
	}
	return suggested, nil
}

// Update patches the caller's own account. Empty request fields leave
// the stored value untouched. A password change requires both the
// current and the new password; profile images are re-uploaded and the
// previous object destroyed.
func (s *UserService) Update(ctx context.Context, id auth.Identity, req model.UpdateUserRequest) (*model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CurrentPassword != "" || req.NewPassword != "" {
		if req.CurrentPassword == "" || req.NewPassword == "" {
			return nil, model.ErrPasswordPairRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return nil, model.ErrWrongPassword
		}
		if len(req.NewPassword) < model.MinPasswordLength {
			return nil, model.ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if req.Fullname != "" {
		user.Fullname = req.Fullname
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if req.ProfileImg != "" {
		if err := s.media.Destroy(ctx, user.ProfileImgKey); err != nil {
			log.Printf("[UserService] Failed to destroy old profile image: user=%s err=%v", id.UserID, err)
		}
		uploaded, err := s.media.Upload(ctx, req.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = uploaded.URL
		user.ProfileImgKey = uploaded.Key
	}
	if req.CoverImg != "" {
		if err := s.media.Destroy(ctx, user.CoverImgKey); err != nil {
			log.Printf("[UserService] Failed to destroy old cover image: user=%s err=%v", id.UserID, err)
		}
		uploaded, err := s.media.Upload(ctx, req.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = uploaded.URL
		user.CoverImgKey = uploaded.Key
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Admin only. The account document goes
// synchronously; posts, comments, replies and mirror list entries are
// cleaned up by the cascade worker.
func (s *UserService) Delete(ctx context.Context, id auth.Identity, userID bson.ObjectID) (*model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	if err := auth.RequireRole(id, auth.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.DeleteByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.media.Destroy(ctx, user.ProfileImgKey); err != nil {
		log.Printf("[UserService] Failed to destroy profile image: user=%s err=%v", userID.Hex(), err)
	}
	if err := s.media.Destroy(ctx, user.CoverImgKey); err != nil {
		log.Printf("[UserService] Failed to destroy cover image: user=%s err=%v", userID.Hex(), err)
	}

	event := queue.NewUserDeletedEvent(userID.Hex())
	if _, err := s.publisher.Publish(ctx, queue.StreamCascade, event); err != nil {
		// Account is gone; the cascade can be replayed from the stream.
		log.Printf("[UserService] Failed to publish UserDeleted event: user=%s err=%v", userID.Hex(), err)
	}

	return user, nil
}
