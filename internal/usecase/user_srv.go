package usecase

import (
	"context"
	"fmt"
	"time"

	"home-services/internal/data/entity"
	"home-services/internal/data/repository"
	"home-services/internal/dto/request"
	"home-services/internal/dto/response"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, actorID, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) find(ctx context.Context, userID string) (*entity.User, error) {
	if !utils.IsObjectID(userID) {
		return nil, notFound("user not found")
	}

	user, err := us.userRepo.FindByID(ctx, utils.NormalizeObjectID(userID))
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

// UpdateUser changes role and blocked flag. Admins cannot demote or block themselves.
func (us *userService) UpdateUser(ctx context.Context, actorID, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ID == actorID {
		if (req.Role != nil && entity.UserRole(*req.Role) != user.Role) || (req.Blocked != nil && *req.Blocked) {
			return nil, invalid("you cannot change your own role or block yourself")
		}
	}

	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Blocked != nil {
		user.Blocked = *req.Blocked
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID))
		return nil, fmt.Errorf("update user: %w", err)
	}

	us.log.Info("User updated",
		zap.String("user_id", user.ID),
		zap.String("by", actorID),
		zap.String("role", string(user.Role)),
		zap.Bool("blocked", user.Blocked))

	resp := response.UserToResponse(user)
	return &resp, nil
}
