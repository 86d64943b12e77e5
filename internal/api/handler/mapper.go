package handler

import (
	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// --- Request → Service input ---

func toArticleInput(req articleRequest) ports.ArticleInput {
	return ports.ArticleInput{Title: req.Title, Content: req.Content}
}

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	}
}

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Active:   active,
	}
}

func toEditUserInput(req editUserRequest) ports.EditUserInput {
	return ports.EditUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Active:   req.IsActive != nil && *req.IsActive,
	}
}

// --- Domain → Response ---

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		IsPublished: a.Published,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toArticleList(articles []*domain.Article) articleListResponse {
	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return articleListResponse{Articles: out, Count: len(out)}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role.String(),
		IsActive:   u.Active,
		DateJoined: u.CreatedAt,
	}
}

func toUserList(users []*domain.User) userListResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return userListResponse{Users: out, Count: len(out)}
}

func toSessionResponse(msg string, u *domain.User, s *domain.Session) sessionResponse {
	return sessionResponse{
		Message:   msg,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      toUserResponse(u),
	}
}
