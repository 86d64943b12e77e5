package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkroom/cms/internal/api/metrics"
	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List returns the articles visible to the caller.
//
// @Summary      List articles
// @Description  Writers see only their own articles; other roles see all, newest first.
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.ListVisible(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleList(articles))
}

// Create stores a new draft authored by the caller.
//
// @Summary      Create article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      articleRequest  true  "Article"
// @Success      201   {object}  articleEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	u := caller(c)
	article, err := h.service.Create(c.Request().Context(), u, toArticleInput(req))
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(u.Role.String()).Inc()
	return c.JSON(http.StatusCreated, articleEnvelope{Message: "article created successfully", Article: toArticleResponse(article)})
}

// Get returns one article. Anonymous readers may see published articles.
//
// @Summary      Get article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  articleResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.View(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Update replaces an article's title and content.
//
// @Summary      Edit article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Article ID"
// @Param        body  body      articleRequest  true  "Article"
// @Success      200   {object}  articleEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Edit(c.Request().Context(), caller(c), c.Param("id"), toArticleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleEnvelope{Message: "article updated successfully", Article: toArticleResponse(article)})
}

// ModerationList returns every article for moderators.
//
// @Summary      Moderation queue
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        published    query     bool    false  "Filter by publication state"
// @Param        author_role  query     string  false  "Filter by the author's role"
// @Param        q            query     string  false  "Search title, content or author username"
// @Success      200          {object}  articleListResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /v1/moderation/articles [get]
func (h *ArticleHandler) ModerationList(c echo.Context) error {
	published, err := queryBool(c, "published")
	if err != nil {
		return err
	}

	filter := ports.ArticleFilter{Published: published, Search: c.QueryParam("q")}
	if raw := strings.TrimSpace(c.QueryParam("author_role")); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return err
		}
		filter.AuthorRole = role
	}

	articles, err := h.service.ListForModeration(c.Request().Context(), caller(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleList(articles))
}

// Toggle flips an article between draft and published.
//
// @Summary      Toggle publication
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  articleEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/moderation/articles/{id}/toggle [post]
func (h *ArticleHandler) Toggle(c echo.Context) error {
	article, err := h.service.ToggleStatus(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ArticleStatusChangesTotal.WithLabelValues(article.Status()).Inc()
	return c.JSON(http.StatusOK, articleEnvelope{
		Message: "article status changed to " + article.Status(),
		Article: toArticleResponse(article),
	})
}
