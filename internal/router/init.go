package router

import (
	"go-blog-api/internal/application"
	"go-blog-api/internal/container"
	pginfra "go-blog-api/internal/infrastructure/postgres"
	handlers "go-blog-api/internal/interface/http"
	"go-blog-api/internal/router/modules"
)

func buildAuthHandler() *handlers.AuthHandler {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewAuthService(repo, container.GetJWT(), container.GetLogger())
	return handlers.NewAuthHandler(
		svc,
		container.GetJWT(),
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure,
	)
}

func buildPostHandler() *handlers.PostHandler {
	repo := pginfra.NewPostRepository(container.GetPGPool())
	svc := application.NewPostService(
		repo,
		container.GetSink(),
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESPostsIndex,
	)
	return handlers.NewPostHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container is filled.
func InitModules(r *Registry) {
	r.Add(modules.NewAuthModule(buildAuthHandler()))
	r.Add(modules.NewPostModule(buildPostHandler(), container.GetJWT()))
}
