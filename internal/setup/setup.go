package setup

import (
	"github.com/itchan-dev/yatube/internal/handler"
	"github.com/itchan-dev/yatube/internal/markdown"
	"github.com/itchan-dev/yatube/internal/service"
	"github.com/itchan-dev/yatube/internal/storage/pg"
	"github.com/itchan-dev/yatube/internal/utils"
	"github.com/itchan-dev/yatube/shared/config"
	"github.com/itchan-dev/yatube/shared/jwt"
	mw "github.com/itchan-dev/yatube/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService, &utils.CredentialsValidator{})
	group := service.NewGroup(storage, &utils.GroupDataValidator{})
	post := service.NewPost(storage, cfg.Public.PostsPerPage)

	h := handler.New(auth, group, post, markdown.New(), storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService, cfg.Public.SecureCookies),
		Config:         cfg,
	}, nil
}
