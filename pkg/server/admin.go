package server

import (
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/config"
	"github.com/sportsfeed/contentguard/pkg/server/router"
)

type (
	AdminServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// AdminServer serves the moderator review queue behind JWT auth.
	AdminServer struct {
		*BaseServer
	}
)

func NewAdminServer(di AdminServerDI) *AdminServer {
	s := &AdminServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.WithRouters(di.Routers...)
	s.setupMetricsEndpoint()
	return s
}

func (s *AdminServer) Run() error {
	return s.listen(s.Config.Server.AdminPort, "admin")
}
