package server

import (
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/config"
	"github.com/sportsfeed/contentguard/pkg/server/router"
)

type (
	APIServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// APIServer serves the app-facing moderation endpoints and the chat socket.
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	s := &APIServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.WithRouters(di.Routers...)
	s.setupMetricsEndpoint()
	return s
}

func (s *APIServer) Run() error {
	return s.listen(s.Config.Server.APIPort, "api")
}
